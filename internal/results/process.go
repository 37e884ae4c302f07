package results

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/albapepper/elecciones-aragon/internal/locale"
	"github.com/albapepper/elecciones-aragon/internal/sheets"
	"github.com/albapepper/elecciones-aragon/internal/textnorm"
)

// ProcessSeats builds seat results, dropping rows without a party name.
// The result is ordered by current seats, highest first.
func ProcessSeats(rows []sheets.Row) []PartySeatResult {
	out := make([]PartySeatResult, 0, len(rows))
	for _, row := range rows {
		name := fieldParty.in(row)
		if name == "" {
			continue
		}
		prior := nonNegative(locale.ParseLeadingInt(fieldSeats2023.raw(row)))
		current := nonNegative(locale.ParseLeadingInt(fieldSeats2025.raw(row)))
		out = append(out, PartySeatResult{
			Name:      name,
			Seats2023: prior,
			Seats2025: current,
			Change:    current - prior,
			Bloc:      ParseBloc(locale.ParseLeadingInt(fieldBloc.raw(row))),
			Color:     NormalizeColor(fieldColor.raw(row)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Seats2025 > out[j].Seats2025
	})
	return out
}

// ProcessVotes builds vote shares, dropping rows without an acronym. The
// result is ordered by percentage, highest first.
func ProcessVotes(rows []sheets.Row) []PartyVoteShare {
	out := make([]PartyVoteShare, 0, len(rows))
	for _, row := range rows {
		name := fieldAcronym.in(row)
		if name == "" {
			continue
		}
		out = append(out, PartyVoteShare{
			Name:    name,
			Percent: clampPercent(locale.ParseFloat(fieldPercent.raw(row), 0)),
			Color:   NormalizeColor(fieldColor.raw(row)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percent > out[j].Percent
	})
	return out
}

// ProcessCountStatus reads the first row of the count status export.
func ProcessCountStatus(rows []sheets.Row) CountStatus {
	if len(rows) == 0 {
		return CountStatus{}
	}
	row := rows[0]

	status := CountStatus{
		Counted: clampPercent(locale.ParseFloat(fieldCounted.raw(row), 0)),
	}
	day, hour := fieldDate.in(row), fieldTime.in(row)
	if day != "" && hour != "" {
		if d, m, y, ok := ParseDate(day); ok {
			status.LastUpdate = fmt.Sprintf("%d de %s de %d a las %s", d, monthNames[m-1], y, hour)
		}
	}
	return status
}

// ProcessMunicipalities indexes municipalities by name and province. Rows
// missing either are skipped; a repeated key keeps the last row.
func ProcessMunicipalities(rows []sheets.Row) MunicipalityIndex {
	index := make(MunicipalityIndex, len(rows))
	for _, row := range rows {
		name := fieldMunicipality.in(row)
		province := fieldProvince.in(row)
		if name == "" || province == "" {
			continue
		}
		index[textnorm.MunicipalityKey(name, province)] = MunicipalityEntry{
			Name:     name,
			Province: province,
			Leader:   fieldLeader.in(row),
			Raw:      row,
		}
	}
	return index
}

// ProcessTurnout builds turnout records in source order, dropping rows
// without a territory. Unparsable numbers become 0.
func ProcessTurnout(rows []sheets.Row) []TurnoutRecord {
	out := make([]TurnoutRecord, 0, len(rows))
	for _, row := range rows {
		territory := fieldTerritory.in(row)
		if territory == "" {
			continue
		}
		out = append(out, TurnoutRecord{
			Time:       fieldHour.in(row),
			Scope:      ScopeFor(territory),
			Territory:  territory,
			Stations:   nonNegative(locale.ParseInt(fieldStations.raw(row))),
			Electorate: nonNegative(locale.ParseInt(fieldElectorate.raw(row))),
			Turnout:    clampPercent(locale.ParseFloat(fieldTurnout.raw(row), 0)),
		})
	}
	return out
}

var dateSeparators = regexp.MustCompile(`[/\-.]`)

var monthNames = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// ParseDate reads a day/month/year date separated by "/", "-" or ".".
// Exactly three numeric components are required, the year must have four
// digits and day and month must be in range; anything else is rejected.
func ParseDate(s string) (day, month, year int, ok bool) {
	parts := dateSeparators.Split(strings.TrimSpace(s), -1)
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, 0, 0, false
		}
		if i == 2 && len(p) != 4 {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	day, month, year = nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, false
	}
	return day, month, year, true
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clampPercent(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 100:
		return 100
	}
	return f
}
