// Package results defines the normalized election model and the processors
// that build it from raw export rows.
//
// Every record is a value created fresh on each poll cycle. Nothing here is
// mutated after a Snapshot has been built.
package results

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/albapepper/elecciones-aragon/internal/sheets"
	"github.com/albapepper/elecciones-aragon/internal/textnorm"
)

// DefaultColor is used for parties whose row carries no color.
const DefaultColor = "#94a3b8"

// RegionName is the canonical name of the whole territory in lookup form.
const RegionName = "aragon"

// Bloc is the left/right grouping used to order the hemicycle.
type Bloc int

const (
	BlocUnknown Bloc = iota
	BlocLeft
	BlocRight
)

// ParseBloc maps the sheet's integer tag onto a Bloc.
func ParseBloc(n int) Bloc {
	switch n {
	case 1:
		return BlocLeft
	case 2:
		return BlocRight
	default:
		return BlocUnknown
	}
}

func (b Bloc) String() string {
	switch b {
	case BlocLeft:
		return "left"
	case BlocRight:
		return "right"
	default:
		return "unknown"
	}
}

// MarshalJSON keeps the sheet's integer encoding on the wire.
func (b Bloc) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(b))
}

// Scope says whether a turnout record covers the region or one province.
type Scope int

const (
	ScopeProvince Scope = iota
	ScopeRegion
)

func (s Scope) String() string {
	if s == ScopeRegion {
		return "Comunidad"
	}
	return "Provincia"
}

func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ScopeFor classifies a territory name.
func ScopeFor(territory string) Scope {
	if textnorm.Normalize(territory) == RegionName {
		return ScopeRegion
	}
	return ScopeProvince
}

// PartySeatResult is one party's seats in the current and prior legislature.
type PartySeatResult struct {
	Name      string `json:"nombre"`
	Seats2023 int    `json:"escanos2023"`
	Seats2025 int    `json:"escanos2025"`
	Change    int    `json:"cambio"`
	Bloc      Bloc   `json:"lado"`
	Color     string `json:"color"`
}

// PartyVoteShare is one party's percentage of the vote.
type PartyVoteShare struct {
	Name    string  `json:"nombre"`
	Percent float64 `json:"porcentaje"`
	Color   string  `json:"color"`
}

// CountStatus is how much of the vote has been counted and when the sheet
// says it was last updated. LastUpdate is empty when the date is unusable.
type CountStatus struct {
	Counted    float64 `json:"escrutinio"`
	LastUpdate string  `json:"lastUpdate"`
}

// Force is one of the leading parties in a municipality.
type Force struct {
	Name    string `json:"nombre"`
	Percent string `json:"porcentaje"`
}

// MunicipalityEntry is the leading party of a municipality plus the whole
// source row for second and third place lookups.
type MunicipalityEntry struct {
	Name     string     `json:"municipio"`
	Province string     `json:"provincia"`
	Leader   string     `json:"siglas_1"`
	Raw      sheets.Row `json:"raw"`
}

// Force returns the party in position rank (1-based) as the row reports it.
// Unknown ranks and missing cells give an empty Force.
func (e MunicipalityEntry) Force(rank int) Force {
	if rank < 1 || e.Raw == nil {
		return Force{}
	}
	n := fmt.Sprint(rank)
	return Force{
		Name:    e.Raw.FirstOr("", "siglas_"+n, "SIGLAS_"+n),
		Percent: e.Raw.FirstOr("", "porcentaje_"+n, "PORCENTAJE_"+n),
	}
}

// MunicipalityIndex maps textnorm.MunicipalityKey(name, province) to entries.
type MunicipalityIndex map[string]MunicipalityEntry

// Lookup finds a municipality regardless of capitalization or accents.
func (m MunicipalityIndex) Lookup(name, province string) (MunicipalityEntry, bool) {
	e, ok := m[textnorm.MunicipalityKey(name, province)]
	return e, ok
}

// TurnoutRecord is the participation reported for one territory.
type TurnoutRecord struct {
	Time       string  `json:"hora_minuto"`
	Scope      Scope   `json:"ambito"`
	Territory  string  `json:"nombre_ambito"`
	Stations   int     `json:"mesas_totales"`
	Electorate int     `json:"censo_total"`
	Turnout    float64 `json:"participacion"`
}

// Snapshot is the output of one successful poll cycle. LoadID increases with
// every cycle that was started, so a higher id is always newer.
type Snapshot struct {
	LoadID         uint64            `json:"load_id"`
	FetchedAt      time.Time         `json:"fetched_at"`
	Seats          []PartySeatResult `json:"partidos"`
	Votes          []PartyVoteShare  `json:"votos"`
	Status         CountStatus       `json:"estado"`
	Municipalities MunicipalityIndex `json:"municipios"`
	Turnout        []TurnoutRecord   `json:"participacion"`
}

// Summary returns a short description for logs.
func (s *Snapshot) Summary() string {
	return fmt.Sprintf(
		"load_id=%d parties=%d votes=%d municipalities=%d turnout=%d counted=%.2f",
		s.LoadID, len(s.Seats), len(s.Votes),
		len(s.Municipalities), len(s.Turnout), s.Status.Counted,
	)
}
