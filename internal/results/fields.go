package results

import (
	"strings"

	"github.com/albapepper/elecciones-aragon/internal/sheets"
)

// field lists the header spellings a logical column has been published
// under, most preferred first.
type field []string

// in returns the first present, non-blank cell for f, trimmed.
func (f field) in(r sheets.Row) string {
	v, _ := r.First(f...)
	return strings.TrimSpace(v)
}

// raw is like in but leaves the cell untouched.
func (f field) raw(r sheets.Row) string {
	v, _ := r.First(f...)
	return v
}

// Seats export.
var (
	fieldParty     = field{"Partido", "partido"}
	fieldSeats2023 = field{"2023"}
	fieldSeats2025 = field{"2025"}
	fieldBloc      = field{"lado", "Lado"}
	fieldColor     = field{"color", "Color"}
)

// Vote share export.
var (
	fieldAcronym = field{"siglas", "Siglas"}
	fieldPercent = field{"porcentaje", "Porcentaje"}
)

// Count status export.
var (
	fieldCounted = field{"escrutado", "Escrutado"}
	fieldDate    = field{"dia", "Dia", "fecha"}
	fieldTime    = field{"hora", "Hora"}
)

// Municipality export.
var (
	fieldMunicipality = field{"municipio_nombre", "MUNICIPIO", "municipio"}
	fieldProvince     = field{"PROVINCIA", "provincia"}
	fieldLeader       = field{"siglas_1", "SIGLAS_1"}
)

// Turnout export.
var (
	fieldTerritory  = field{"territorio"}
	fieldHour       = field{"hora"}
	fieldTurnout    = field{"participacion"}
	fieldStations   = field{"mesas"}
	fieldElectorate = field{"censo"}
)

// NormalizeColor returns raw with exactly one leading "#", or DefaultColor
// when raw is blank.
func NormalizeColor(raw string) string {
	c := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if c == "" {
		return DefaultColor
	}
	return "#" + c
}
