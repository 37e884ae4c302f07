package views

import (
	"github.com/albapepper/elecciones-aragon/internal/locale"
	"github.com/albapepper/elecciones-aragon/internal/results"
	"github.com/albapepper/elecciones-aragon/internal/textnorm"
)

// ParticipationRow is one card of the participation panel.
type ParticipationRow struct {
	Territory      string  `json:"nombre"`
	Main           bool    `json:"is_main"`
	Found          bool    `json:"found"`
	Turnout        float64 `json:"porcentaje"`
	Turnout2023    float64 `json:"porcentaje2023"`
	Delta          float64 `json:"diferencia"`
	Electorate     int     `json:"censo"`
	Stations       int     `json:"mesas"`
	Time           string  `json:"hora_minuto,omitempty"`
	TurnoutLabel   string  `json:"porcentaje_fmt"`
	Turnout2023Lbl string  `json:"porcentaje2023_fmt"`
	ElectorateLbl  string  `json:"censo_fmt"`
}

// panelTerritory is a fixed card: the display name and 2023 turnout.
type panelTerritory struct {
	name        string
	turnout2023 float64
}

var panel = []panelTerritory{
	{"Aragón", 66.54},
	{"Zaragoza", 66.15},
	{"Huesca", 65.66},
	{"Teruel", 70.71},
}

// Participation builds the panel for the region and its three provinces in
// that order. Territories missing from records show zero turnout.
func Participation(records []results.TurnoutRecord) []ParticipationRow {
	byName := make(map[string]results.TurnoutRecord, len(records))
	for _, r := range records {
		key := textnorm.Normalize(r.Territory)
		if _, seen := byName[key]; !seen {
			byName[key] = r
		}
	}

	rows := make([]ParticipationRow, 0, len(panel))
	for i, t := range panel {
		rec, found := byName[textnorm.Normalize(t.name)]
		rows = append(rows, ParticipationRow{
			Territory:      t.name,
			Main:           i == 0,
			Found:          found,
			Turnout:        rec.Turnout,
			Turnout2023:    t.turnout2023,
			Delta:          rec.Turnout - t.turnout2023,
			Electorate:     rec.Electorate,
			Stations:       rec.Stations,
			Time:           rec.Time,
			TurnoutLabel:   locale.FormatPercent(rec.Turnout, 2, 2),
			Turnout2023Lbl: locale.FormatPercent(t.turnout2023, 2, 2),
			ElectorateLbl:  locale.FormatInt(rec.Electorate),
		})
	}
	return rows
}
