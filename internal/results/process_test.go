package results

import (
	"encoding/json"
	"testing"

	"github.com/albapepper/elecciones-aragon/internal/sheets"
)

func TestProcessSeats(t *testing.T) {
	rows := []sheets.Row{
		{"Partido": "PP", "2023": "28", "2025": "26", "lado": "2", "color": "#2563eb"},
		{"Partido": "PSOE", "2023": "30", "2025": "28", "lado": "1", "color": "dc2626"},
		{"Partido": "  ", "2023": "5", "2025": "5"},
		{"2023": "1", "2025": "1"},
		{"Partido": " CHA ", "2023": "3", "2025": "6", "Lado": "1"},
		{"Partido": "IU", "2023": "1", "2025": "abc", "lado": "x"},
	}

	got := ProcessSeats(rows)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}

	want := PartySeatResult{Name: "PSOE", Seats2023: 30, Seats2025: 28, Change: -2, Bloc: BlocLeft, Color: "#dc2626"}
	if got[0] != want {
		t.Errorf("got[0] = %+v, want %+v", got[0], want)
	}
	if got[1].Name != "PP" || got[1].Color != "#2563eb" || got[1].Bloc != BlocRight {
		t.Errorf("got[1] = %+v, want PP right #2563eb", got[1])
	}
	if got[2].Name != "CHA" || got[2].Bloc != BlocLeft || got[2].Color != DefaultColor {
		t.Errorf("got[2] = %+v, want trimmed CHA, Lado fallback, default color", got[2])
	}
	if got[3].Seats2025 != 0 || got[3].Change != -1 || got[3].Bloc != BlocUnknown {
		t.Errorf("got[3] = %+v, want zero seats, change -1, unknown bloc", got[3])
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Seats2025 < got[i].Seats2025 {
			t.Errorf("not sorted by Seats2025: %d before %d", got[i-1].Seats2025, got[i].Seats2025)
		}
	}
}

func TestProcessSeats_JSON(t *testing.T) {
	got := ProcessSeats([]sheets.Row{
		{"Partido": "PSOE", "2023": "30", "2025": "28", "lado": "1", "color": "dc2626"},
	})
	b, err := json.Marshal(got[0])
	if err != nil {
		t.Fatal(err)
	}
	want := `{"nombre":"PSOE","escanos2023":30,"escanos2025":28,"cambio":-2,"lado":1,"color":"#dc2626"}`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}
}

func TestProcessVotes(t *testing.T) {
	rows := []sheets.Row{
		{"siglas": "VOX", "porcentaje": "11,2%", "color": "16a34a"},
		{"siglas": "PP", "porcentaje": "35,5%", "color": "#2563eb"},
		{"siglas": "", "porcentaje": "40"},
		{"siglas": "PSOE", "porcentaje": "30,1"},
		{"siglas": "OTROS", "porcentaje": "n/d"},
	}
	got := ProcessVotes(rows)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	order := []string{"PP", "PSOE", "VOX", "OTROS"}
	for i, name := range order {
		if got[i].Name != name {
			t.Errorf("got[%d].Name = %s, want %s", i, got[i].Name, name)
		}
	}
	if got[0].Percent != 35.5 || got[0].Color != "#2563eb" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[2].Color != "#16a34a" {
		t.Errorf("VOX color = %s, want #16a34a", got[2].Color)
	}
	if got[1].Color != DefaultColor {
		t.Errorf("PSOE color = %s, want %s", got[1].Color, DefaultColor)
	}
	if got[3].Percent != 0 {
		t.Errorf("OTROS percent = %v, want 0", got[3].Percent)
	}
}

func TestProcessCountStatus(t *testing.T) {
	tests := []struct {
		name string
		rows []sheets.Row
		want CountStatus
	}{
		{
			name: "full",
			rows: []sheets.Row{{"escrutado": "87,5%", "dia": "15/06/2026", "hora": "20:30"}},
			want: CountStatus{Counted: 87.5, LastUpdate: "15 de junio de 2026 a las 20:30"},
		},
		{
			name: "capitalized fallbacks",
			rows: []sheets.Row{{"Escrutado": "100%", "Dia": "1-12-2026", "Hora": "23:59"}},
			want: CountStatus{Counted: 100, LastUpdate: "1 de diciembre de 2026 a las 23:59"},
		},
		{
			name: "fecha with dots",
			rows: []sheets.Row{{"escrutado": "3", "fecha": "07.02.2026", "hora": "09:05"}},
			want: CountStatus{Counted: 3, LastUpdate: "7 de febrero de 2026 a las 09:05"},
		},
		{
			name: "two digit year rejected",
			rows: []sheets.Row{{"escrutado": "50", "dia": "15/06/26", "hora": "20:30"}},
			want: CountStatus{Counted: 50},
		},
		{
			name: "single component rejected",
			rows: []sheets.Row{{"escrutado": "50", "dia": "hoy", "hora": "20:30"}},
			want: CountStatus{Counted: 50},
		},
		{
			name: "missing hour",
			rows: []sheets.Row{{"escrutado": "50", "dia": "15/06/2026"}},
			want: CountStatus{Counted: 50},
		},
		{
			name: "bad month",
			rows: []sheets.Row{{"escrutado": "50", "dia": "15/13/2026", "hora": "20:30"}},
			want: CountStatus{Counted: 50},
		},
		{
			name: "garbage percent",
			rows: []sheets.Row{{"escrutado": "n/a"}},
			want: CountStatus{},
		},
		{
			name: "only first row used",
			rows: []sheets.Row{{"escrutado": "10"}, {"escrutado": "90"}},
			want: CountStatus{Counted: 10},
		},
		{name: "empty", rows: nil, want: CountStatus{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProcessCountStatus(tt.rows); got != tt.want {
				t.Errorf("ProcessCountStatus = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProcessMunicipalities(t *testing.T) {
	rows := []sheets.Row{
		{"municipio_nombre": "Zaragoza", "PROVINCIA": "Zaragoza", "siglas_1": "PP", "porcentaje_1": "36,1", "siglas_2": "PSOE", "porcentaje_2": "29,4"},
		{"MUNICIPIO": "Alcañiz", "provincia": "Teruel", "SIGLAS_1": "PSOE"},
		{"municipio": "Jaca", "PROVINCIA": ""},
		{"municipio_nombre": "", "PROVINCIA": "Huesca"},
	}
	index := ProcessMunicipalities(rows)
	if len(index) != 2 {
		t.Fatalf("len = %d, want 2", len(index))
	}

	for _, v := range [][2]string{{"ZARAGOZA", "zaragoza"}, {"zaragoza", "Zaragoza"}} {
		e, ok := index.Lookup(v[0], v[1])
		if !ok {
			t.Fatalf("Lookup(%q, %q) not found", v[0], v[1])
		}
		if e.Leader != "PP" {
			t.Errorf("Leader = %s, want PP", e.Leader)
		}
	}

	e, ok := index.Lookup("alcaniz", "TERUEL")
	if !ok {
		t.Fatal("Lookup(alcaniz, TERUEL) not found")
	}
	if e.Leader != "PSOE" || e.Name != "Alcañiz" {
		t.Errorf("entry = %+v, want Alcañiz led by PSOE", e)
	}

	zgz, _ := index.Lookup("Zaragoza", "Zaragoza")
	if f := zgz.Force(2); f.Name != "PSOE" || f.Percent != "29,4" {
		t.Errorf("Force(2) = %+v, want PSOE 29,4", f)
	}
	if f := zgz.Force(3); f != (Force{}) {
		t.Errorf("Force(3) = %+v, want empty", f)
	}
}

func TestProcessMunicipalities_LastRowWins(t *testing.T) {
	index := ProcessMunicipalities([]sheets.Row{
		{"municipio": "Teruel", "provincia": "Teruel", "siglas_1": "PP"},
		{"municipio": "TERUEL", "provincia": "Teruel", "siglas_1": "TERUEL EXISTE"},
	})
	e, _ := index.Lookup("Teruel", "Teruel")
	if e.Leader != "TERUEL EXISTE" {
		t.Errorf("Leader = %s, want TERUEL EXISTE", e.Leader)
	}
}

func TestProcessTurnout(t *testing.T) {
	rows := []sheets.Row{
		{"territorio": "Huesca", "participacion": "62,3", "mesas": "1.200", "censo": "150.000", "hora": "18:00"},
		{"territorio": "Aragón", "participacion": "64,1%", "mesas": "2.500", "censo": "1.000.000"},
		{"territorio": "  "},
		{"territorio": "Teruel", "participacion": "?", "mesas": "x", "censo": ""},
	}
	got := ProcessTurnout(rows)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	want := TurnoutRecord{Time: "18:00", Scope: ScopeProvince, Territory: "Huesca", Stations: 1200, Electorate: 150000, Turnout: 62.3}
	if got[0] != want {
		t.Errorf("got[0] = %+v, want %+v", got[0], want)
	}
	if got[1].Scope != ScopeRegion || got[1].Scope.String() != "Comunidad" {
		t.Errorf("Aragón scope = %v, want Comunidad", got[1].Scope)
	}
	if got[2].Territory != "Teruel" || got[2].Stations != 0 || got[2].Electorate != 0 || got[2].Turnout != 0 {
		t.Errorf("got[2] = %+v, want zeroed Teruel", got[2])
	}
}

func TestProcessors_DropOnlyBlankIdentifiers(t *testing.T) {
	names := []string{"A", "", "B", " ", "C"}
	var seats, votes, turnout []sheets.Row
	for _, n := range names {
		seats = append(seats, sheets.Row{"Partido": n, "2025": "1"})
		votes = append(votes, sheets.Row{"siglas": n, "porcentaje": "1"})
		turnout = append(turnout, sheets.Row{"territorio": n})
	}
	if n := len(ProcessSeats(seats)); n != 3 {
		t.Errorf("ProcessSeats kept %d rows, want 3", n)
	}
	if n := len(ProcessVotes(votes)); n != 3 {
		t.Errorf("ProcessVotes kept %d rows, want 3", n)
	}
	got := ProcessTurnout(turnout)
	if len(got) != 3 || got[0].Territory != "A" || got[1].Territory != "B" || got[2].Territory != "C" {
		t.Errorf("ProcessTurnout = %+v, want A, B, C in order", got)
	}
}

func TestScopeJSON(t *testing.T) {
	b, _ := json.Marshal(TurnoutRecord{Scope: ScopeRegion})
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m["ambito"] != "Comunidad" {
		t.Errorf("ambito = %v, want Comunidad", m["ambito"])
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := map[string]string{
		"dc2626":   "#dc2626",
		"#dc2626":  "#dc2626",
		" #fff ":   "#fff",
		"":         DefaultColor,
		"#":        DefaultColor,
	}
	for in, want := range tests {
		if got := NormalizeColor(in); got != want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", in, got, want)
		}
	}
}
