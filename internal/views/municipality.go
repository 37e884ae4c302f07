package views

import (
	"strings"

	"github.com/albapepper/elecciones-aragon/internal/results"
)

// MapDefaultColor fills municipalities with no known leading party.
const MapDefaultColor = "#475569"

// partyColors is the map palette keyed by party acronym.
var partyColors = map[string]string{
	"PSOE":          "#dc2626",
	"PP":            "#2563eb",
	"VOX":           "#16a34a",
	"PAR":           "#eab308",
	"CHA":           "#059669",
	"PODEMOS-IU":    "#a855f7",
	"PODEMOS":       "#a855f7",
	"CS":            "#f97316",
	"TERUEL EXISTE": "#ec4899",
	"IU":            "#b91c1c",
}

// PartyColor returns the map color for acronym and whether it is known.
func PartyColor(acronym string) (string, bool) {
	c, ok := partyColors[strings.TrimSpace(acronym)]
	return c, ok
}

// Boundary feature property names, most preferred first.
var (
	featureName     = []string{"municipio_nombre", "nombre_municipio", "MUNICIPIO", "municipio"}
	featureProvince = []string{"PROVINCIA", "provincia"}
	featureLeader   = []string{"siglas_1", "SIGLAS_1"}
)

// MunicipalityMeta is what the map shows for one boundary feature.
type MunicipalityMeta struct {
	Name     string           `json:"nombre_municipio"`
	Province string           `json:"PROVINCIA"`
	Found    bool             `json:"found"`
	Forces   [3]results.Force `json:"fuerzas"`
	Fill     string           `json:"fill"`
}

// FeatureMeta resolves a boundary feature's properties against the index.
// The fill comes from the index's leading party, then from the feature's own
// siglas_1, then MapDefaultColor.
func FeatureMeta(index results.MunicipalityIndex, props map[string]any) MunicipalityMeta {
	meta := MunicipalityMeta{
		Name:     firstProp(props, featureName),
		Province: firstProp(props, featureProvince),
		Fill:     MapDefaultColor,
	}
	if meta.Name != "" && meta.Province != "" {
		if e, ok := index.Lookup(meta.Name, meta.Province); ok {
			meta.Found = true
			for i := range meta.Forces {
				meta.Forces[i] = e.Force(i + 1)
			}
			if c, ok := PartyColor(e.Leader); ok {
				meta.Fill = c
				return meta
			}
		}
	}
	if c, ok := PartyColor(firstProp(props, featureLeader)); ok {
		meta.Fill = c
	}
	return meta
}

// EntryMeta is FeatureMeta for an index entry looked up directly.
func EntryMeta(e results.MunicipalityEntry) MunicipalityMeta {
	meta := MunicipalityMeta{
		Name:     e.Name,
		Province: e.Province,
		Found:    true,
		Fill:     MapDefaultColor,
	}
	for i := range meta.Forces {
		meta.Forces[i] = e.Force(i + 1)
	}
	if c, ok := PartyColor(e.Leader); ok {
		meta.Fill = c
	}
	return meta
}

func firstProp(props map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := props[k]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
