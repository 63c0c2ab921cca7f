package matching

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Taxonomy holds the hand-maintained lookup tables used by the fuzzy
// sub-scores. Every term is matched as a lowercase substring.
type Taxonomy struct {
	// SectorGroups lists synonym groups; two sectors are related when each
	// contains a term of the same group.
	SectorGroups [][]string `toml:"sector_groups"`
	// StageLadder is ordered from earliest to latest round. Each rung may
	// carry several aliases; the first rung with a contained alias wins.
	StageLadder [][]string `toml:"stage_ladder"`
	Geography   GeoTable   `toml:"geography"`
}

type GeoTable struct {
	TexasHQTerms  []string `toml:"texas_hq_terms"`
	TexasGeoTerms []string `toml:"texas_geo_terms"`
	USGeoAliases  []string `toml:"us_geo_aliases"`
	USHQTerms     []string `toml:"us_hq_terms"`
	USCities      []string `toml:"us_cities"`
}

func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		SectorGroups: [][]string{
			{"ai", "ml", "machine learning", "artificial intelligence", "ai/ml"},
			{"saas", "software", "b2b saas", "enterprise software"},
			{"fintech", "finance", "financial services", "payments"},
			{"healthtech", "health", "medical", "healthcare"},
			{"cleantech", "climate tech", "sustainability", "green tech"},
			{"iot", "internet of things", "smart cities", "sensors"},
			{"marketplace", "platform", "consumer tech"},
			{"devops", "infrastructure", "cloud", "developer tools"},
		},
		StageLadder: [][]string{
			{"pre-seed"},
			{"seed"},
			{"series a"},
			{"series b"},
			{"series c"},
		},
		Geography: GeoTable{
			TexasHQTerms:  []string{"texas", "tx", "austin", "san antonio"},
			TexasGeoTerms: []string{"texas", "tx"},
			USGeoAliases:  []string{"us", "usa", "united states"},
			USHQTerms:     []string{"usa", "united states"},
			USCities: []string{
				"texas", "california", "new york", "boston", "seattle",
				"austin", "san francisco", "chicago", "miami", "atlanta",
			},
		},
	}
}

// LoadTaxonomy decodes a TOML taxonomy. Tables missing from the document keep
// their default contents.
func LoadTaxonomy(r io.Reader) (Taxonomy, error) {
	var in Taxonomy
	if err := toml.NewDecoder(r).Decode(&in); err != nil {
		return Taxonomy{}, fmt.Errorf("decode taxonomy: %w", err)
	}

	out := DefaultTaxonomy()
	if len(in.SectorGroups) > 0 {
		out.SectorGroups = in.SectorGroups
	}
	if len(in.StageLadder) > 0 {
		out.StageLadder = in.StageLadder
	}
	g := in.Geography
	if len(g.TexasHQTerms) > 0 {
		out.Geography.TexasHQTerms = g.TexasHQTerms
	}
	if len(g.TexasGeoTerms) > 0 {
		out.Geography.TexasGeoTerms = g.TexasGeoTerms
	}
	if len(g.USGeoAliases) > 0 {
		out.Geography.USGeoAliases = g.USGeoAliases
	}
	if len(g.USHQTerms) > 0 {
		out.Geography.USHQTerms = g.USHQTerms
	}
	if len(g.USCities) > 0 {
		out.Geography.USCities = g.USCities
	}

	return out.normalized(), nil
}

func LoadTaxonomyFile(path string) (Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return Taxonomy{}, err
	}
	defer f.Close()

	return LoadTaxonomy(f)
}

func (t Taxonomy) normalized() Taxonomy {
	out := Taxonomy{
		SectorGroups: make([][]string, 0, len(t.SectorGroups)),
		StageLadder:  make([][]string, 0, len(t.StageLadder)),
		Geography: GeoTable{
			TexasHQTerms:  cleanList(t.Geography.TexasHQTerms),
			TexasGeoTerms: cleanList(t.Geography.TexasGeoTerms),
			USGeoAliases:  cleanList(t.Geography.USGeoAliases),
			USHQTerms:     cleanList(t.Geography.USHQTerms),
			USCities:      cleanList(t.Geography.USCities),
		},
	}
	for _, g := range t.SectorGroups {
		if terms := cleanList(g); len(terms) > 0 {
			out.SectorGroups = append(out.SectorGroups, terms)
		}
	}
	// empty rungs are kept so ladder distances stay stable
	for _, rung := range t.StageLadder {
		out.StageLadder = append(out.StageLadder, cleanList(rung))
	}
	return out
}

// SectorsRelated reports whether a and b (already lowercased) fall in the
// same synonym group.
func (t Taxonomy) SectorsRelated(a, b string) bool {
	for _, group := range t.SectorGroups {
		if containsAny(a, group) && containsAny(b, group) {
			return true
		}
	}
	return false
}

// StageIndex returns the ladder position of a lowercased stage, or -1.
func (t Taxonomy) StageIndex(stage string) int {
	if stage == "" {
		return -1
	}
	for i, rung := range t.StageLadder {
		if containsAny(stage, rung) {
			return i
		}
	}
	return -1
}

func (t Taxonomy) isTexasHQ(hq string) bool {
	return containsAny(hq, t.Geography.TexasHQTerms)
}

func (t Taxonomy) isTexasGeo(geo string) bool {
	return containsAny(geo, t.Geography.TexasGeoTerms)
}

func (t Taxonomy) isUSGeo(geo string) bool {
	for _, alias := range t.Geography.USGeoAliases {
		if geo == alias {
			return true
		}
	}
	return false
}

func (t Taxonomy) isUSHQ(hq string) bool {
	return containsAny(hq, t.Geography.USHQTerms) || containsAny(hq, t.Geography.USCities)
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(s, term) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizePtr(s *string) string {
	if s == nil {
		return ""
	}
	return normalize(*s)
}

// cleanList lowercases and trims every entry and drops the empty ones.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := normalize(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}
