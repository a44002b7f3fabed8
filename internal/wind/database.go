package wind

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Member types a structural group can carry in the wind database.
const (
	MemberDeck     = "Deck"
	MemberPier     = "Pier"
	MemberSubAbove = "Substructure - Above Deck"
)

// StructuralGroup is one wind database entry: a named model group, its
// member type, and the wind parameters its pressure table is computed from.
// ElementsGroup names the structural group in the model that holds the
// members; it defaults to Name.
type StructuralGroup struct {
	Name          string `yaml:"name"`
	MemberType    string `yaml:"member_type"`
	ElementsGroup string `yaml:"elements_group"`
	Wind          Params `yaml:"wind"`
}

// Database is the wind input file: structural groups, the WS and WL case
// tables, the coefficient tables, pier frames, and load options.
type Database struct {
	Groups     []StructuralGroup `yaml:"groups"`
	WSCases    []CaseRow         `yaml:"ws_cases"`
	WLCases    []CaseRow         `yaml:"wl_cases"`
	Skew       Coefficients      `yaml:"skew"`
	Live       Coefficients      `yaml:"live"`
	PierFrames []PierFrame       `yaml:"pier_frames"`

	Eccentricity   *float64 `yaml:"eccentricity"`
	ExtraExposureY float64  `yaml:"extra_exposure_y"`
}

// defaultSkew and defaultLive are the standard coefficient tables used when
// the input file omits them.
var (
	defaultSkew = Coefficients{
		Angles:       []float64{0, 15, 30, 45, 60},
		Transverse:   []float64{1.000, 0.880, 0.820, 0.660, 0.340},
		Longitudinal: []float64{0.000, 0.120, 0.240, 0.320, 0.380},
	}
	defaultLive = Coefficients{
		Angles:       []float64{0, 15, 30, 45, 60},
		Transverse:   []float64{0.100, 0.088, 0.082, 0.066, 0.034},
		Longitudinal: []float64{0.000, 0.012, 0.024, 0.032, 0.038},
	}
)

// LoadDatabase reads and validates a wind database YAML file. Missing
// coefficient tables fall back to the standard defaults; structural groups
// must be present and uniquely named.
func LoadDatabase(path string) (*Database, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "wind: read database")
	}

	var db Database
	if err := yaml.Unmarshal(raw, &db); err != nil {
		return nil, eris.Wrap(err, "wind: parse database")
	}

	if len(db.Groups) == 0 {
		return nil, eris.New("wind: database has no structural groups")
	}
	seen := map[string]bool{}
	for i := range db.Groups {
		g := &db.Groups[i]
		if g.Name == "" {
			return nil, eris.Errorf("wind: database group %d has no name", i)
		}
		if seen[g.Name] {
			return nil, eris.Errorf("wind: duplicate database group %q", g.Name)
		}
		seen[g.Name] = true
		if g.MemberType == "" {
			g.MemberType = MemberDeck
		}
		if g.ElementsGroup == "" {
			g.ElementsGroup = g.Name
		}
	}

	if len(db.Skew.Angles) == 0 {
		db.Skew = defaultSkew
	}
	if len(db.Live.Angles) == 0 {
		db.Live = defaultLive
	}
	if db.Eccentricity == nil {
		e := DefaultEccentricity
		db.Eccentricity = &e
	}
	return &db, nil
}

// WindParams collects the per-group wind parameters keyed by group name, the
// shape BuildPressureTable wants.
func (db *Database) WindParams() map[string]Params {
	out := make(map[string]Params, len(db.Groups))
	for _, g := range db.Groups {
		out[g.Name] = g.Wind
	}
	return out
}

// SplitGroups partitions the database groups by member type: deck groups get
// WL and deck WS; pier and above-deck groups get substructure WS.
func (db *Database) SplitGroups() (deck, sub []StructuralGroup) {
	for _, g := range db.Groups {
		switch g.MemberType {
		case MemberDeck:
			deck = append(deck, g)
		case MemberPier, MemberSubAbove:
			sub = append(sub, g)
		}
	}
	return deck, sub
}
