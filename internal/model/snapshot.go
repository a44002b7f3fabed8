package model

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// Snapshot is a self-contained copy of the four model tables, as written by
// the model API or exported by hand for offline runs.
type Snapshot struct {
	Nodes    map[string]Node
	Elements map[string]Element
	Sections map[string]Section
	Groups   map[string]Group
}

type snapshotWire struct {
	Nodes    json.RawMessage `json:"NODE"`
	Elements json.RawMessage `json:"ELEM"`
	Sections json.RawMessage `json:"SECT"`
	Groups   json.RawMessage `json:"GRUP"`
}

// LoadSnapshot reads a snapshot JSON file containing NODE/ELEM/SECT/GRUP
// tables. SECT and GRUP are optional; NODE and ELEM are required.
func LoadSnapshot(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "model: read snapshot")
	}
	var wire snapshotWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, eris.Wrap(err, "model: parse snapshot")
	}
	if wire.Nodes == nil || wire.Elements == nil {
		return nil, eris.New("model: snapshot missing NODE or ELEM table")
	}

	snap := &Snapshot{
		Sections: map[string]Section{},
		Groups:   map[string]Group{},
	}
	if snap.Nodes, err = ParseNodes(wire.Nodes); err != nil {
		return nil, err
	}
	if snap.Elements, err = ParseElements(wire.Elements); err != nil {
		return nil, err
	}
	if wire.Sections != nil {
		if snap.Sections, err = ParseSections(wire.Sections); err != nil {
			return nil, err
		}
	}
	if wire.Groups != nil {
		if snap.Groups, err = ParseGroups(wire.Groups); err != nil {
			return nil, err
		}
	}
	return snap, nil
}
