// Package model defines typed records for the FEA model tables consumed by
// the classification and wind-load pipelines, plus parsing from the raw JSON
// table shapes served by the model API. Shape validation happens here, at the
// ingestion boundary, so the algorithms downstream can assume well-formed data.
package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Node is a single model node in global coordinates.
type Node struct {
	ID string
	X  float64
	Y  float64
	Z  float64
}

// Element is a two-node line (beam) element. Nodes keeps the raw connectivity
// list including zero placeholders; geometry code filters those out.
type Element struct {
	ID      string
	Nodes   []int
	Section string
	Beta    float64 // rotation about the element axis, degrees
	Type    string
}

// EndNodeIDs returns the positive node ids in connectivity order.
func (e Element) EndNodeIDs() []string {
	out := make([]string, 0, len(e.Nodes))
	for _, n := range e.Nodes {
		if n > 0 {
			out = append(out, strconv.Itoa(n))
		}
	}
	return out
}

// Section is a section-property record with the wind exposure extents.
type Section struct {
	ID     string
	Type   string // section type code: PSC, COMPOSITE, TAPERED, ...
	Shape  string
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// Group is a named structural group of element ids.
type Group struct {
	Name     string
	Elements []int
}

// --- wire shapes -----------------------------------------------------------

type nodeWire struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
	Z float64 `json:"Z"`
}

type elementWire struct {
	Nodes   []int       `json:"NODE"`
	Section json.Number `json:"SECT"`
	Angle   float64     `json:"ANGLE"`
	Type    string      `json:"TYPE"`
}

type sectionWire struct {
	SectType string  `json:"SECTTYPE"`
	Shape    string  `json:"SHAPE"`
	Left     float64 `json:"LEFT"`
	Right    float64 `json:"RIGHT"`
	Top      float64 `json:"TOP"`
	Bottom   float64 `json:"BOTTOM"`
}

type groupWire struct {
	Name     string          `json:"NAME"`
	ElemList json.RawMessage `json:"E_LIST"`
}

// ParseNodes decodes a node table. Accepts both the bare map and the
// {"NODE": {...}} envelope.
func ParseNodes(raw []byte) (map[string]Node, error) {
	body, err := unwrap(raw, "NODE")
	if err != nil {
		return nil, eris.Wrap(err, "model: parse node table")
	}
	var wire map[string]nodeWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, eris.Wrap(err, "model: parse node table")
	}
	out := make(map[string]Node, len(wire))
	for id, n := range wire {
		out[id] = Node{ID: id, X: n.X, Y: n.Y, Z: n.Z}
	}
	return out, nil
}

// ParseElements decodes an element table. Accepts both the bare map and the
// {"ELEM": {...}} envelope.
func ParseElements(raw []byte) (map[string]Element, error) {
	body, err := unwrap(raw, "ELEM")
	if err != nil {
		return nil, eris.Wrap(err, "model: parse element table")
	}
	var wire map[string]elementWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, eris.Wrap(err, "model: parse element table")
	}
	out := make(map[string]Element, len(wire))
	for id, e := range wire {
		out[id] = Element{
			ID:      id,
			Nodes:   e.Nodes,
			Section: e.Section.String(),
			Beta:    e.Angle,
			Type:    e.Type,
		}
	}
	return out, nil
}

// ParseSections decodes a section-property table.
func ParseSections(raw []byte) (map[string]Section, error) {
	body, err := unwrap(raw, "SECT")
	if err != nil {
		return nil, eris.Wrap(err, "model: parse section table")
	}
	var wire map[string]sectionWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, eris.Wrap(err, "model: parse section table")
	}
	out := make(map[string]Section, len(wire))
	for id, s := range wire {
		out[id] = Section{
			ID:     id,
			Type:   strings.ToUpper(strings.TrimSpace(s.SectType)),
			Shape:  strings.ToUpper(strings.TrimSpace(s.Shape)),
			Left:   s.Left,
			Right:  s.Right,
			Top:    s.Top,
			Bottom: s.Bottom,
		}
	}
	return out, nil
}

// ParseGroups decodes a structural-group table. E_LIST may be either a list
// of element ids or a whitespace-delimited id string.
func ParseGroups(raw []byte) (map[string]Group, error) {
	body, err := unwrap(raw, "GRUP")
	if err != nil {
		return nil, eris.Wrap(err, "model: parse group table")
	}
	var wire map[string]groupWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, eris.Wrap(err, "model: parse group table")
	}
	out := make(map[string]Group, len(wire))
	for id, g := range wire {
		name := strings.TrimSpace(g.Name)
		elems, err := parseElemList(g.ElemList)
		if err != nil {
			return nil, eris.Wrapf(err, "model: group %q element list", name)
		}
		out[id] = Group{Name: name, Elements: elems}
	}
	return out, nil
}

func parseElemList(raw json.RawMessage) ([]int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var ids []int
	if err := json.Unmarshal(raw, &ids); err == nil {
		return ids, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, eris.New("model: E_LIST is neither id list nor string")
	}
	var out []int
	for _, tok := range strings.Fields(s) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// unwrap strips an optional single-key envelope like {"NODE": {...}}.
func unwrap(raw []byte, key string) ([]byte, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if inner, ok := env[key]; ok && len(env) == 1 {
		return inner, nil
	}
	return raw, nil
}

// GroupByName returns the group with the given name, searching the table in
// deterministic key order.
func GroupByName(groups map[string]Group, name string) (Group, bool) {
	name = strings.TrimSpace(name)
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if groups[k].Name == name {
			return groups[k], true
		}
	}
	return Group{}, false
}

// SortedIDs returns element or node ids sorted numerically where possible,
// lexically otherwise. Deterministic iteration order for map-keyed tables.
func SortedIDs[T any](m map[string]T) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA == nil && errB == nil {
			return a < b
		}
		if errA == nil {
			return true
		}
		if errB == nil {
			return false
		}
		return ids[i] < ids[j]
	})
	return ids
}
