package classify

import (
	"github.com/sells-group/windload-cli/internal/geometry"
	"github.com/sells-group/windload-cli/internal/model"
)

// Partition splits the selected element set into deck and substructure. An
// element is deck iff its section id is in the superstructure set; every
// other selected element is substructure, with no further filtering.
func Partition(elements map[string]model.Element, superSections map[string]bool) (deck, sub map[string]model.Element) {
	deck = make(map[string]model.Element)
	sub = make(map[string]model.Element)
	for id, e := range elements {
		if superSections[e.Section] {
			deck[id] = e
		} else {
			sub[id] = e
		}
	}
	return deck, sub
}

// DeckReferenceHeight returns the maximum Z coordinate among all node
// endpoints referenced by deck elements. The bool is false when there are no
// deck elements or none of their nodes resolve; callers must treat that as
// "cannot classify by height", never as height zero.
func DeckReferenceHeight(deck map[string]model.Element, cache *geometry.Cache) (float64, bool) {
	found := false
	var max float64
	for id := range deck {
		for _, nid := range cache.Endpoints(id) {
			p, ok := cache.NodeCoords(nid)
			if !ok {
				continue
			}
			if !found || p.Z > max {
				max = p.Z
			}
			found = true
		}
	}
	return max, found
}
