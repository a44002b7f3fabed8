// Package classify partitions a frame model's elements into semantic roles:
// deck (superstructure), above-deck substructure, pier caps, and piers.
package classify

import "github.com/sells-group/windload-cli/internal/model"

// taperedShapes enumerates the tapered-section shape codes that represent
// girder or deck profiles. A TAPERED section with any other shape is not
// treated as superstructure.
var taperedShapes = map[string]bool{
	"1CEL": true, "2CEL": true, "3CEL": true, "NCEL": true, "NCE2": true,
	"PSCM": true, "PSCI": true, "PSCH": true, "PSCT": true, "PSCB": true,
	"VALU": true, "CMPW": true, "CP_B": true, "CP_T": true,
	"CSGB": true, "CSGI": true, "CSGT": true,
	"CPCI": true, "CPCT": true, "CP_G": true,
	"STLB": true, "STLI": true,
}

// SuperstructureSections returns the set of section ids that belong to the
// superstructure family: PSC or COMPOSITE types always, TAPERED types only
// with an allowed shape. Deterministic and side-effect free.
func SuperstructureSections(sections map[string]model.Section) map[string]bool {
	out := make(map[string]bool)
	for id, s := range sections {
		switch s.Type {
		case "PSC", "COMPOSITE":
			out[id] = true
		case "TAPERED":
			if taperedShapes[s.Shape] {
				out[id] = true
			}
		}
	}
	return out
}
