package midas

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/windload-cli/internal/wind"
)

// BeamLoadItem is one beam load entry under an element in /db/BMLD. Field
// names mirror the wire keys.
type BeamLoadItem struct {
	ID            int        `json:"ID"`
	LCName        string     `json:"LCNAME"`
	GroupName     string     `json:"GROUP_NAME"`
	Cmd           string     `json:"CMD"`
	Type          string     `json:"TYPE"`
	Direction     string     `json:"DIRECTION"`
	UseProjection bool       `json:"USE_PROJECTION"`
	UseEccen      bool       `json:"USE_ECCEN"`
	D             [4]float64 `json:"D"`
	P             [4]float64 `json:"P"`

	EccenType int     `json:"ECCEN_TYPE,omitempty"`
	EccenDir  string  `json:"ECCEN_DIR,omitempty"`
	IEnd      float64 `json:"I_END,omitempty"`
	JEnd      float64 `json:"J_END,omitempty"`
	UseJEnd   bool    `json:"USE_J_END,omitempty"`
}

// beamLoadBlock is the per-element wrapper in /db/BMLD.
type beamLoadBlock struct {
	Items []json.RawMessage `json:"ITEMS"`
}

// itemID extracts the ID field of a raw item, 0 when absent.
func itemID(raw json.RawMessage) int {
	var probe struct {
		ID int `json:"ID"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0
	}
	return probe.ID
}

// itemLoadCase extracts the LCNAME field of a raw item.
func itemLoadCase(raw json.RawMessage) string {
	var probe struct {
		LCName string `json:"LCNAME"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.LCName
}

// ApplyOptions tune the beam-load write.
type ApplyOptions struct {
	// MaxItemsPerPut caps total ITEMS per PUT request. An element's merged
	// item list is never split across PUTs.
	MaxItemsPerPut int
	// ReplaceExisting drops existing items whose LCNAME appears in the plan
	// before merging, so re-running a plan replaces instead of stacking.
	ReplaceExisting bool
}

// DefaultApplyOptions match the standard interactive run.
func DefaultApplyOptions() ApplyOptions {
	return ApplyOptions{MaxItemsPerPut: 5000, ReplaceExisting: true}
}

// ApplyBeamLoads writes a beam-load plan to /db/BMLD. Existing items are
// read once, items for the plan's load cases are optionally dropped, new
// items get per-element sequential IDs, and the merged blocks are PUT in
// batches capped by item count.
func (c *Client) ApplyBeamLoads(ctx context.Context, plan []wind.Row, opts ApplyOptions) error {
	if len(plan) == 0 {
		zap.L().Info("midas: beam load plan is empty, nothing to send")
		return nil
	}
	if opts.MaxItemsPerPut < 1 {
		opts.MaxItemsPerPut = 1
	}

	planCases := map[string]bool{}
	rowsByEID := map[int][]wind.Row{}
	for _, r := range plan {
		if r.LineLoad > -1e-9 && r.LineLoad < 1e-9 {
			continue
		}
		planCases[r.LoadCase] = true
		rowsByEID[r.ElementID] = append(rowsByEID[r.ElementID], r)
	}
	if len(rowsByEID) == 0 {
		zap.L().Info("midas: all plan loads are ~0, nothing to send")
		return nil
	}

	raw, err := c.get(ctx, pathBeamLoad)
	if err != nil {
		return err
	}
	existing, err := parseBeamLoadTable(raw)
	if err != nil {
		return err
	}

	touched := make([]int, 0, len(rowsByEID))
	for eid := range rowsByEID {
		touched = append(touched, eid)
	}
	sort.Ints(touched)

	merged := map[int][]json.RawMessage{}
	for _, eid := range touched {
		kept := existing[eid]
		if opts.ReplaceExisting {
			filtered := kept[:0:0]
			for _, item := range kept {
				if !planCases[itemLoadCase(item)] {
					filtered = append(filtered, item)
				}
			}
			kept = filtered
		}

		nextID := 1
		for _, item := range kept {
			if id := itemID(item); id >= nextID {
				nextID = id + 1
			}
		}

		items := append([]json.RawMessage(nil), kept...)
		for _, r := range rowsByEID[eid] {
			item := newBeamLoadItem(nextID, r)
			nextID++
			encoded, err := json.Marshal(item)
			if err != nil {
				return eris.Wrapf(err, "midas: encode beam load item for element %d", eid)
			}
			items = append(items, encoded)
		}
		merged[eid] = items
	}

	return c.putBeamLoadBatches(ctx, touched, merged, opts.MaxItemsPerPut)
}

// newBeamLoadItem builds the wire item for one plan row: a uniform beam load
// over the full span, with eccentric application when the row carries one.
func newBeamLoadItem(id int, r wind.Row) BeamLoadItem {
	useEccen := r.Eccentricity > 1e-9 || r.Eccentricity < -1e-9
	item := BeamLoadItem{
		ID:        id,
		LCName:    r.LoadCase,
		GroupName: r.LoadGroup,
		Cmd:       "BEAM",
		Type:      "UNILOAD",
		Direction: r.Direction,
		UseEccen:  useEccen,
		D:         [4]float64{0, 1, 0, 0},
		P:         [4]float64{r.LineLoad, r.LineLoad, 0, 0},
	}
	if useEccen {
		item.EccenType = 1
		item.EccenDir = "GZ"
		item.IEnd = r.Eccentricity
		item.JEnd = r.Eccentricity
		item.UseJEnd = true
	}
	return item
}

// parseBeamLoadTable unpacks GET /db/BMLD into per-element raw item lists.
// Items are kept as raw JSON so untouched fields round-trip unchanged.
func parseBeamLoadTable(raw []byte) (map[int][]json.RawMessage, error) {
	var envelope struct {
		BMLD map[string]beamLoadBlock `json:"BMLD"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, eris.Wrap(err, "midas: parse beam load table")
	}
	out := make(map[int][]json.RawMessage, len(envelope.BMLD))
	for key, block := range envelope.BMLD {
		eid, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		out[eid] = block.Items
	}
	return out, nil
}

// putBeamLoadBatches sends merged blocks in element batches whose total item
// count stays within the cap. An element exceeding the cap alone is sent
// alone.
func (c *Client) putBeamLoadBatches(ctx context.Context, touched []int, merged map[int][]json.RawMessage, maxItems int) error {
	idx := 0
	request := 0
	for idx < len(touched) {
		var batch []int
		batchItems := 0

		for idx < len(touched) {
			eid := touched[idx]
			n := len(merged[eid])
			if len(batch) == 0 && n > maxItems {
				batch = []int{eid}
				batchItems = n
				idx++
				break
			}
			if len(batch) > 0 && batchItems+n > maxItems {
				break
			}
			batch = append(batch, eid)
			batchItems += n
			idx++
		}

		assign := make(map[string]map[string][]json.RawMessage, len(batch))
		for _, eid := range batch {
			assign[strconv.Itoa(eid)] = map[string][]json.RawMessage{"ITEMS": merged[eid]}
		}

		request++
		zap.L().Info("midas: sending beam load batch",
			zap.Int("request", request),
			zap.Int("elements", len(batch)),
			zap.Int("items", batchItems),
		)
		if _, err := c.put(ctx, pathBeamLoad, map[string]any{"Assign": assign}); err != nil {
			return eris.Wrapf(err, "midas: beam load batch %d", request)
		}
	}
	return nil
}
