package midas

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// groupEntry is the /db/GRUP wire shape for one structural group.
type groupEntry struct {
	Name     string `json:"NAME"`
	ElemList []int  `json:"E_LIST"`
}

// UpsertGroups creates or replaces structural groups by name in one PUT.
// Existing groups keep their numeric keys; new groups get keys above the
// current maximum. Groups with empty member lists are skipped.
func (c *Client) UpsertGroups(ctx context.Context, groups map[string][]int) error {
	if len(groups) == 0 {
		return nil
	}

	raw, err := c.get(ctx, pathGroups)
	if err != nil {
		return err
	}
	existing, err := parseGroupTable(raw)
	if err != nil {
		return err
	}

	nameToKey := map[string]string{}
	maxKey := 0
	for key, entry := range existing {
		if n, err := strconv.Atoi(key); err == nil && n > maxKey {
			maxKey = n
		}
		if name := strings.TrimSpace(entry.Name); name != "" {
			nameToKey[name] = key
		}
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	assign := map[string]groupEntry{}
	nextKey := maxKey + 1
	for _, name := range names {
		members := groups[name]
		if len(members) == 0 {
			continue
		}
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return eris.New("midas: structural group name is required")
		}

		key, ok := nameToKey[trimmed]
		if !ok {
			key = strconv.Itoa(nextKey)
			nextKey++
		}
		assign[key] = groupEntry{Name: trimmed, ElemList: members}
	}
	if len(assign) == 0 {
		return nil
	}

	zap.L().Info("midas: upserting structural groups", zap.Int("groups", len(assign)))
	if _, err := c.put(ctx, pathGroups, map[string]any{"Assign": assign}); err != nil {
		return eris.Wrap(err, "midas: upsert groups")
	}
	return nil
}

func parseGroupTable(raw []byte) (map[string]groupEntry, error) {
	var envelope struct {
		Grup map[string]struct {
			Name string `json:"NAME"`
		} `json:"GRUP"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, eris.Wrap(err, "midas: parse group table")
	}
	out := make(map[string]groupEntry, len(envelope.Grup))
	for key, entry := range envelope.Grup {
		out[key] = groupEntry{Name: entry.Name}
	}
	return out, nil
}
