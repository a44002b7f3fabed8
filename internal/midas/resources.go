package midas

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/windload-cli/internal/model"
)

// Table paths on the model API.
const (
	pathNodes    = "/db/NODE"
	pathElements = "/db/ELEM"
	pathSections = "/db/SECT"
	pathGroups   = "/db/GRUP"
	pathBeamLoad = "/db/BMLD"
)

// Nodes fetches and parses the node table.
func (c *Client) Nodes(ctx context.Context) (map[string]model.Node, error) {
	raw, err := c.get(ctx, pathNodes)
	if err != nil {
		return nil, err
	}
	nodes, err := model.ParseNodes(raw)
	if err != nil {
		return nil, eris.Wrap(err, "midas: nodes")
	}
	return nodes, nil
}

// Elements fetches and parses the element table.
func (c *Client) Elements(ctx context.Context) (map[string]model.Element, error) {
	raw, err := c.get(ctx, pathElements)
	if err != nil {
		return nil, err
	}
	elements, err := model.ParseElements(raw)
	if err != nil {
		return nil, eris.Wrap(err, "midas: elements")
	}
	return elements, nil
}

// Sections fetches and parses the section table.
func (c *Client) Sections(ctx context.Context) (map[string]model.Section, error) {
	raw, err := c.get(ctx, pathSections)
	if err != nil {
		return nil, err
	}
	sections, err := model.ParseSections(raw)
	if err != nil {
		return nil, eris.Wrap(err, "midas: sections")
	}
	return sections, nil
}

// Groups fetches and parses the structural group table.
func (c *Client) Groups(ctx context.Context) (map[string]model.Group, error) {
	raw, err := c.get(ctx, pathGroups)
	if err != nil {
		return nil, err
	}
	groups, err := model.ParseGroups(raw)
	if err != nil {
		return nil, eris.Wrap(err, "midas: groups")
	}
	return groups, nil
}

// Snapshot fetches all four model tables. Node and element tables are
// required; empty section or group tables are tolerated.
func (c *Client) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	nodes, err := c.Nodes(ctx)
	if err != nil {
		return nil, err
	}
	elements, err := c.Elements(ctx)
	if err != nil {
		return nil, err
	}
	sections, err := c.Sections(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := c.Groups(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Snapshot{
		Nodes:    nodes,
		Elements: elements,
		Sections: sections,
		Groups:   groups,
	}, nil
}
