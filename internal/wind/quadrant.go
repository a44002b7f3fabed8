// Package wind builds directional wind-load component tables (live WL, deck
// structural WS, substructure WS) and converts them into per-element uniform
// beam line-load plans.
package wind

import "regexp"

// quadrantRe matches Q1..Q4 tags embedded in load case names, e.g.
// "WS_Q2_A15" or "WLQ3". Case-insensitive, word-bounded.
var quadrantRe = regexp.MustCompile(`(?i)(?:_Q|Q)([1-4])\b`)

// ParseQuadrant extracts the quadrant tag from a load case name. Names
// without a tag are omnidirectional and default to Q1 (no sign flip).
func ParseQuadrant(name string) int {
	m := quadrantRe.FindStringSubmatch(name)
	if m == nil {
		return 1
	}
	return int(m[1][0] - '0')
}

// quadrantSigns is the fixed 2x2 sign table over (transverse, longitudinal),
// a right-hand convention around the vertical axis.
var quadrantSigns = map[int][2]float64{
	1: {+1, +1},
	2: {+1, -1},
	3: {-1, -1},
	4: {-1, +1},
}

// ApplyQuadrant flips the signs of (t, l) per the quadrant convention.
// Unknown quadrants behave as Q1.
func ApplyQuadrant(q int, t, l float64) (float64, float64) {
	s, ok := quadrantSigns[q]
	if !ok {
		s = quadrantSigns[1]
	}
	return s[0] * t, s[1] * l
}
