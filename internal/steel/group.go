package steel

import (
	"fmt"
	"strconv"
	"strings"
)

// BarGroup is a number of identical bars in one layer
type BarGroup struct {
	Count       int    `json:"count" yaml:"count"`
	Designation string `json:"size" yaml:"size"`
}

func (g BarGroup) String() string {
	return fmt.Sprintf("%dx%s", g.Count, g.Designation)
}

// ParseGroup parses a group written as "3x5/8\"" (count, 'x', designation).
// A bare designation means a single bar.
func ParseGroup(s string) (BarGroup, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BarGroup{}, fmt.Errorf("empty bar group")
	}

	count, designation, found := strings.Cut(s, "x")
	if !found {
		return BarGroup{Count: 1, Designation: s}, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil {
		return BarGroup{}, fmt.Errorf("invalid bar count in %q: %v", s, err)
	}
	if n < 0 {
		return BarGroup{}, fmt.Errorf("negative bar count in %q", s)
	}

	designation = strings.TrimSpace(designation)
	if designation == "" {
		return BarGroup{}, fmt.Errorf("missing bar size in %q", s)
	}

	return BarGroup{Count: n, Designation: designation}, nil
}

// ParseGroups parses a comma separated list of groups, e.g. `2x1",1x5/8"`
func ParseGroups(s string) ([]BarGroup, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var groups []BarGroup
	for _, part := range strings.Split(s, ",") {
		g, err := ParseGroup(part)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// FormatGroups is the inverse of ParseGroups, skipping zero-count groups
func FormatGroups(groups []BarGroup) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		if g.Count == 0 {
			continue
		}
		parts = append(parts, g.String())
	}
	return strings.Join(parts, ",")
}

// TotalCount returns the number of bars across the groups
func TotalCount(groups []BarGroup) int {
	var n int
	for _, g := range groups {
		n += g.Count
	}
	return n
}
