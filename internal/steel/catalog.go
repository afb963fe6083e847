// Package steel holds the reinforcing bar catalog and bar group arithmetic.
package steel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// ErrUnknownBarSize is returned when a designation is not in the catalog
var ErrUnknownBarSize = errors.New("unknown bar size")

// BarSize is a catalog entry
type BarSize struct {
	Designation string  `json:"designation"`
	Area        float64 `json:"area"` // cm²
}

// Diameter returns the nominal diameter derived from the area (cm)
func (s BarSize) Diameter() float64 {
	return math.Sqrt(4 * s.Area / math.Pi)
}

// Catalog maps bar designations to their sizes. It is read-only once built.
type Catalog struct {
	sizes map[string]BarSize
	order []string
}

// NewCatalog builds a catalog from the given sizes, keeping their order
func NewCatalog(sizes ...BarSize) (*Catalog, error) {
	c := &Catalog{
		sizes: make(map[string]BarSize, len(sizes)),
		order: make([]string, 0, len(sizes)),
	}
	for _, s := range sizes {
		if s.Designation == "" {
			return nil, fmt.Errorf("bar size with empty designation")
		}
		if s.Area <= 0 {
			return nil, fmt.Errorf("bar size %q: area must be positive, got %.2f", s.Designation, s.Area)
		}
		if _, dup := c.sizes[s.Designation]; dup {
			return nil, fmt.Errorf("duplicate bar size %q", s.Designation)
		}
		c.sizes[s.Designation] = s
		c.order = append(c.order, s.Designation)
	}
	return c, nil
}

// Standard is the catalog of commercial bars (areas in cm²)
var Standard = mustCatalog(
	BarSize{"6mm", 0.28},
	BarSize{`1/4"`, 0.32},
	BarSize{"8mm", 0.50},
	BarSize{`3/8"`, 0.71},
	BarSize{"12mm", 1.13},
	BarSize{`1/2"`, 1.29},
	BarSize{`5/8"`, 2.00},
	BarSize{`3/4"`, 2.84},
	BarSize{`1"`, 5.10},
	BarSize{`1 3/8"`, 10.06},
)

func mustCatalog(sizes ...BarSize) *Catalog {
	c, err := NewCatalog(sizes...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the bar size for a designation
func (c *Catalog) Lookup(designation string) (BarSize, error) {
	s, ok := c.sizes[designation]
	if !ok {
		return BarSize{}, fmt.Errorf("%w: %q", ErrUnknownBarSize, designation)
	}
	return s, nil
}

// Area returns the cross-sectional area of a bar (cm²)
func (c *Catalog) Area(designation string) (float64, error) {
	s, err := c.Lookup(designation)
	if err != nil {
		return 0, err
	}
	return s.Area, nil
}

// Diameter returns the nominal diameter of a bar (cm)
func (c *Catalog) Diameter(designation string) (float64, error) {
	s, err := c.Lookup(designation)
	if err != nil {
		return 0, err
	}
	return s.Diameter(), nil
}

// Designations lists the catalog designations in catalog order
func (c *Catalog) Designations() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Sizes lists the catalog entries in catalog order
func (c *Catalog) Sizes() []BarSize {
	out := make([]BarSize, 0, len(c.order))
	for _, d := range c.order {
		out = append(out, c.sizes[d])
	}
	return out
}

// GroupsArea sums count·area over the groups, rounded to 2 decimals.
// Zero-count groups are skipped without a lookup.
func (c *Catalog) GroupsArea(groups []BarGroup) (float64, error) {
	areas := make([]float64, 0, len(groups))
	for _, g := range groups {
		if g.Count == 0 {
			continue
		}
		if g.Count < 0 {
			return 0, fmt.Errorf("negative bar count %d for %s", g.Count, g.Designation)
		}
		a, err := c.Area(g.Designation)
		if err != nil {
			return 0, err
		}
		areas = append(areas, float64(g.Count)*a)
	}
	return scalar.Round(floats.Sum(areas), 2), nil
}
