// Package layout computes the minimum section width that places a layer of
// bars with the required cover, stirrup allowance and clear spacing.
package layout

import (
	"fmt"

	"github.com/alexiusacademia/rcflex/internal/steel"
	"gonum.org/v1/gonum/floats/scalar"
)

// DiameterLookup resolves a bar designation to its diameter (cm)
type DiameterLookup interface {
	Diameter(designation string) (float64, error)
}

// Params are the detailing allowances (cm)
type Params struct {
	Cover           float64 `json:"cover" yaml:"cover"`
	StirrupDiameter float64 `json:"stirrup" yaml:"stirrup"`
	MinClearSpacing float64 `json:"spacing" yaml:"spacing"`
}

// DefaultParams: 4 cm cover, 1 cm stirrup, 1" clear spacing
var DefaultParams = Params{
	Cover:           4.0,
	StirrupDiameter: 1.0,
	MinClearSpacing: 2.54,
}

// Result is the minimum width and the number of bars it holds
type Result struct {
	Width    float64 `json:"width"`
	BarCount int     `json:"bar_count"`
}

// Fits reports whether a section of width b takes the bars in one layer
func (r Result) Fits(b float64) bool {
	return b >= r.Width
}

// MinimumWidth returns the narrowest section that holds the groups in one layer:
//
//	b_min = Σ n·db + (N-1)·s + 2·cover + 2·stirrup
//
// Zero-count groups are dropped; with no bars left the result is (0, 0).
func MinimumWidth(lookup DiameterLookup, groups []steel.BarGroup, p Params) (Result, error) {
	var barsWidth float64
	var n int

	for _, g := range groups {
		if g.Count == 0 {
			continue
		}
		if g.Count < 0 {
			return Result{}, fmt.Errorf("negative bar count %d for %s", g.Count, g.Designation)
		}
		db, err := lookup.Diameter(g.Designation)
		if err != nil {
			return Result{}, err
		}
		barsWidth += float64(g.Count) * db
		n += g.Count
	}

	if n == 0 {
		return Result{}, nil
	}

	spacing := float64(n-1) * p.MinClearSpacing
	width := barsWidth + spacing + 2*p.Cover + 2*p.StirrupDiameter

	return Result{Width: scalar.Round(width, 2), BarCount: n}, nil
}
