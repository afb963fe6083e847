package beam

import (
	"fmt"

	"github.com/alexiusacademia/rcflex/internal/steel"
)

// AreaLookup sums the steel area (cm²) of a list of bar groups
type AreaLookup interface {
	GroupsArea(groups []steel.BarGroup) (float64, error)
}

// Evaluator turns bar groups into a capacity result
type Evaluator struct {
	Catalog AreaLookup
	Options SolverOptions
}

// NewEvaluator creates an evaluator backed by a bar catalog
func NewEvaluator(catalog AreaLookup, opts SolverOptions) *Evaluator {
	return &Evaluator{Catalog: catalog, Options: opts.withDefaults()}
}

// Areas returns the tension and compression steel areas, each rounded to 2 decimals
func (e *Evaluator) Areas(tension, compression []steel.BarGroup) (Reinforcement, error) {
	as, err := e.Catalog.GroupsArea(tension)
	if err != nil {
		return Reinforcement{}, fmt.Errorf("tension steel: %w", err)
	}
	asc, err := e.Catalog.GroupsArea(compression)
	if err != nil {
		return Reinforcement{}, fmt.Errorf("compression steel: %w", err)
	}
	return Reinforcement{AsTension: as, AsCompression: asc}, nil
}

// Evaluate sums the bar areas and analyzes the section as doubly reinforced
// when there is compression steel, singly reinforced otherwise.
// A non-convergent iteration returns the result together with ErrNonConvergent.
func (e *Evaluator) Evaluate(g Geometry, m Materials, tension, compression []steel.BarGroup) (*CapacityResult, error) {
	r, err := e.Areas(tension, compression)
	if err != nil {
		return nil, err
	}

	if r.AsCompression > 0 {
		return NewDoublyReinforced(g, m, e.Options).Analyze(r.AsTension, r.AsCompression)
	}
	return NewSinglyReinforced(g, m).Analyze(r.AsTension)
}
