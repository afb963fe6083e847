package batch

import (
	"context"
	"errors"

	"github.com/alexiusacademia/rcflex/internal/beam"
	"github.com/alexiusacademia/rcflex/internal/config"
	"github.com/alexiusacademia/rcflex/internal/layout"
	"github.com/alexiusacademia/rcflex/internal/log"
	"github.com/alexiusacademia/rcflex/internal/steel"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats/scalar"
)

// Outcome is the evaluation of one row
type Outcome struct {
	Row       Row
	Geometry  beam.Geometry
	Materials beam.Materials
	Result    *beam.CapacityResult
	Layout    layout.Result
	Err       error
}

func (o Outcome) status() string {
	switch {
	case o.Err == nil:
		return "ok"
	case errors.Is(o.Err, beam.ErrNonConvergent):
		return "warning: " + o.Err.Error()
	default:
		return "error: " + o.Err.Error()
	}
}

// Failed reports whether the row produced no result
func (o Outcome) Failed() bool {
	return o.Result == nil
}

func round(v float64, places int) float64 {
	return scalar.Round(v, places)
}

// Runner evaluates rows in parallel
type Runner struct {
	Catalog *steel.Catalog
	Config  config.Config
	Workers int
}

// NewRunner creates a runner using the configured materials, covers,
// detailing allowances and solver options
func NewRunner(catalog *steel.Catalog, cfg config.Config) *Runner {
	return &Runner{Catalog: catalog, Config: cfg, Workers: cfg.Batch.Workers}
}

func (rn *Runner) evaluate(row Row) Outcome {
	o := Outcome{Row: row}
	if row.Err != nil {
		o.Err = row.Err
		return o
	}

	var err error
	o.Geometry, err = rn.Config.Geometry(row.Width, row.Height, row.Layers)
	if err != nil {
		o.Err = err
		return o
	}
	o.Materials = rn.Config.Materials
	if row.Fc > 0 {
		o.Materials.Fc = row.Fc
	}
	if row.Fy > 0 {
		o.Materials.Fy = row.Fy
	}

	o.Layout, err = layout.MinimumWidth(rn.Catalog, row.Tension, rn.Config.Layout)
	if err != nil {
		o.Err = err
		return o
	}

	o.Result, o.Err = beam.NewEvaluator(rn.Catalog, rn.Config.Solver).Evaluate(o.Geometry, o.Materials, row.Tension, row.Compression)
	return o
}

// Run evaluates every row with at most Workers rows in flight. Outcomes keep
// the input order. Row errors are recorded in the outcome; only a cancelled
// context fails the run.
func (rn *Runner) Run(ctx context.Context, rows []Row) ([]Outcome, error) {
	outcomes := make([]Outcome, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(rn.Workers, 1))

	for i, row := range rows {
		i, row := i, row // per-iteration copy; module targets go 1.21
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = rn.evaluate(row)
			if outcomes[i].Err != nil {
				log.Debugw("batch row", "line", row.Line, "label", row.Label, "error", outcomes[i].Err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Summary counts evaluated, warned and failed rows
type Summary struct {
	Total, OK, Warnings, Failed int
}

// Summarize counts the outcomes by status
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.Failed():
			s.Failed++
		case o.Err != nil:
			s.Warnings++
		default:
			s.OK++
		}
	}
	return s
}
