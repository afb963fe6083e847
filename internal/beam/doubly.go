package beam

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/rcflex/internal/aci"
)

// Method selects how the neutral axis is found
type Method string

const (
	// MethodClosedForm is the direct singly reinforced solution
	MethodClosedForm Method = "closed-form"
	// MethodIteration corrects c by the force imbalance until T = Cc + Cs
	MethodIteration Method = "iteration"
	// MethodQuadratic solves the equilibrium quadratic for each yield state
	MethodQuadratic Method = "quadratic"
)

// ParseMethod accepts "iteration" or "quadratic"
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodIteration, MethodQuadratic:
		return Method(s), nil
	case "":
		return MethodIteration, nil
	}
	return "", fmt.Errorf("unknown solver method %q (want %q or %q)", s, MethodIteration, MethodQuadratic)
}

// SolverOptions control the doubly reinforced solver
type SolverOptions struct {
	Method        Method  `json:"method" yaml:"method"`
	MaxIterations int     `json:"max_iterations" yaml:"max_iterations"`
	Tolerance     float64 `json:"tolerance" yaml:"tolerance"` // |T - Cc - Cs| in kg
	// Fallback solves the quadratic when the iteration runs out of iterations
	Fallback bool `json:"fallback" yaml:"fallback"`
}

// DefaultSolverOptions iterate at most 100 times to a 0.001 kg imbalance,
// then fall back to the quadratic
var DefaultSolverOptions = SolverOptions{
	Method:        MethodIteration,
	MaxIterations: 100,
	Tolerance:     1e-3,
	Fallback:      true,
}

func (o SolverOptions) withDefaults() SolverOptions {
	if o.Method == "" {
		o.Method = DefaultSolverOptions.Method
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultSolverOptions.MaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultSolverOptions.Tolerance
	}
	return o
}

// minNeutralAxis keeps the iterated c physical (cm)
const minNeutralAxis = 1e-3

// DoublyReinforced represents a rectangular section with tension and
// compression steel
type DoublyReinforced struct {
	Geometry  Geometry
	Materials Materials
	Options   SolverOptions
}

// NewDoublyReinforced creates a doubly reinforced section
func NewDoublyReinforced(g Geometry, m Materials, opts SolverOptions) DoublyReinforced {
	return DoublyReinforced{Geometry: g, Materials: m, Options: opts.withDefaults()}
}

// forceState is the strain, stress and force state for a trial neutral axis (kg, cm)
type forceState struct {
	c, a       float64
	epsS, epsC float64
	fs, fsc    float64
	t, cc, cs  float64
}

func (s forceState) imbalance() float64 {
	return s.t - (s.cc + s.cs)
}

// equilibrium holds everything but the neutral axis depth
type equilibrium struct {
	b, dTrac, dComp float64
	as, asc         float64
	m               Materials
	beta1           float64
}

func (e equilibrium) at(c float64) forceState {
	s := forceState{c: c, a: e.beta1 * c}
	s.epsS = e.m.Ecu * (e.dTrac - c) / c
	s.epsC = e.m.Ecu * (c - e.dComp) / c
	s.fs = aci.SteelStress(s.epsS, e.m.Fy, e.m.Es)
	s.fsc = aci.CompressionSteelStress(s.epsC, e.m.Fy, e.m.Es)
	s.t = e.as * s.fs
	s.cc = 0.85 * e.m.Fc * e.b * s.a
	s.cs = e.asc * s.fsc
	return s
}

// iterate starts at c = 0.1·h and moves c by imbalance/(0.85·f'c·b)
func (e equilibrium) iterate(h float64, opts SolverOptions) (forceState, int, bool) {
	c := 0.1 * h
	for i := 1; i <= opts.MaxIterations; i++ {
		s := e.at(c)
		if math.Abs(s.imbalance()) < opts.Tolerance {
			return s, i, true
		}
		c = math.Max(c+s.imbalance()/(0.85*e.m.Fc*e.b), minNeutralAxis)
	}
	return e.at(c), opts.MaxIterations, false
}

// yieldState is an assumption about which steels have yielded
type yieldState struct {
	tension, compression bool
}

// Tension yielding with elastic compression steel comes first, it is the
// usual state of an under-reinforced doubly reinforced beam.
var yieldStates = []yieldState{
	{tension: true, compression: false},
	{tension: true, compression: true},
	{tension: false, compression: false},
	{tension: false, compression: true},
}

// quadratic returns A, B, C of A·c² + B·c + C = 0, the equilibrium
// T = Cc + Cs multiplied through by c under the given yield state.
func (e equilibrium) quadratic(y yieldState) (qa, qb, qc float64) {
	esEcu := e.m.Es * e.m.Ecu
	qa = 0.85 * e.m.Fc * e.beta1 * e.b

	if y.compression {
		qb += e.asc * e.m.Fy
	} else {
		qb += e.asc * esEcu
		qc -= e.asc * esEcu * e.dComp
	}

	if y.tension {
		qb -= e.as * e.m.Fy
	} else {
		qb += e.as * esEcu
		qc -= e.as * esEcu * e.dTrac
	}
	return qa, qb, qc
}

// consistent reports whether a state matches the yield assumption it was solved under
func (e equilibrium) consistent(s forceState, y yieldState) bool {
	const slack = 1e-9
	epsY := e.m.YieldStrain()

	tensionOK := s.epsS <= epsY*(1+slack)
	if y.tension {
		tensionOK = s.epsS >= epsY*(1-slack)
	}
	compOK := s.epsC <= epsY*(1+slack)
	if y.compression {
		compOK = s.epsC >= epsY*(1-slack)
	}
	return tensionOK && compOK
}

// solveQuadratic tries each yield state and keeps the first whose positive
// root satisfies its own assumption.
func (e equilibrium) solveQuadratic() (forceState, int, error) {
	realRoots := false
	for i, y := range yieldStates {
		qa, qb, qc := e.quadratic(y)
		disc := qb*qb - 4*qa*qc
		if disc <= 0 {
			continue
		}
		realRoots = true
		c := (-qb + math.Sqrt(disc)) / (2 * qa)
		if c <= 0 {
			continue
		}
		s := e.at(c)
		if e.consistent(s, y) {
			return s, i + 1, nil
		}
	}
	if !realRoots {
		return forceState{}, len(yieldStates), degeneratef("non-positive discriminant for every yield state")
	}
	return forceState{}, len(yieldStates), degeneratef("no positive neutral axis satisfies equilibrium")
}

// Analyze calculates the flexural capacity for tension steel As and
// compression steel A's (cm²). Either area may be zero, not both. When the
// iteration does not converge and no fallback solution exists, the last
// estimate is returned together with ErrNonConvergent.
func (s DoublyReinforced) Analyze(as, asc float64) (*CapacityResult, error) {
	g, m := s.Geometry, s.Materials
	opts := s.Options.withDefaults()
	b := g.Width
	dTrac := g.EffectiveDepth()
	dComp := g.CompressionDepth()

	if b <= 0 || dTrac <= 0 || dComp <= 0 || m.Fc <= 0 {
		return nil, degeneratef("b=%.2f, d=%.2f, d'=%.2f, f'c=%.2f", b, dTrac, dComp, m.Fc)
	}
	if dComp >= dTrac {
		return nil, degeneratef("compression steel at d'=%.2f is not above tension steel at d=%.2f", dComp, dTrac)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if as < 0 {
		return nil, invalidf("invalid tension reinforcement: As=%.2f", as)
	}
	if asc < 0 {
		return nil, invalidf("invalid compression reinforcement: A's=%.2f", asc)
	}
	if as == 0 && asc == 0 {
		return nil, degeneratef("no reinforcement")
	}

	result := &CapacityResult{
		Kind:          KindDoubly,
		Reinforcement: Reinforcement{AsTension: as, AsCompression: asc},
		Beta1:         aci.Beta1(m.Fc),
		D:             dTrac,
		DComp:         dComp,
		Method:        opts.Method,
	}
	result.steelThresholds(g, m, dTrac)

	eq := equilibrium{
		b:     b,
		dTrac: dTrac,
		dComp: dComp,
		as:    as,
		asc:   asc,
		m:     m,
		beta1: result.Beta1,
	}

	var state forceState
	var convErr error

	switch opts.Method {
	case MethodIteration:
		st, n, ok := eq.iterate(g.Height, opts)
		state, result.Iterations, result.Converged = st, n, ok
		if ok {
			break
		}
		if opts.Fallback {
			if qs, k, err := eq.solveQuadratic(); err == nil {
				state, result.Iterations, result.Converged = qs, n+k, true
				result.Method = MethodQuadratic
				break
			}
		}
		convErr = fmt.Errorf("%w after %d iterations: |T - C| = %.4g kg", ErrNonConvergent, n, math.Abs(st.imbalance()))
	case MethodQuadratic:
		st, n, err := eq.solveQuadratic()
		if err != nil {
			return nil, err
		}
		state, result.Iterations, result.Converged = st, n, true
	default:
		return nil, invalidf("unknown solver method %q", opts.Method)
	}

	if state.c <= 0 {
		return nil, degeneratef("neutral axis depth c=%.4g", state.c)
	}

	result.C = state.c
	result.A = state.a
	result.EpsilonS = state.epsS
	result.EpsilonSc = state.epsC
	result.Fs = state.fs
	result.Fsc = state.fsc
	result.TensionYielded = state.epsS >= m.YieldStrain()
	result.CompYielded = state.epsC >= m.YieldStrain()

	// Mn = Cc·(d - a/2) + Cs·(d - d')
	mn := state.cc*(dTrac-state.a/2) + state.cs*(dTrac-dComp)
	result.Mn = mn / kgcmPerTonm
	result.PhiMn = m.PhiFlexure * result.Mn

	result.T = state.t / kgPerTon
	result.Cc = state.cc / kgPerTon
	result.Cs = state.cs / kgPerTon

	result.FailureMode = aci.ClassifyByStrain(state.epsS)

	return result, convErr
}
