package beam

import (
	"math"

	"github.com/alexiusacademia/rcflex/internal/aci"
)

// SinglyReinforced represents a rectangular section with tension steel only
type SinglyReinforced struct {
	Geometry  Geometry
	Materials Materials
}

// NewSinglyReinforced creates a singly reinforced section
func NewSinglyReinforced(g Geometry, m Materials) SinglyReinforced {
	return SinglyReinforced{Geometry: g, Materials: m}
}

// Analyze calculates the flexural capacity for a tension steel area As (cm²)
func (s SinglyReinforced) Analyze(as float64) (*CapacityResult, error) {
	g, m := s.Geometry, s.Materials
	b := g.Width
	d := g.EffectiveDepth()

	if b <= 0 || d <= 0 || m.Fc <= 0 {
		return nil, degeneratef("b=%.2f, d=%.2f, f'c=%.2f", b, d, m.Fc)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if as < 0 {
		return nil, invalidf("invalid reinforcement area: As=%.2f", as)
	}

	result := &CapacityResult{
		Kind:          KindSingly,
		Reinforcement: Reinforcement{AsTension: as},
		Beta1:         aci.Beta1(m.Fc),
		D:             d,
		Method:        MethodClosedForm,
		Converged:     true,
	}
	result.steelThresholds(g, m, d)
	result.Branch = aci.SteelBranchFor(as, result.AsBalanced)

	switch result.Branch {
	case aci.Yielding:
		// T = C → As·fy = 0.85·f'c·b·a
		t := as * m.Fy
		result.A = t / (0.85 * m.Fc * b)
		result.C = result.A / result.Beta1
		result.Mn = t * (d - result.A/2) / kgcmPerTonm
	case aci.NonYielding:
		// A·a² + B·a + C = 0, positive root
		qa := (0.85 * m.Fc) / (m.Ecu * m.Es * (as / (b * d)))
		qb := d
		qc := -result.Beta1 * d * d
		disc := qb*qb - 4*qa*qc
		if disc <= 0 {
			return nil, degeneratef("non-positive discriminant %.4g", disc)
		}
		result.A = (-qb + math.Sqrt(disc)) / (2 * qa)
		result.C = result.A / result.Beta1
		result.Mn = 0.85 * m.Fc * result.A * b * (d - result.A/2) / kgcmPerTonm
	}

	if result.C <= 0 {
		return nil, degeneratef("neutral axis depth c=%.4g with As=%.2f", result.C, as)
	}

	result.PhiMn = m.PhiFlexure * result.Mn
	result.FailureMode = aci.ClassifyByArea(as, result.AsBalanced)
	result.EpsilonS = m.Ecu * (d - result.C) / result.C

	if result.Branch == aci.Yielding {
		result.Fs = m.Fy
	} else {
		result.Fs = aci.SteelStress(result.EpsilonS, m.Fy, m.Es)
	}
	result.TensionYielded = result.EpsilonS >= m.YieldStrain()
	result.Cc = 0.85 * m.Fc * b * result.A / kgPerTon
	result.T = as * result.Fs / kgPerTon

	return result, nil
}
