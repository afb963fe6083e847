package beam

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/rcflex/internal/aci"
)

var (
	// ErrInvalidInput marks geometry or material values outside their invariants
	ErrInvalidInput = errors.New("invalid input")
	// ErrDegenerateSection marks a non-physical section: zero depth, zero area,
	// a negative discriminant or a non-positive neutral axis
	ErrDegenerateSection = errors.New("degenerate section")
	// ErrNonConvergent is returned with the last estimate when the neutral axis
	// iteration runs out of iterations
	ErrNonConvergent = errors.New("neutral axis iteration did not converge")
)

// ValidationError describes which input broke an invariant
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalidf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func degeneratef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDegenerateSection, fmt.Sprintf(format, args...))
}

// Geometry of a rectangular section (cm)
type Geometry struct {
	Width     float64 `json:"b" yaml:"b"`                       // b
	Height    float64 `json:"h" yaml:"h"`                       // h
	Cover     float64 `json:"r" yaml:"r"`                       // to the tension steel centroid
	CoverComp float64 `json:"r_comp,omitempty" yaml:"r_comp"` // to the compression steel centroid, 0 = Cover
}

// EffectiveDepth returns d = h - r
func (g Geometry) EffectiveDepth() float64 {
	return g.Height - g.Cover
}

// CompressionDepth returns d', the depth of the compression steel
func (g Geometry) CompressionDepth() float64 {
	if g.CoverComp > 0 {
		return g.CoverComp
	}
	return g.Cover
}

// Validate checks b > 0, h > 0 and 0 < r < h
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return invalidf("invalid section dimensions: b=%.2f, h=%.2f", g.Width, g.Height)
	}
	if g.Cover <= 0 || g.Cover >= g.Height {
		return invalidf("cover must be within (0, h): r=%.2f, h=%.2f", g.Cover, g.Height)
	}
	if g.CoverComp < 0 || g.CoverComp >= g.Height {
		return invalidf("compression cover must be within [0, h): r'=%.2f, h=%.2f", g.CoverComp, g.Height)
	}
	return nil
}

// Materials in kg/cm²
type Materials struct {
	Fc         float64 `json:"fc" yaml:"fc"`   // f'c - concrete compressive strength
	Fy         float64 `json:"fy" yaml:"fy"`   // fy - steel yield strength
	Es         float64 `json:"es" yaml:"es"`   // steel modulus
	Ecu        float64 `json:"ecu" yaml:"ecu"` // ultimate concrete strain
	PhiFlexure float64 `json:"phi" yaml:"phi"` // strength reduction factor
}

// DefaultMaterials: f'c 210, fy 4200, Es 2,000,000, εcu 0.003, φ 0.9
func DefaultMaterials() Materials {
	return Materials{
		Fc:         aci.DefaultFc,
		Fy:         aci.DefaultFy,
		Es:         aci.Es,
		Ecu:        aci.EpsilonCU,
		PhiFlexure: aci.PhiFlexure,
	}
}

// Validate checks that all properties are positive and 0 < φ <= 1
func (m Materials) Validate() error {
	if m.Fc <= 0 || m.Fy <= 0 {
		return invalidf("invalid material properties: f'c=%.2f, fy=%.2f", m.Fc, m.Fy)
	}
	if m.Es <= 0 || m.Ecu <= 0 {
		return invalidf("invalid steel modulus or concrete strain: Es=%.0f, εcu=%.4f", m.Es, m.Ecu)
	}
	if m.PhiFlexure <= 0 || m.PhiFlexure > 1 {
		return invalidf("strength reduction factor must be within (0, 1]: φ=%.2f", m.PhiFlexure)
	}
	return nil
}

// YieldStrain returns εy = fy/Es
func (m Materials) YieldStrain() float64 {
	return aci.YieldStrain(m.Fy, m.Es)
}

// Kind of section
type Kind string

const (
	KindSingly Kind = "singly"
	KindDoubly Kind = "doubly"
)

// Reinforcement areas (cm²), rounded to 2 decimals
type Reinforcement struct {
	AsTension     float64 `json:"as_tension"`
	AsCompression float64 `json:"as_compression"`
}

// CapacityResult is the outcome of one section evaluation.
// Lengths in cm, areas in cm², stresses in kg/cm², forces in tonf, moments in ton·m.
type CapacityResult struct {
	Kind          Kind          `json:"kind"`
	Reinforcement Reinforcement `json:"reinforcement"`

	// Section properties
	Beta1 float64 `json:"beta1"`
	D     float64 `json:"d"`                // effective depth to the tension steel
	DComp float64 `json:"d_comp,omitempty"` // depth to the compression steel

	// Steel area thresholds
	AsMin      float64 `json:"as_min"`
	AsBalanced float64 `json:"as_balanced"`
	AsMax      float64 `json:"as_max"`

	// Neutral axis and compression block
	C float64 `json:"c"`
	A float64 `json:"a"`

	// Strains
	EpsilonS  float64 `json:"epsilon_s"`            // tension steel
	EpsilonSc float64 `json:"epsilon_sc,omitempty"` // compression steel

	// Stresses
	Fs  float64 `json:"fs"`
	Fsc float64 `json:"fsc,omitempty"`

	// Forces
	T  float64 `json:"t"`
	Cc float64 `json:"cc"`
	Cs float64 `json:"cs,omitempty"`

	TensionYielded bool `json:"tension_yielded"`
	CompYielded    bool `json:"comp_yielded,omitempty"`

	// Capacity
	Mn    float64 `json:"mn"`
	PhiMn float64 `json:"phi_mn"`

	// Singly reinforced branch taken, zero for doubly reinforced sections
	Branch      aci.SteelBranch `json:"branch,omitempty"`
	FailureMode aci.FailureMode `json:"failure_mode"`

	// Solver bookkeeping
	Method     Method `json:"method"`
	Iterations int    `json:"iterations"`
	Converged  bool   `json:"converged"`
}

// Imbalance returns T - (Cc + Cs) in tonf
func (r *CapacityResult) Imbalance() float64 {
	return r.T - (r.Cc + r.Cs)
}

// steelThresholds fills As,min, As,bal and As,max for effective depth d
func (r *CapacityResult) steelThresholds(g Geometry, m Materials, d float64) {
	r.AsMin = aci.AsMin(m.Fc, m.Fy, g.Width, d)
	r.AsBalanced = aci.AsBalanced(m.Fc, m.Fy, m.Es, m.Ecu, r.Beta1, g.Width, d)
	r.AsMax = aci.AsMax(r.AsBalanced)
}

// kg·cm to ton·m
const kgcmPerTonm = 1000 * 100

// kg to tonf
const kgPerTon = 1000
