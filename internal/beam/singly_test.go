package beam

import (
	"errors"
	"testing"

	"github.com/alexiusacademia/rcflex/internal/aci"
	"gonum.org/v1/gonum/floats/scalar"
)

func testGeometry() Geometry {
	return Geometry{Width: 30, Height: 50, Cover: 6}
}

func TestSinglyReinforcedOneBar(t *testing.T) {
	// One 1" bar in a 30x50 section, f'c 210, fy 4200
	r, err := NewSinglyReinforced(testGeometry(), DefaultMaterials()).Analyze(5.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"beta1", r.Beta1, 0.85, 1e-12},
		{"d", r.D, 44, 1e-12},
		{"AsMin", r.AsMin, 3.1881, 1e-4},
		{"AsBalanced", r.AsBalanced, 28.05, 1e-9},
		{"AsMax", r.AsMax, 21.0375, 1e-9},
		{"a", r.A, 4.0, 1e-9},
		{"c", r.C, 4.705882, 1e-6},
		{"Mn", r.Mn, 8.9964, 1e-9},
		{"PhiMn", r.PhiMn, 8.09676, 1e-9},
		{"EpsilonS", r.EpsilonS, 0.02505, 1e-9},
		{"Cc", r.Cc, 21.42, 1e-9},
		{"T", r.T, 21.42, 1e-9},
		{"Fs", r.Fs, 4200, 1e-9},
	}
	for _, c := range checks {
		if !scalar.EqualWithinAbs(c.got, c.want, c.tol) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if r.Branch != aci.Yielding {
		t.Errorf("Branch = %v, want yielding", r.Branch)
	}
	if r.FailureMode != aci.FailureTension {
		t.Errorf("FailureMode = %v, want Tension", r.FailureMode)
	}
	if !r.TensionYielded {
		t.Error("tension steel should yield")
	}
	if r.Kind != KindSingly || !r.Converged || r.Method != MethodClosedForm {
		t.Errorf("unexpected bookkeeping: kind=%s converged=%v method=%s", r.Kind, r.Converged, r.Method)
	}
}

func TestSinglyReinforcedBranches(t *testing.T) {
	tests := []struct {
		name       string
		as         float64
		wantBranch aci.SteelBranch
		wantMode   aci.FailureMode
		wantA      float64
		wantMn     float64
		wantEps    float64
	}{
		{
			name:       "under-reinforced",
			as:         5.1,
			wantBranch: aci.Yielding,
			wantMode:   aci.FailureTension,
			wantA:      4.0,
			wantMn:     8.9964,
			wantEps:    0.02505,
		},
		{
			name:       "at the balanced area",
			as:         28.05,
			wantBranch: aci.NonYielding,
			wantMode:   aci.FailureBalanced,
			wantA:      22.0,
			wantMn:     38.8773,
			wantEps:    0.0021,
		},
		{
			name:       "over-reinforced",
			as:         30.6,
			wantBranch: aci.NonYielding,
			wantMode:   aci.FailureCompression,
			wantA:      22.5581,
			wantMn:     39.5264,
			wantEps:    0.001974,
		},
	}

	s := NewSinglyReinforced(testGeometry(), DefaultMaterials())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := s.Analyze(tt.as)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Branch != tt.wantBranch {
				t.Errorf("Branch = %v, want %v", r.Branch, tt.wantBranch)
			}
			if r.FailureMode != tt.wantMode {
				t.Errorf("FailureMode = %v, want %v", r.FailureMode, tt.wantMode)
			}
			if !scalar.EqualWithinAbs(r.A, tt.wantA, 1e-4) {
				t.Errorf("a = %v, want %v", r.A, tt.wantA)
			}
			if !scalar.EqualWithinAbs(r.Mn, tt.wantMn, 1e-4) {
				t.Errorf("Mn = %v, want %v", r.Mn, tt.wantMn)
			}
			if !scalar.EqualWithinAbs(r.EpsilonS, tt.wantEps, 1e-6) {
				t.Errorf("εs = %v, want %v", r.EpsilonS, tt.wantEps)
			}
			if !scalar.EqualWithinAbs(r.C, r.A/r.Beta1, 1e-12) {
				t.Errorf("c = %v, want a/β1 = %v", r.C, r.A/r.Beta1)
			}
		})
	}
}

func TestSinglyReinforcedOverReinforcedSteelIsElastic(t *testing.T) {
	r, err := NewSinglyReinforced(testGeometry(), DefaultMaterials()).Analyze(30.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TensionYielded {
		t.Error("over-reinforced tension steel should stay elastic")
	}
	if !scalar.EqualWithinAbs(r.Fs, aci.Es*r.EpsilonS, 1e-9) {
		t.Errorf("Fs = %v, want Es·εs = %v", r.Fs, aci.Es*r.EpsilonS)
	}
}

func TestSinglyReinforcedHighStrengthConcrete(t *testing.T) {
	m := DefaultMaterials()
	m.Fc = 350
	r, err := NewSinglyReinforced(testGeometry(), m).Analyze(10.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !scalar.EqualWithinAbs(r.Beta1, 0.8, 1e-12) {
		t.Errorf("beta1 = %v, want 0.8", r.Beta1)
	}
}

func TestSinglyReinforcedErrors(t *testing.T) {
	tests := []struct {
		name    string
		g       Geometry
		m       func(Materials) Materials
		as      float64
		wantErr error
	}{
		{
			name:    "no steel",
			g:       testGeometry(),
			as:      0,
			wantErr: ErrDegenerateSection,
		},
		{
			name:    "zero width",
			g:       Geometry{Width: 0, Height: 50, Cover: 6},
			as:      5.1,
			wantErr: ErrDegenerateSection,
		},
		{
			name:    "cover at full height",
			g:       Geometry{Width: 30, Height: 50, Cover: 50},
			as:      5.1,
			wantErr: ErrDegenerateSection,
		},
		{
			name:    "zero concrete strength",
			g:       testGeometry(),
			m:       func(m Materials) Materials { m.Fc = 0; return m },
			as:      5.1,
			wantErr: ErrDegenerateSection,
		},
		{
			name:    "negative steel area",
			g:       testGeometry(),
			as:      -1,
			wantErr: ErrInvalidInput,
		},
		{
			name:    "phi above one",
			g:       testGeometry(),
			m:       func(m Materials) Materials { m.PhiFlexure = 1.2; return m },
			as:      5.1,
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative cover",
			g:       Geometry{Width: 30, Height: 50, Cover: -2},
			as:      5.1,
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMaterials()
			if tt.m != nil {
				m = tt.m(m)
			}
			r, err := NewSinglyReinforced(tt.g, m).Analyze(tt.as)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if r != nil {
				t.Errorf("expected no result, got %+v", r)
			}
		})
	}
}

func TestValidationErrorUnwraps(t *testing.T) {
	err := Materials{Fc: -1, Fy: 4200, Es: 2e6, Ecu: 0.003, PhiFlexure: 0.9}.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should unwrap to ErrInvalidInput")
	}
}
