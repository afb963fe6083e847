package beam

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/rcflex/internal/aci"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestDoublyReinforced(t *testing.T) {
	tests := []struct {
		name     string
		as, asc  float64
		wantC    float64
		wantMn   float64
		wantMode aci.FailureMode
	}{
		{"2x1 and 2x3/8 top", 10.2, 4.0, 8.06279, 17.2236, aci.FailureTension},
		{"3x1 and 2x1/2 top", 15.3, 5.68, 10.79277, 25.1130, aci.FailureTension},
		{"4x1 and 2x1 top", 20.4, 10.2, 12.06476, 33.0375, aci.FailureTension},
		{"heavy tension steel", 30.6, 4.0, 24.54441, 43.8869, aci.FailureCompression},
		{"compression steel below the neutral axis", 5.1, 2.0, 5.14437, 9.0326, aci.FailureTension},
	}

	for _, method := range []Method{MethodIteration, MethodQuadratic} {
		for _, tt := range tests {
			t.Run(string(method)+"/"+tt.name, func(t *testing.T) {
				opts := DefaultSolverOptions
				opts.Method = method
				r, err := NewDoublyReinforced(testGeometry(), DefaultMaterials(), opts).Analyze(tt.as, tt.asc)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !scalar.EqualWithinAbs(r.C, tt.wantC, 1e-4) {
					t.Errorf("c = %v, want %v", r.C, tt.wantC)
				}
				if !scalar.EqualWithinAbs(r.Mn, tt.wantMn, 1e-3) {
					t.Errorf("Mn = %v, want %v", r.Mn, tt.wantMn)
				}
				if r.FailureMode != tt.wantMode {
					t.Errorf("FailureMode = %v, want %v", r.FailureMode, tt.wantMode)
				}
				// 1e-3 kg tolerance, forces reported in tonf
				if math.Abs(r.Imbalance()) >= 1e-6 {
					t.Errorf("|T - Cc - Cs| = %v tonf", math.Abs(r.Imbalance()))
				}
				if !r.Converged {
					t.Error("expected convergence")
				}
				if r.Kind != KindDoubly || r.Method != method {
					t.Errorf("kind=%s method=%s", r.Kind, r.Method)
				}
				if r.Branch != 0 {
					t.Errorf("doubly reinforced result should carry no branch, got %v", r.Branch)
				}
			})
		}
	}
}

func TestDoublyReinforcedMethodsAgree(t *testing.T) {
	cases := [][2]float64{{10.2, 4.0}, {15.3, 5.68}, {20.4, 10.2}, {30.6, 4.0}, {5.1, 2.0}}

	for _, c := range cases {
		it, err := NewDoublyReinforced(testGeometry(), DefaultMaterials(), SolverOptions{Method: MethodIteration}).Analyze(c[0], c[1])
		if err != nil {
			t.Fatalf("iteration As=%v A's=%v: %v", c[0], c[1], err)
		}
		q, err := NewDoublyReinforced(testGeometry(), DefaultMaterials(), SolverOptions{Method: MethodQuadratic}).Analyze(c[0], c[1])
		if err != nil {
			t.Fatalf("quadratic As=%v A's=%v: %v", c[0], c[1], err)
		}
		if !scalar.EqualWithinAbs(it.C, q.C, 1e-5) {
			t.Errorf("As=%v A's=%v: iteration c=%v, quadratic c=%v", c[0], c[1], it.C, q.C)
		}
		if it.FailureMode != q.FailureMode {
			t.Errorf("As=%v A's=%v: modes differ %v / %v", c[0], c[1], it.FailureMode, q.FailureMode)
		}
	}
}

func TestDoublyReinforcedStrainState(t *testing.T) {
	r, err := NewDoublyReinforced(testGeometry(), DefaultMaterials(), DefaultSolverOptions).Analyze(10.2, 4.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !scalar.EqualWithinAbs(r.EpsilonS, 0.013371, 1e-5) {
		t.Errorf("εs = %v", r.EpsilonS)
	}
	if !scalar.EqualWithinAbs(r.EpsilonSc, 0.000768, 1e-5) {
		t.Errorf("εs' = %v", r.EpsilonSc)
	}
	if !r.TensionYielded || r.CompYielded {
		t.Errorf("expected yielded tension and elastic compression steel, got %v/%v", r.TensionYielded, r.CompYielded)
	}
	if r.Fs != 4200 {
		t.Errorf("Fs = %v, want fy", r.Fs)
	}
	if !scalar.EqualWithinAbs(r.Fsc, aci.Es*r.EpsilonSc, 1e-9) {
		t.Errorf("Fs' = %v, want Es·εs'", r.Fsc)
	}
	if r.Iterations != 14 {
		t.Errorf("Iterations = %d, want 14", r.Iterations)
	}
	if r.DComp != 6 {
		t.Errorf("d' = %v, want the tension cover", r.DComp)
	}
}

func TestDoublyReinforcedThresholdsMatchSingly(t *testing.T) {
	s, err := NewSinglyReinforced(testGeometry(), DefaultMaterials()).Analyze(10.2)
	if err != nil {
		t.Fatal(err)
	}
	d, err := NewDoublyReinforced(testGeometry(), DefaultMaterials(), DefaultSolverOptions).Analyze(10.2, 4.0)
	if err != nil {
		t.Fatal(err)
	}
	if s.AsMin != d.AsMin || s.AsBalanced != d.AsBalanced || s.AsMax != d.AsMax {
		t.Errorf("thresholds differ: singly %v/%v/%v, doubly %v/%v/%v",
			s.AsMin, s.AsBalanced, s.AsMax, d.AsMin, d.AsBalanced, d.AsMax)
	}
	if !scalar.EqualWithinAbs(d.AsMax, 0.75*d.AsBalanced, 1e-12) {
		t.Errorf("AsMax = %v, want 0.75·AsBal", d.AsMax)
	}
}

func TestDoublyReinforcedNonConvergent(t *testing.T) {
	tests := []struct {
		name    string
		opts    SolverOptions
		as, asc float64
	}{
		{"single iteration", SolverOptions{MaxIterations: 1}, 10.2, 4.0},
		// the correction overshoots and oscillates around c ≈ 26.3
		{"oscillating correction", SolverOptions{Method: MethodIteration}, 40.24, 10.06},
		{"no tension steel", SolverOptions{Method: MethodIteration}, 0, 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewDoublyReinforced(testGeometry(), DefaultMaterials(), tt.opts).Analyze(tt.as, tt.asc)
			if !errors.Is(err, ErrNonConvergent) {
				t.Fatalf("expected ErrNonConvergent, got %v", err)
			}
			if r == nil {
				t.Fatal("expected the last estimate alongside the error")
			}
			if r.Converged {
				t.Error("Converged should be false")
			}
			if r.C <= 0 {
				t.Errorf("c = %v", r.C)
			}
		})
	}
}

func TestDoublyReinforcedQuadraticHandlesOscillatingCase(t *testing.T) {
	r, err := NewDoublyReinforced(testGeometry(), DefaultMaterials(), SolverOptions{Method: MethodQuadratic}).Analyze(40.24, 10.06)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !scalar.EqualWithinAbs(r.C, 26.3265, 1e-3) {
		t.Errorf("c = %v, want 26.3265", r.C)
	}
	if !scalar.EqualWithinAbs(r.Mn, 55.374, 1e-2) {
		t.Errorf("Mn = %v, want 55.374", r.Mn)
	}
	if r.FailureMode != aci.FailureCompression {
		t.Errorf("FailureMode = %v, want Compression", r.FailureMode)
	}
}

func TestDoublyReinforcedFallsBackToQuadratic(t *testing.T) {
	r, err := NewDoublyReinforced(testGeometry(), DefaultMaterials(), DefaultSolverOptions).Analyze(40.24, 10.06)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Converged || r.Method != MethodQuadratic {
		t.Errorf("converged=%v method=%s, want a converged quadratic solution", r.Converged, r.Method)
	}
	if r.Iterations <= DefaultSolverOptions.MaxIterations {
		t.Errorf("Iterations = %d, want the spent iterations plus the quadratic states", r.Iterations)
	}
	if !scalar.EqualWithinAbs(r.C, 26.3265, 1e-3) {
		t.Errorf("c = %v, want 26.3265", r.C)
	}
}

func TestDoublyReinforcedWithoutTensionSteel(t *testing.T) {
	for _, method := range []Method{MethodIteration, MethodQuadratic} {
		t.Run(string(method), func(t *testing.T) {
			opts := DefaultSolverOptions
			opts.Method = method
			r, err := NewDoublyReinforced(testGeometry(), DefaultMaterials(), opts).Analyze(0, 4.0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// the top bars sit below the neutral axis and balance the concrete in tension
			if !scalar.EqualWithinAbs(r.C, 3.575456, 1e-5) {
				t.Errorf("c = %v, want 3.575456", r.C)
			}
			if !scalar.EqualWithinAbs(r.Mn, 0.729171, 1e-5) {
				t.Errorf("Mn = %v, want 0.729171", r.Mn)
			}
			if r.T != 0 || r.EpsilonSc >= 0 || r.Cs >= 0 {
				t.Errorf("T=%v εs'=%v Cs=%v", r.T, r.EpsilonSc, r.Cs)
			}
			if math.Abs(r.Imbalance()) >= 1e-6 {
				t.Errorf("|T - Cc - Cs| = %v tonf", math.Abs(r.Imbalance()))
			}
			if !r.Converged || r.FailureMode != aci.FailureTension {
				t.Errorf("converged=%v mode=%v", r.Converged, r.FailureMode)
			}
		})
	}
}

func TestDoublyReinforcedErrors(t *testing.T) {
	tests := []struct {
		name    string
		g       Geometry
		as, asc float64
		wantErr error
	}{
		{"compression steel below tension steel", Geometry{Width: 30, Height: 50, Cover: 6, CoverComp: 45}, 10.2, 4.0, ErrDegenerateSection},
		{"zero width", Geometry{Width: 0, Height: 50, Cover: 6}, 10.2, 4.0, ErrDegenerateSection},
		{"no steel", testGeometry(), 0, 0, ErrDegenerateSection},
		{"negative tension steel", testGeometry(), -1, 4.0, ErrInvalidInput},
		{"negative compression steel", testGeometry(), 10.2, -1, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDoublyReinforced(tt.g, DefaultMaterials(), DefaultSolverOptions).Analyze(tt.as, tt.asc)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDoublyReinforcedUnknownMethod(t *testing.T) {
	_, err := NewDoublyReinforced(testGeometry(), DefaultMaterials(), SolverOptions{Method: "bisection"}).Analyze(10.2, 4.0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"", MethodIteration, false},
		{"iteration", MethodIteration, false},
		{"quadratic", MethodQuadratic, false},
		{"newton", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMethod(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
