package steel

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestStandardAreas(t *testing.T) {
	want := map[string]float64{
		"6mm":    0.28,
		`1/4"`:   0.32,
		"8mm":    0.50,
		`3/8"`:   0.71,
		"12mm":   1.13,
		`1/2"`:   1.29,
		`5/8"`:   2.00,
		`3/4"`:   2.84,
		`1"`:     5.10,
		`1 3/8"`: 10.06,
	}

	for designation, area := range want {
		got, err := Standard.Area(designation)
		if err != nil {
			t.Errorf("Area(%q) unexpected error: %v", designation, err)
			continue
		}
		if got != area {
			t.Errorf("Area(%q) = %v, want %v", designation, got, area)
		}
	}

	if n := len(Standard.Designations()); n != len(want) {
		t.Errorf("catalog has %d sizes, want %d", n, len(want))
	}
}

func TestDiameter(t *testing.T) {
	tests := []struct {
		designation string
		want        float64
	}{
		{`3/4"`, 1.9016},
		{`5/8"`, 1.5958},
		{`1"`, 2.5482},
	}

	for _, tt := range tests {
		t.Run(tt.designation, func(t *testing.T) {
			got, err := Standard.Diameter(tt.designation)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !scalar.EqualWithinAbs(got, tt.want, 1e-3) {
				t.Errorf("Diameter(%q) = %v, want ~%v", tt.designation, got, tt.want)
			}
		})
	}
}

func TestUnknownBarSize(t *testing.T) {
	_, err := Standard.Area("7/8\"")
	if !errors.Is(err, ErrUnknownBarSize) {
		t.Fatalf("expected ErrUnknownBarSize, got %v", err)
	}

	_, err = Standard.Diameter("")
	if !errors.Is(err, ErrUnknownBarSize) {
		t.Fatalf("expected ErrUnknownBarSize for empty label, got %v", err)
	}
}

func TestNewCatalogRejectsBadEntries(t *testing.T) {
	if _, err := NewCatalog(BarSize{"a", 1}, BarSize{"a", 2}); err == nil {
		t.Error("expected duplicate designation error")
	}
	if _, err := NewCatalog(BarSize{"a", 0}); err == nil {
		t.Error("expected non-positive area error")
	}
	if _, err := NewCatalog(BarSize{"", 1}); err == nil {
		t.Error("expected empty designation error")
	}
}

func TestDesignationsIsACopy(t *testing.T) {
	d := Standard.Designations()
	d[0] = "changed"
	if Standard.Designations()[0] != "6mm" {
		t.Error("Designations exposed the catalog's internal slice")
	}
}

func TestGroupsArea(t *testing.T) {
	tests := []struct {
		name    string
		groups  []BarGroup
		want    float64
		wantErr bool
	}{
		{"none", nil, 0, false},
		{"single bar", []BarGroup{{1, `1"`}}, 5.10, false},
		{"mixed", []BarGroup{{2, `1"`}, {1, `5/8"`}}, 12.20, false},
		{"zero count skipped", []BarGroup{{3, `3/4"`}, {0, "bogus"}}, 8.52, false},
		{"rounded", []BarGroup{{3, `3/8"`}}, 2.13, false},
		{"unknown", []BarGroup{{1, "bogus"}}, 0, true},
		{"negative count", []BarGroup{{2, `1"`}, {-1, `1"`}}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Standard.GroupsArea(tt.groups)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GroupsArea error = %v, wantErr %v", err, tt.wantErr)
			}
			if !scalar.EqualWithinAbs(got, tt.want, 1e-9) {
				t.Errorf("GroupsArea = %v, want %v", got, tt.want)
			}
		})
	}
}
