package steel

import (
	"reflect"
	"testing"
)

func TestParseGroup(t *testing.T) {
	tests := []struct {
		in      string
		want    BarGroup
		wantErr bool
	}{
		{`3x5/8"`, BarGroup{3, `5/8"`}, false},
		{` 2 x 1" `, BarGroup{2, `1"`}, false},
		{`1 3/8"`, BarGroup{1, `1 3/8"`}, false},
		{"0x12mm", BarGroup{0, "12mm"}, false},
		{"", BarGroup{}, true},
		{`ax5/8"`, BarGroup{}, true},
		{"-1x8mm", BarGroup{}, true},
		{"3x", BarGroup{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGroup(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGroup(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseGroup(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseGroups(t *testing.T) {
	got, err := ParseGroups(`2x1",1x5/8"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []BarGroup{{2, `1"`}, {1, `5/8"`}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseGroups = %+v, want %+v", got, want)
	}

	if got, err := ParseGroups("  "); err != nil || got != nil {
		t.Errorf("blank input = %+v, %v; want nil, nil", got, err)
	}

	if FormatGroups(append(want, BarGroup{0, "8mm"})) != `2x1",1x5/8"` {
		t.Errorf("FormatGroups did not round-trip")
	}
	if TotalCount(want) != 3 {
		t.Errorf("TotalCount = %d, want 3", TotalCount(want))
	}
}
