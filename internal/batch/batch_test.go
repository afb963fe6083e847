package batch

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alexiusacademia/rcflex/internal/beam"
	"github.com/alexiusacademia/rcflex/internal/config"
	"github.com/alexiusacademia/rcflex/internal/steel"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func header() []interface{} {
	h := make([]interface{}, len(InputHeader))
	for i, v := range InputHeader {
		h[i] = v
	}
	return h
}

func TestReadRows(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		header(),
		{"V-1", 30, 50, 1, `1x1"`},
		{},
		{"V-2", "25,5", 45, 2, `3x5/8"`, `2x1/2"`, 280, 4200},
		{"V-3", "wide", 50, 1, `1x1"`},
		{"V-4", 30, 50, 1, `twox1"`},
	})

	rows, err := ReadRows(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	if rows[0].Label != "V-1" || rows[0].Width != 30 || rows[0].Layers != 1 || rows[0].Err != nil {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Width != 25.5 || rows[1].Layers != 2 || rows[1].Fc != 280 {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if len(rows[1].Compression) != 1 || rows[1].Compression[0].Count != 2 {
		t.Errorf("compression = %v", rows[1].Compression)
	}
	if rows[2].Err == nil || rows[3].Err == nil {
		t.Errorf("expected parse errors, got %v / %v", rows[2].Err, rows[3].Err)
	}
}

func TestReadRowsEmptySheet(t *testing.T) {
	if _, err := ReadRows(workbook(t, [][]interface{}{header()})); err == nil {
		t.Error("expected an error for a header-only sheet")
	}
	if _, err := ReadRows(bytes.NewBufferString("not a workbook")); err == nil {
		t.Error("expected an error for a non-workbook")
	}
}

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.Solver.Fallback = false
	rn := NewRunner(steel.Standard, cfg)

	rows := []Row{
		{Line: 2, Label: "singly", Width: 30, Height: 50, Layers: 1, Tension: []steel.BarGroup{{Count: 1, Designation: `1"`}}},
		{Line: 3, Label: "doubly", Width: 30, Height: 50, Layers: 1,
			Tension:     []steel.BarGroup{{Count: 2, Designation: `1"`}},
			Compression: []steel.BarGroup{{Count: 2, Designation: `5/8"`}}},
		{Line: 4, Label: "unknown bar", Width: 30, Height: 50, Layers: 1, Tension: []steel.BarGroup{{Count: 2, Designation: `7/8"`}}},
		{Line: 5, Label: "three layers", Width: 30, Height: 50, Layers: 3, Tension: []steel.BarGroup{{Count: 1, Designation: `1"`}}},
		{Line: 6, Label: "diverging", Width: 30, Height: 50, Layers: 1,
			Tension:     []steel.BarGroup{{Count: 4, Designation: `1 3/8"`}},
			Compression: []steel.BarGroup{{Count: 1, Designation: `1 3/8"`}}},
		{Line: 7, Label: "narrow", Width: 15, Height: 50, Layers: 1, Tension: []steel.BarGroup{{Count: 3, Designation: `5/8"`}}},
	}

	outcomes, err := rn.Run(context.Background(), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != len(rows) {
		t.Fatalf("expected %d outcomes, got %d", len(rows), len(outcomes))
	}
	for i, o := range outcomes {
		if o.Row.Label != rows[i].Label {
			t.Errorf("outcome %d is %q, want %q", i, o.Row.Label, rows[i].Label)
		}
	}

	if o := outcomes[0]; o.Err != nil || o.Result.Kind != beam.KindSingly || o.Layout.Width != 12.55 {
		t.Errorf("singly outcome = %+v", o)
	}
	if g := outcomes[0].Geometry; g.Cover != 6 || g.Width != 30 {
		t.Errorf("singly geometry = %+v", g)
	}
	if o := outcomes[1]; o.Err != nil || o.Result.Kind != beam.KindDoubly {
		t.Errorf("doubly outcome = %+v", o)
	}
	if o := outcomes[2]; !errors.Is(o.Err, steel.ErrUnknownBarSize) || !o.Failed() {
		t.Errorf("unknown bar outcome = %+v", o)
	}
	if o := outcomes[3]; o.Err == nil || !o.Failed() {
		t.Errorf("three layer outcome = %+v", o)
	}
	if o := outcomes[4]; !errors.Is(o.Err, beam.ErrNonConvergent) || o.Failed() {
		t.Errorf("diverging outcome = %+v", o)
	}
	if o := outcomes[5]; o.Layout.Fits(o.Row.Width) {
		t.Errorf("15 cm should not take 3x5/8\", b,min = %v", o.Layout.Width)
	}

	s := Summarize(outcomes)
	want := Summary{Total: 6, OK: 3, Warnings: 1, Failed: 2}
	if s != want {
		t.Errorf("Summarize = %+v, want %+v", s, want)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rn := NewRunner(steel.Standard, config.Default())
	_, err := rn.Run(ctx, []Row{{Label: "x", Width: 30, Height: 50, Layers: 1}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWriteResults(t *testing.T) {
	rn := NewRunner(steel.Standard, config.Default())
	outcomes, err := rn.Run(context.Background(), []Row{
		{Line: 2, Label: "V-1", Width: 30, Height: 50, Layers: 1, Tension: []steel.BarGroup{{Count: 1, Designation: `1"`}}},
		{Line: 3, Label: "V-2", Err: errors.New("row 3, b: bad number")},
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteResults(&buf, outcomes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "label" || rows[0][len(ResultHeader)-1] != "status" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "V-1" || rows[1][16] != "Tension" || rows[1][19] != "ok" {
		t.Errorf("result row = %v", rows[1])
	}
	last := rows[2][len(rows[2])-1]
	if last != "error: row 3, b: bad number" {
		t.Errorf("error row status = %q", last)
	}
}
