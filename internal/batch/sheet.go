// Package batch evaluates the beam sections listed in a workbook and writes
// the results back as a workbook.
package batch

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexiusacademia/rcflex/internal/steel"
	"github.com/xuri/excelize/v2"
)

// Input columns, in order. f'c and fy are optional and fall back to the
// configured materials.
var InputHeader = []string{"label", "b", "h", "layers", "tension", "compression", "fc", "fy"}

// Row is one section read from the input sheet
type Row struct {
	Line        int // 1-based sheet row
	Label       string
	Width       float64
	Height      float64
	Layers      int
	Tension     []steel.BarGroup
	Compression []steel.BarGroup
	Fc          float64 // 0 = configured value
	Fy          float64 // 0 = configured value
	Err         error   // parse error, the row is reported but not evaluated
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func toFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func parseRow(line int, cells []string) Row {
	r := Row{Line: line, Label: cell(cells, 0), Layers: 1}

	fail := func(col string, err error) Row {
		r.Err = fmt.Errorf("row %d, %s: %w", line, col, err)
		return r
	}

	var err error
	if r.Width, err = toFloat(cell(cells, 1)); err != nil {
		return fail("b", err)
	}
	if r.Height, err = toFloat(cell(cells, 2)); err != nil {
		return fail("h", err)
	}
	if s := cell(cells, 3); s != "" {
		if r.Layers, err = strconv.Atoi(s); err != nil {
			return fail("layers", err)
		}
	}
	if r.Tension, err = steel.ParseGroups(cell(cells, 4)); err != nil {
		return fail("tension", err)
	}
	if r.Compression, err = steel.ParseGroups(cell(cells, 5)); err != nil {
		return fail("compression", err)
	}
	if r.Fc, err = toFloat(cell(cells, 6)); err != nil {
		return fail("fc", err)
	}
	if r.Fy, err = toFloat(cell(cells, 7)); err != nil {
		return fail("fy", err)
	}
	return r
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ReadRows reads the first sheet of a workbook. The first row is a header;
// blank rows are skipped.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		out = append(out, parseRow(i+1, rows[i]))
	}
	return out, nil
}

// ResultHeader lists the output columns
var ResultHeader = []string{
	"label", "b", "h", "As", "A's", "d", "beta1", "As,min", "As,bal", "As,max",
	"c", "a", "eps_s", "Cc (tonf)", "Mn (ton-m)", "phiMn (ton-m)", "failure",
	"b,min", "fits", "status",
}

func outcomeCells(o Outcome) []interface{} {
	cells := []interface{}{o.Row.Label, o.Row.Width, o.Row.Height}
	r := o.Result
	if r == nil {
		cells = append(cells, make([]interface{}, len(ResultHeader)-len(cells)-1)...)
		return append(cells, o.status())
	}
	cells = append(cells,
		r.Reinforcement.AsTension, r.Reinforcement.AsCompression,
		r.D, r.Beta1, round(r.AsMin, 2), round(r.AsBalanced, 2), round(r.AsMax, 2),
		round(r.C, 3), round(r.A, 3), round(r.EpsilonS, 5),
		round(r.Cc, 2), round(r.Mn, 2), round(r.PhiMn, 2), r.FailureMode.String(),
	)
	if o.Layout.BarCount > 0 {
		cells = append(cells, o.Layout.Width, o.Layout.Fits(o.Row.Width))
	} else {
		cells = append(cells, nil, nil)
	}
	return append(cells, o.status())
}

// WriteResults writes one row per outcome under ResultHeader
func WriteResults(w io.Writer, outcomes []Outcome) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	header := make([]interface{}, len(ResultHeader))
	for i, h := range ResultHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, o := range outcomes {
		cells := outcomeCells(o)
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
