// Package report renders capacity results as a PDF document.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/alexiusacademia/rcflex/internal/aci"
	"github.com/alexiusacademia/rcflex/internal/beam"
	"github.com/alexiusacademia/rcflex/internal/layout"
	"github.com/phpdave11/gofpdf"
)

// Meta is the report header
type Meta struct {
	Title   string
	Project string
	Author  string
	Date    time.Time
}

// Section is one evaluated beam section
type Section struct {
	Label     string
	Geometry  beam.Geometry
	Materials beam.Materials
	Result    *beam.CapacityResult
	Layout    *layout.Result   // optional one-layer width check
	Demand    *aci.DemandCheck // optional Mu against φMn
	Diagram   string           // optional PNG of the section
	Warning   string           // e.g. a non-convergence note
}

type row struct {
	label, value string
}

func sectionRows(s Section) []row {
	g, m, r := s.Geometry, s.Materials, s.Result
	rows := []row{
		{"b x h (cm)", fmt.Sprintf("%.1f x %.1f", g.Width, g.Height)},
		{"f'c / fy (kg/cm2)", fmt.Sprintf("%.0f / %.0f", m.Fc, m.Fy)},
		{"Section", string(r.Kind)},
		{"As (cm2)", fmt.Sprintf("%.2f", r.Reinforcement.AsTension)},
	}
	if r.Kind == beam.KindDoubly {
		rows = append(rows,
			row{"A's (cm2)", fmt.Sprintf("%.2f", r.Reinforcement.AsCompression)},
			row{"d' (cm)", fmt.Sprintf("%.2f", r.DComp)},
		)
	}
	rows = append(rows,
		row{"d (cm)", fmt.Sprintf("%.2f", r.D)},
		row{"beta1", fmt.Sprintf("%.3f", r.Beta1)},
		row{"As,min / As,bal / As,max (cm2)", fmt.Sprintf("%.2f / %.2f / %.2f", r.AsMin, r.AsBalanced, r.AsMax)},
		row{"c / a (cm)", fmt.Sprintf("%.2f / %.2f", r.C, r.A)},
		row{"eps_s", fmt.Sprintf("%.5f", r.EpsilonS)},
		row{"Cc (tonf)", fmt.Sprintf("%.2f", r.Cc)},
		row{"Mn (ton-m)", fmt.Sprintf("%.2f", r.Mn)},
		row{"phi Mn (ton-m)", fmt.Sprintf("%.2f", r.PhiMn)},
		row{"Failure mode", r.FailureMode.String()},
	)
	if r.Kind == beam.KindDoubly {
		rows = append(rows, row{"Solver", fmt.Sprintf("%s, %d steps", r.Method, r.Iterations)})
	}
	if s.Layout != nil && s.Layout.BarCount > 0 {
		fit := "fits"
		if !s.Layout.Fits(g.Width) {
			fit = "does not fit"
		}
		rows = append(rows, row{"b,min one layer (cm)", fmt.Sprintf("%.2f (%s)", s.Layout.Width, fit)})
	}
	if s.Demand != nil {
		status := "OK"
		if !s.Demand.OK {
			status = "NOT OK"
		}
		rows = append(rows, row{"Mu / phi Mn", fmt.Sprintf("%.2f / %.2f = %.2f %s", s.Demand.Mu, s.Demand.PhiMn, s.Demand.Ratio, status)})
	}
	return rows
}

// Write renders the sections, one per page, to w
func Write(w io.Writer, meta Meta, sections []Section) error {
	if len(sections) == 0 {
		return fmt.Errorf("no sections to report")
	}
	if meta.Title == "" {
		meta.Title = "Flexural Capacity Report"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(meta.Title, false)
	pdf.SetAuthor(meta.Author, false)

	for i, s := range sections {
		if s.Result == nil {
			return fmt.Errorf("section %d (%s) has no result", i+1, s.Label)
		}
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.Cell(0, 10, meta.Title)
		pdf.Ln(12)
		pdf.SetFont("Helvetica", "", 11)
		if meta.Project != "" {
			pdf.Cell(0, 6, fmt.Sprintf("Project: %s", meta.Project))
			pdf.Ln(6)
		}
		if meta.Author != "" {
			pdf.Cell(0, 6, fmt.Sprintf("Author: %s", meta.Author))
			pdf.Ln(6)
		}
		pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
		pdf.Ln(10)

		label := s.Label
		if label == "" {
			label = fmt.Sprintf("Section %d", i+1)
		}
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, label)
		pdf.Ln(10)

		pdf.SetFont("Helvetica", "", 10)
		for _, r := range sectionRows(s) {
			pdf.CellFormat(80, 7, r.label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(90, 7, r.value, "1", 1, "L", false, 0, "")
		}

		if s.Warning != "" {
			pdf.Ln(4)
			pdf.SetTextColor(180, 0, 0)
			pdf.MultiCell(0, 6, s.Warning, "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}

		if s.Diagram != "" {
			pdf.Ln(4)
			pdf.ImageOptions(s.Diagram, 20, pdf.GetY(), 170, 0, false,
				gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
