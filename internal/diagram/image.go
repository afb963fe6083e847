package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	steelColor      = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	stressFill      = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	stressEdge      = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	neutralAxisRed  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	yieldLineOrange = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

// save writes the plot in the format named by the extension; unknown
// extensions get ".png" appended
func save(p *plot.Plot, width, height vg.Length, filename string) (string, error) {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}
	if err := p.Save(width, height, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// barPositions spreads n bars across the width inside the cover
func barPositions(width, cover float64, n int) []float64 {
	if n <= 1 {
		return []float64{width / 2}
	}
	xs := make([]float64, n)
	step := (width - 2*cover) / float64(n-1)
	for i := range xs {
		xs[i] = cover + float64(i)*step
	}
	return xs
}

// ExportSectionDiagram exports the section with its stress block, neutral axis
// and steel layers. Returns the file written.
func ExportSectionDiagram(data SectionData, filename string) (string, error) {
	p := plot.New()
	p.Title.Text = "Beam Section Analysis"
	p.X.Label.Text = "Width (cm)"
	p.Y.Label.Text = "Height (cm)"

	// y measured up from the bottom fiber
	outline, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0},
		{X: data.Width, Y: 0},
		{X: data.Width, Y: data.Height},
		{X: 0, Y: data.Height},
		{X: 0, Y: 0},
	})
	if err != nil {
		return "", err
	}
	outline.LineStyle.Width = vg.Points(2)
	outline.LineStyle.Color = color.Black
	p.Add(outline)

	block, err := plotter.NewPolygon(plotter.XYs{
		{X: 0, Y: data.Height},
		{X: data.Width, Y: data.Height},
		{X: data.Width, Y: data.Height - data.StressBlockDepth},
		{X: 0, Y: data.Height - data.StressBlockDepth},
	})
	if err != nil {
		return "", err
	}
	block.Color = stressFill
	block.LineStyle.Color = stressEdge
	p.Add(block)

	margin := 0.15 * data.Width
	naY := data.Height - data.NeutralAxisDepth
	naLine, err := plotter.NewLine(plotter.XYs{
		{X: -margin, Y: naY},
		{X: data.Width + margin, Y: naY},
	})
	if err != nil {
		return "", err
	}
	naLine.LineStyle.Width = vg.Points(1.5)
	naLine.LineStyle.Color = neutralAxisRed
	naLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(naLine)

	tensionY := data.Height - data.TensionSteelDepth
	var tension plotter.XYs
	for _, x := range barPositions(data.Width, tensionY, 3) {
		tension = append(tension, plotter.XY{X: x, Y: tensionY})
	}
	tensionSteel, err := plotter.NewScatter(tension)
	if err != nil {
		return "", err
	}
	tensionSteel.GlyphStyle.Color = steelColor
	tensionSteel.GlyphStyle.Radius = vg.Points(6)
	tensionSteel.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(tensionSteel)

	labels := plotter.XYLabels{
		XYs: []plotter.XY{
			{X: data.Width + margin, Y: naY},
			{X: data.Width + margin, Y: data.Height - data.StressBlockDepth/2},
			{X: data.Width / 2, Y: tensionY - 0.08*data.Height},
		},
		Labels: []string{
			"N.A.",
			fmt.Sprintf("a=%.1fcm", data.StressBlockDepth),
			fmt.Sprintf("As=%.2fcm²", data.TensionSteelArea),
		},
	}

	if data.IsDoubly && data.CompSteelArea > 0 {
		compY := data.Height - data.CompSteelDepth
		var comp plotter.XYs
		for _, x := range barPositions(data.Width, data.CompSteelDepth, 2) {
			comp = append(comp, plotter.XY{X: x, Y: compY})
		}
		compSteel, err := plotter.NewScatter(comp)
		if err != nil {
			return "", err
		}
		compSteel.GlyphStyle.Color = steelColor
		compSteel.GlyphStyle.Radius = vg.Points(5)
		compSteel.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(compSteel)

		labels.XYs = append(labels.XYs, plotter.XY{X: data.Width / 2, Y: compY - 0.08*data.Height})
		labels.Labels = append(labels.Labels, fmt.Sprintf("A's=%.2fcm²", data.CompSteelArea))
	}

	l, err := plotter.NewLabels(labels)
	if err != nil {
		return "", err
	}
	p.Add(l)

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// ExportStrainDiagram exports the strain profile over the depth
func ExportStrainDiagram(data SectionData, filename string) (string, error) {
	p := plot.New()
	p.Title.Text = "Strain Distribution"
	p.X.Label.Text = "Strain (compression +)"
	p.Y.Label.Text = "Height (cm)"

	// depth measured from the top, plotted with the top fiber up
	strain, err := plotter.NewLine(plotter.XYs{
		{X: data.EpsilonCU, Y: data.Height},
		{X: 0, Y: data.Height - data.NeutralAxisDepth},
		{X: -data.EpsilonT, Y: data.Height - data.TensionSteelDepth},
	})
	if err != nil {
		return "", err
	}
	strain.LineStyle.Width = vg.Points(2)
	strain.LineStyle.Color = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	p.Add(strain)

	zero, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 0, Y: data.Height}})
	if err != nil {
		return "", err
	}
	zero.LineStyle.Width = vg.Points(1)
	zero.LineStyle.Color = color.Gray{Y: 128}
	zero.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zero)

	for _, x := range []float64{data.EpsilonY, -data.EpsilonY} {
		yield, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: data.Height}})
		if err != nil {
			return "", err
		}
		yield.LineStyle.Color = yieldLineOrange
		yield.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(yield)
	}

	points := plotter.XYs{
		{X: data.EpsilonCU, Y: data.Height},
		{X: 0, Y: data.Height - data.NeutralAxisDepth},
		{X: -data.EpsilonT, Y: data.Height - data.TensionSteelDepth},
	}
	if data.IsDoubly {
		points = append(points, plotter.XY{X: data.EpsilonSC, Y: data.Height - data.CompSteelDepth})
	}
	keyPoints, err := plotter.NewScatter(points)
	if err != nil {
		return "", err
	}
	keyPoints.GlyphStyle.Color = neutralAxisRed
	keyPoints.GlyphStyle.Radius = vg.Points(4)
	p.Add(keyPoints)

	return save(p, 6*vg.Inch, 8*vg.Inch, filename)
}

// SteelCurve samples the bilinear steel law fs = min(Es·ε, fy) on [0, maxStrain]
func SteelCurve(fy, es, maxStrain float64, samples int) plotter.XYs {
	samples = max(samples, 2)
	pts := make(plotter.XYs, samples)
	for i := range pts {
		eps := maxStrain * float64(i) / float64(samples-1)
		pts[i] = plotter.XY{X: eps, Y: min(es*eps, fy)}
	}
	return pts
}

// chartStrainLimit covers three times the yield strain and the steel state
func chartStrainLimit(data SectionData) float64 {
	return max(3*data.EpsilonY, 1.1*data.EpsilonT)
}

// ExportSteelChart exports the bilinear steel stress-strain curve with the
// tension steel state point
func ExportSteelChart(data SectionData, filename string) (string, error) {
	p := plot.New()
	p.Title.Text = "Steel Stress-Strain"
	p.X.Label.Text = "Strain"
	p.Y.Label.Text = "Stress (kg/cm²)"

	// two points are enough for the elastic and plastic branches
	epsMax := chartStrainLimit(data)
	curve, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0},
		{X: data.EpsilonY, Y: data.Fy},
		{X: epsMax, Y: data.Fy},
	})
	if err != nil {
		return "", err
	}
	curve.LineStyle.Width = vg.Points(2)
	curve.LineStyle.Color = stressEdge
	p.Add(curve)

	yield, err := plotter.NewLine(plotter.XYs{{X: data.EpsilonY, Y: 0}, {X: data.EpsilonY, Y: data.Fy}})
	if err != nil {
		return "", err
	}
	yield.LineStyle.Color = yieldLineOrange
	yield.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(yield)

	state, err := plotter.NewScatter(plotter.XYs{{X: data.EpsilonT, Y: data.FsTension}})
	if err != nil {
		return "", err
	}
	state.GlyphStyle.Color = neutralAxisRed
	state.GlyphStyle.Radius = vg.Points(5)
	state.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(state)
	p.Legend.Add(fmt.Sprintf("εs=%.4f fs=%.0f", data.EpsilonT, data.FsTension), state)
	p.Legend.Top = true

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}
