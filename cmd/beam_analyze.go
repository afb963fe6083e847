package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexiusacademia/rcflex/internal/aci"
	"github.com/alexiusacademia/rcflex/internal/beam"
	"github.com/alexiusacademia/rcflex/internal/diagram"
	"github.com/alexiusacademia/rcflex/internal/layout"
	"github.com/alexiusacademia/rcflex/internal/log"
	"github.com/alexiusacademia/rcflex/internal/report"
	"github.com/alexiusacademia/rcflex/internal/steel"
	"github.com/spf13/cobra"
)

var (
	// Geometry (cm)
	analyzeWidth     float64
	analyzeHeight    float64
	analyzeLayers    int
	analyzeCover     float64
	analyzeCoverComp float64

	// Materials (kg/cm²), 0 = from config
	analyzeFc float64
	analyzeFy float64

	// Reinforcement
	analyzeTension     string
	analyzeCompression string
	analyzeAs          float64
	analyzeAsc         float64

	analyzeMethod string
	analyzeMu     float64

	// Output options
	analyzeShowDiagram bool
	analyzeExportFile  string
	analyzeSteelChart  string
	analyzeStrainChart string
	analyzeReportFile  string
)

var beamAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the moment capacity of a rectangular beam",
	Long: `Calculate the moment capacity (Mn, φMn) of a rectangular beam from its
tension and, optionally, compression reinforcement.

Bars are given as comma separated groups "count x size", for example
"2x1\",1x5/8\"". Steel areas can be given directly with --as and --asc.

The analysis follows ACI 318 strength design:
  - Equivalent rectangular stress block (0.85 f'c, β1)
  - Minimum reinforcement 0.7√f'c/fy · b·d
  - Balanced steel area and As,max = 0.75 As,bal

Examples:
  # 30x50 cm beam with two 1" bars, one layer
  rcflex beam analyze -b 30 --height 50 --tension '2x1"'

  # Doubly reinforced, two layers, quadratic neutral axis solution
  rcflex beam analyze -b 30 --height 50 --layers 2 -t '4x1"' -c '2x5/8"' --method quadratic

  # Check against a factored moment and export the section drawing
  rcflex beam analyze -b 30 --height 50 -t '3x1"' --mu 20 --diagram -o beam.png`,
	Run: runBeamAnalyze,
}

func init() {
	beamCmd.AddCommand(beamAnalyzeCmd)

	// Geometry flags
	beamAnalyzeCmd.Flags().Float64VarP(&analyzeWidth, "width", "b", 0, "Beam width (cm) [required]")
	beamAnalyzeCmd.Flags().Float64Var(&analyzeHeight, "height", 0, "Beam total depth (cm) [required]")
	beamAnalyzeCmd.Flags().IntVar(&analyzeLayers, "layers", 1, "Layers of tension bars (1 or 2), selects the cover")
	beamAnalyzeCmd.Flags().Float64Var(&analyzeCover, "cover", 0, "Cover to the tension steel centroid (cm), overrides --layers")
	beamAnalyzeCmd.Flags().Float64Var(&analyzeCoverComp, "cover-comp", 0, "Cover to the compression steel centroid (cm)")

	// Material flags
	beamAnalyzeCmd.Flags().Float64Var(&analyzeFc, "fc", 0, "Concrete compressive strength f'c (kg/cm²)")
	beamAnalyzeCmd.Flags().Float64Var(&analyzeFy, "fy", 0, "Steel yield strength fy (kg/cm²)")

	// Reinforcement flags
	beamAnalyzeCmd.Flags().StringVarP(&analyzeTension, "tension", "t", "", "Tension bars, e.g. '2x1\",1x5/8\"'")
	beamAnalyzeCmd.Flags().StringVarP(&analyzeCompression, "compression", "c", "", "Compression bars")
	beamAnalyzeCmd.Flags().Float64Var(&analyzeAs, "as", 0, "Tension steel area As (cm²)")
	beamAnalyzeCmd.Flags().Float64Var(&analyzeAsc, "asc", 0, "Compression steel area A's (cm²)")

	beamAnalyzeCmd.Flags().StringVar(&analyzeMethod, "method", "", "Neutral axis solution for doubly reinforced sections (iteration, quadratic)")
	beamAnalyzeCmd.Flags().Float64VarP(&analyzeMu, "mu", "m", 0, "Factored moment Mu to check (ton·m)")

	// Output flags
	beamAnalyzeCmd.Flags().BoolVar(&analyzeShowDiagram, "diagram", false, "Show ASCII section, strain and steel diagrams")
	beamAnalyzeCmd.Flags().StringVarP(&analyzeExportFile, "output", "o", "", "Export the section diagram to file (png, svg, pdf)")
	beamAnalyzeCmd.Flags().StringVar(&analyzeSteelChart, "steel-chart", "", "Export the steel stress-strain chart to file")
	beamAnalyzeCmd.Flags().StringVar(&analyzeStrainChart, "strain-chart", "", "Export the strain profile to file")
	beamAnalyzeCmd.Flags().StringVar(&analyzeReportFile, "report", "", "Write a PDF report")

	// Mark required flags
	beamAnalyzeCmd.MarkFlagRequired("width")
	beamAnalyzeCmd.MarkFlagRequired("height")
}

func analyzeInputs(cmd *cobra.Command) (beam.Geometry, beam.Materials, beam.SolverOptions, error) {
	g, err := cfg.Geometry(analyzeWidth, analyzeHeight, analyzeLayers)
	if err != nil {
		return g, beam.Materials{}, beam.SolverOptions{}, err
	}
	if cmd.Flags().Changed("cover") {
		g.Cover = analyzeCover
	}
	if cmd.Flags().Changed("cover-comp") {
		g.CoverComp = analyzeCoverComp
	}

	m := cfg.Materials
	if analyzeFc > 0 {
		m.Fc = analyzeFc
	}
	if analyzeFy > 0 {
		m.Fy = analyzeFy
	}

	opts := cfg.Solver
	if analyzeMethod != "" {
		if opts.Method, err = beam.ParseMethod(analyzeMethod); err != nil {
			return g, m, opts, err
		}
	}
	return g, m, opts, nil
}

func runBeamAnalyze(cmd *cobra.Command, args []string) {
	g, m, opts, err := analyzeInputs(cmd)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	tension, err := steel.ParseGroups(analyzeTension)
	if err != nil {
		fmt.Printf("Error: tension bars: %v\n", err)
		return
	}
	compression, err := steel.ParseGroups(analyzeCompression)
	if err != nil {
		fmt.Printf("Error: compression bars: %v\n", err)
		return
	}
	bars := len(tension) > 0 || len(compression) > 0
	if bars && (analyzeAs > 0 || analyzeAsc > 0) {
		fmt.Println("Error: Give the steel either as bars or as areas, not both.")
		return
	}
	if !bars && analyzeAs <= 0 && analyzeAsc <= 0 {
		fmt.Println("Error: Please provide the steel with --tension/--compression or --as/--asc.")
		fmt.Println("Use 'rcflex beam analyze --help' for usage information.")
		return
	}

	// Run analysis
	var result *beam.CapacityResult
	switch {
	case bars:
		result, err = beam.NewEvaluator(steel.Standard, opts).Evaluate(g, m, tension, compression)
	case analyzeAsc > 0:
		result, err = beam.NewDoublyReinforced(g, m, opts).Analyze(analyzeAs, analyzeAsc)
	default:
		result, err = beam.NewSinglyReinforced(g, m).Analyze(analyzeAs)
	}

	var warning string
	if err != nil {
		if !errors.Is(err, beam.ErrNonConvergent) || result == nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		warning = fmt.Sprintf("%v after %d iterations; the values below are the last estimate", err, result.Iterations)
		log.Warnw("neutral axis did not converge", "iterations", result.Iterations, "c", result.C)
	}

	// Layout check needs the bar sizes
	var fit *layout.Result
	if len(tension) > 0 {
		lr, err := layout.MinimumWidth(steel.Standard, tension, cfg.Layout)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fit = &lr
	}

	var demand *aci.DemandCheck
	if analyzeMu > 0 {
		dc, err := aci.CheckDemand(analyzeMu, result.PhiMn)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		demand = &dc
	}

	title := "SINGLY REINFORCED BEAM ANALYSIS - ACI 318"
	if result.Kind == beam.KindDoubly {
		title = "DOUBLY REINFORCED BEAM ANALYSIS - ACI 318"
	}
	printTitle(title)

	// Input summary
	printHeading("INPUT DATA:")
	w := newTable()
	fmt.Fprintf(w, "  Beam Width (b):\t%.1f cm\n", g.Width)
	fmt.Fprintf(w, "  Beam Depth (h):\t%.1f cm\n", g.Height)
	fmt.Fprintf(w, "  Cover to tension steel (r):\t%.1f cm\n", g.Cover)
	if result.Kind == beam.KindDoubly {
		fmt.Fprintf(w, "  Cover to compression steel (r'):\t%.1f cm\n", g.CompressionDepth())
	}
	fmt.Fprintf(w, "  f'c:\t%.0f kg/cm²\n", m.Fc)
	fmt.Fprintf(w, "  fy:\t%.0f kg/cm²\n", m.Fy)
	if len(tension) > 0 {
		fmt.Fprintf(w, "  Tension bars:\t%s\n", steel.FormatGroups(tension))
	}
	if steel.TotalCount(compression) > 0 {
		fmt.Fprintf(w, "  Compression bars:\t%s\n", steel.FormatGroups(compression))
	}
	fmt.Fprintf(w, "  Reinforcement (As):\t%.2f cm²\n", result.Reinforcement.AsTension)
	if result.Kind == beam.KindDoubly {
		fmt.Fprintf(w, "  Reinforcement (A's):\t%.2f cm²\n", result.Reinforcement.AsCompression)
	}
	w.Flush()
	fmt.Println()

	// Steel area limits
	printHeading("STEEL AREA LIMITS:")
	w = newTable()
	fmt.Fprintf(w, "  As,min:\t%.2f cm²\n", result.AsMin)
	fmt.Fprintf(w, "  As,bal:\t%.2f cm²\n", result.AsBalanced)
	fmt.Fprintf(w, "  As,max (0.75 As,bal):\t%.2f cm²\n", result.AsMax)
	as := result.Reinforcement.AsTension
	fmt.Fprintf(w, "  As,provided:\t%.2f cm²", as)
	switch {
	case as < result.AsMin:
		fmt.Fprintf(w, " ⚠ (< As,min)")
	case as > result.AsMax:
		fmt.Fprintf(w, " ⚠ (> As,max)")
	default:
		fmt.Fprintf(w, " ✓")
	}
	fmt.Fprintln(w)
	w.Flush()
	fmt.Println()

	// Section analysis
	printHeading("SECTION PROPERTIES:")
	w = newTable()
	fmt.Fprintf(w, "  β₁:\t%.3f\n", result.Beta1)
	fmt.Fprintf(w, "  Effective depth (d):\t%.2f cm\n", result.D)
	fmt.Fprintf(w, "  Neutral axis depth (c):\t%.2f cm\n", result.C)
	fmt.Fprintf(w, "  Compression block depth (a):\t%.2f cm\n", result.A)
	fmt.Fprintf(w, "  Tension steel strain (εs):\t%.6f\n", result.EpsilonS)
	fmt.Fprintf(w, "  Tension steel stress (fs):\t%.0f kg/cm² %s\n", result.Fs, yieldLabel(result.TensionYielded))
	if result.Kind == beam.KindDoubly {
		fmt.Fprintf(w, "  Compression steel strain (εs'):\t%.6f\n", result.EpsilonSc)
		fmt.Fprintf(w, "  Compression steel stress (fs'):\t%.0f kg/cm² %s\n", result.Fsc, yieldLabel(result.CompYielded))
	}
	w.Flush()
	fmt.Println()

	// Forces
	printHeading("INTERNAL FORCES:")
	w = newTable()
	fmt.Fprintf(w, "  Concrete compression (Cc):\t%.2f tonf\n", result.Cc)
	if result.Kind == beam.KindDoubly {
		fmt.Fprintf(w, "  Steel compression (Cs):\t%.2f tonf\n", result.Cs)
	}
	fmt.Fprintf(w, "  Steel tension (T):\t%.2f tonf\n", result.T)
	w.Flush()
	fmt.Println()

	// Moment capacity
	printHeading("MOMENT CAPACITY:")
	w = newTable()
	fmt.Fprintf(w, "  Nominal Moment (Mn):\t%.2f ton·m\n", result.Mn)
	fmt.Fprintf(w, "  Strength reduction factor (φ):\t%.2f\n", m.PhiFlexure)
	w.Flush()
	fmt.Println()

	printBox("DESIGN CAPACITY",
		fmt.Sprintf("φMn = %.2f ton·m", result.PhiMn),
		fmt.Sprintf("Mn = %.2f ton·m, φ = %.2f", result.Mn, m.PhiFlexure),
		fmt.Sprintf("Failure mode: %s", result.FailureMode),
	)

	// Status
	printHeading("STATUS:")
	fmt.Printf("  Failure mode: %s\n", failureLabel(result.FailureMode))
	if result.Kind == beam.KindSingly {
		fmt.Printf("  Steel branch: %s\n", result.Branch)
	} else {
		fmt.Printf("  Neutral axis: %s, %d iterations\n", result.Method, result.Iterations)
	}
	if fit != nil {
		fmt.Printf("  Minimum width, one layer: %.2f cm for %d bars %s\n", fit.Width, fit.BarCount, check(fit.Fits(g.Width)))
		if !fit.Fits(g.Width) {
			fmt.Println("  ⚠ The bars do not fit in one layer; consider two layers (--layers 2)")
		}
	}
	if demand != nil {
		fmt.Printf("  Mu = %.2f ton·m, Mu/φMn = %.3f %s\n", demand.Mu, demand.Ratio, check(demand.OK))
	}
	if warning != "" {
		fmt.Printf("  ⚠ %s\n", warning)
	}
	fmt.Println()

	data := diagram.FromResult(g, m, result)
	if analyzeShowDiagram {
		fmt.Println(diagram.DrawASCIISectionDiagram(data))
		fmt.Println(diagram.DrawStrainDiagram(data))
		fmt.Println(diagram.DrawSteelChart(data))
	}

	var diagramFile string
	if analyzeExportFile != "" {
		path, err := diagram.ExportSectionDiagram(data, analyzeExportFile)
		if err != nil {
			fmt.Printf("Error exporting diagram: %v\n", err)
		} else {
			fmt.Printf("Diagram exported to: %s\n", path)
			diagramFile = path
		}
	}
	if analyzeSteelChart != "" {
		path, err := diagram.ExportSteelChart(data, analyzeSteelChart)
		if err != nil {
			fmt.Printf("Error exporting steel chart: %v\n", err)
		} else {
			fmt.Printf("Steel chart exported to: %s\n", path)
		}
	}
	if analyzeStrainChart != "" {
		path, err := diagram.ExportStrainDiagram(data, analyzeStrainChart)
		if err != nil {
			fmt.Printf("Error exporting strain chart: %v\n", err)
		} else {
			fmt.Printf("Strain chart exported to: %s\n", path)
		}
	}

	if analyzeReportFile != "" {
		if !strings.HasSuffix(strings.ToLower(diagramFile), ".png") {
			diagramFile = ""
		}
		section := report.Section{
			Label:     fmt.Sprintf("%.0fx%.0f beam", g.Width, g.Height),
			Geometry:  g,
			Materials: m,
			Result:    result,
			Layout:    fit,
			Demand:    demand,
			Diagram:   diagramFile,
			Warning:   warning,
		}
		if err := writeReportFile(analyzeReportFile, "Beam Flexural Capacity", []report.Section{section}); err != nil {
			fmt.Printf("Error writing report: %v\n", err)
			return
		}
		fmt.Printf("Report written to: %s\n", analyzeReportFile)
	}
}

func yieldLabel(yielded bool) string {
	if yielded {
		return "(yields)"
	}
	return "(elastic)"
}

func failureLabel(mode aci.FailureMode) string {
	switch mode {
	case aci.FailureTension:
		return "Tension (ductile, steel yields before the concrete crushes)"
	case aci.FailureCompression:
		return "Compression (brittle, concrete crushes before the steel yields)"
	case aci.FailureBalanced:
		return "Balanced (steel yields as the concrete crushes)"
	}
	return string(mode)
}
