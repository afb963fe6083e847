package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/rcflex/internal/batch"
	"github.com/alexiusacademia/rcflex/internal/log"
	"github.com/alexiusacademia/rcflex/internal/report"
	"github.com/alexiusacademia/rcflex/internal/steel"
	"github.com/spf13/cobra"
)

var (
	batchOutput  string
	batchReport  string
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch <input.xlsx>",
	Short: "Evaluate every section of a workbook",
	Long: `Read beam sections from the first sheet of an .xlsx workbook and
write their capacities to a results workbook.

The first row is a header; the columns are:

  label, b, h, layers, tension, compression, fc, fy

Bars are written as in 'beam analyze' ("2x1\",1x5/8\""). Empty layers, fc
and fy cells take the configured defaults.

Examples:
  rcflex batch beams.xlsx
  rcflex batch beams.xlsx --output capacities.xlsx --report capacities.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Results workbook (default <input>-results.xlsx)")
	batchCmd.Flags().StringVar(&batchReport, "report", "", "Also write a PDF report of the evaluated sections")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Rows evaluated in parallel (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	if batchOutput == "" {
		batchOutput = strings.TrimSuffix(input, filepath.Ext(input)) + "-results.xlsx"
	}

	in, err := os.Open(input)
	if err != nil {
		return err
	}
	rows, err := batch.ReadRows(in)
	in.Close()
	if err != nil {
		return err
	}
	log.Infof("Read %d rows from %s", len(rows), input)

	runner := batch.NewRunner(steel.Standard, cfg)
	if batchWorkers > 0 {
		runner.Workers = batchWorkers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcomes, err := runner.Run(ctx, rows)
	if err != nil {
		return err
	}

	out, err := os.Create(batchOutput)
	if err != nil {
		return err
	}
	if err := batch.WriteResults(out, outcomes); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	s := batch.Summarize(outcomes)
	printTitle("BATCH EVALUATION")
	w := newTable()
	fmt.Fprintf(w, "  Rows:\t%d\n", s.Total)
	fmt.Fprintf(w, "  Evaluated:\t%d\n", s.OK)
	fmt.Fprintf(w, "  Warnings:\t%d\n", s.Warnings)
	fmt.Fprintf(w, "  Errors:\t%d\n", s.Failed)
	w.Flush()
	fmt.Println()
	for _, o := range outcomes {
		switch {
		case o.Failed():
			log.Errorf("row %d (%s): %v", o.Row.Line, o.Row.Label, o.Err)
		case o.Err != nil:
			log.Warnf("row %d (%s): %v", o.Row.Line, o.Row.Label, o.Err)
		}
	}
	fmt.Printf("Results written to: %s\n", batchOutput)

	if batchReport != "" {
		sections := reportSections(outcomes)
		if len(sections) == 0 {
			return fmt.Errorf("no evaluated rows to report")
		}
		if err := writeReportFile(batchReport, "Batch Flexural Capacity", sections); err != nil {
			return err
		}
		fmt.Printf("Report written to: %s\n", batchReport)
	}
	return nil
}

// reportSections keeps the rows that produced a result
func reportSections(outcomes []batch.Outcome) []report.Section {
	var sections []report.Section
	for _, o := range outcomes {
		if o.Result == nil {
			continue
		}
		fit := o.Layout
		s := report.Section{
			Label:     o.Row.Label,
			Geometry:  o.Geometry,
			Materials: o.Materials,
			Result:    o.Result,
			Layout:    &fit,
		}
		if o.Err != nil {
			s.Warning = o.Err.Error()
		}
		sections = append(sections, s)
	}
	return sections
}
