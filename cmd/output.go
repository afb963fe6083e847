package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/rcflex/internal/diagram"
	"github.com/alexiusacademia/rcflex/internal/report"
	"github.com/alexiusacademia/rcflex/internal/version"
)

const rule = "───────────────────────────────────────────────────────────────"

func printTitle(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

func printHeading(heading string) {
	fmt.Println(heading)
	fmt.Println(rule)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func printBox(title string, lines ...string) {
	fmt.Print(diagram.DrawSummaryBox(title, lines))
	fmt.Println()
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return "⚠"
}

func writeReportFile(path, title string, sections []report.Section) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f, report.Meta{Title: title, Author: version.Author}, sections); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
