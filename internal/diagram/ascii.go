package diagram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"
)

// rowOf maps a depth from the top to one of rows+1 text rows
func rowOf(depth, height float64, rows int) int {
	if height <= 0 {
		return 0
	}
	r := int(depth / height * float64(rows))
	return min(max(r, 0), rows)
}

// placeBars overwrites the middle of a row with a bar marker
func placeBars(fill []rune, marker string) {
	m := []rune(marker)
	start := (len(fill) - len(m)) / 2
	if start < 0 {
		return
	}
	copy(fill[start:], m)
}

// DrawASCIISectionDiagram creates an ASCII representation of the section with its stress block
func DrawASCIISectionDiagram(data SectionData) string {
	var sb strings.Builder

	widthChars := 30
	heightChars := 20

	naLine := rowOf(data.NeutralAxisDepth, data.Height, heightChars)
	aLine := rowOf(data.StressBlockDepth, data.Height, heightChars)
	tensionLine := rowOf(data.TensionSteelDepth, data.Height, heightChars)
	compLine := rowOf(data.CompSteelDepth, data.Height, heightChars)
	if tensionLine >= heightChars {
		tensionLine = heightChars - 1
	}
	if compLine <= 0 {
		compLine = 1
	}

	sb.WriteString("\n")
	sb.WriteString("  BEAM SECTION                    STRAIN              STRESS\n")
	sb.WriteString("  ────────────                    ──────              ──────\n")

	for i := 0; i <= heightChars; i++ {
		switch i {
		case 0:
			sb.WriteString(fmt.Sprintf("  ┌%s┐", strings.Repeat("─", widthChars)))
		case heightChars:
			sb.WriteString(fmt.Sprintf("  └%s┘", strings.Repeat("─", widthChars)))
		default:
			shade := " "
			if i <= aLine {
				shade = "░"
			}
			fill := []rune(strings.Repeat(shade, widthChars))

			if data.IsDoubly && i == compLine {
				placeBars(fill, "●──●")
			}
			if i == tensionLine {
				placeBars(fill, "●────●")
			}

			sb.WriteString(fmt.Sprintf("  │%s│", string(fill)))
			if i == naLine {
				sb.WriteString(" ◄─ N.A.")
			} else {
				sb.WriteString("        ")
			}
		}

		// Strain column
		sb.WriteString("    ")
		switch {
		case i == 0:
			sb.WriteString(fmt.Sprintf("  ├── εcu = %.4f", data.EpsilonCU))
		case i == naLine:
			sb.WriteString("  ├── ε = 0")
		case i == tensionLine:
			sb.WriteString(fmt.Sprintf("  ├── εs = %.4f%s", data.EpsilonT, yieldMark(data.TensionYields)))
		case data.IsDoubly && i == compLine:
			sb.WriteString(fmt.Sprintf("  ├── ε's = %.4f%s", data.EpsilonSC, yieldMark(data.CompYields)))
		case i < heightChars:
			sb.WriteString("  │")
		}

		// Stress column
		switch {
		case i == 0:
			sb.WriteString(fmt.Sprintf("      ┌── 0.85f'c = %.1f kg/cm²", data.Fc))
		case data.IsDoubly && i == compLine:
			sb.WriteString(fmt.Sprintf("      ── f's = %.0f kg/cm²", data.FsComp))
		case i == aLine && aLine > 0:
			sb.WriteString("      └── (stress block)")
		case i == tensionLine:
			sb.WriteString(fmt.Sprintf("      ── fs = %.0f kg/cm²", data.FsTension))
		}

		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ░░░ = Compression zone (stress block)\n")
	sb.WriteString("  ●●● = Reinforcement\n")
	sb.WriteString(fmt.Sprintf("  N.A. = Neutral Axis at c = %.2f cm from top\n", data.NeutralAxisDepth))
	sb.WriteString(fmt.Sprintf("  Stress block depth a = %.2f cm\n", data.StressBlockDepth))

	return sb.String()
}

func yieldMark(yields bool) string {
	if yields {
		return " (yields)"
	}
	return ""
}

// DrawStrainDiagram creates an ASCII strain distribution diagram
func DrawStrainDiagram(data SectionData) string {
	var sb strings.Builder

	height := 15
	width := 40

	maxStrain := max(data.EpsilonCU, data.EpsilonT)
	if maxStrain <= 0 || data.NeutralAxisDepth <= 0 {
		return ""
	}
	scale := float64(width-10) / maxStrain

	sb.WriteString("\n")
	sb.WriteString("  STRAIN DISTRIBUTION DIAGRAM\n")
	sb.WriteString("  ───────────────────────────\n\n")

	naLine := rowOf(data.NeutralAxisDepth, data.Height, height)
	tensionLine := rowOf(data.TensionSteelDepth, data.Height, height)

	for i := 0; i <= height; i++ {
		depth := float64(i) / float64(height) * data.Height

		// magnitude on either side of the neutral axis
		strain := data.EpsilonCU * (data.NeutralAxisDepth - depth) / data.NeutralAxisDepth
		if depth > data.NeutralAxisDepth {
			strain = -strain
		}
		barLen := max(int(strain*scale), 0)
		bar := strings.Repeat("█", barLen)

		switch {
		case i == 0:
			sb.WriteString(fmt.Sprintf("  Top    │%s▶ εcu=%.4f\n", bar, data.EpsilonCU))
		case i == naLine:
			sb.WriteString(fmt.Sprintf("  N.A.   ├%s (ε=0)\n", strings.Repeat("─", 5)))
		case i == tensionLine:
			mark := ""
			if data.TensionYields {
				mark = " ✓yields"
			}
			sb.WriteString(fmt.Sprintf("  Steel  │%s▶ εs=%.4f%s\n", bar, data.EpsilonT, mark))
		case i == height:
			sb.WriteString(fmt.Sprintf("  Bottom │%s\n", bar))
		default:
			sb.WriteString(fmt.Sprintf("         │%s\n", bar))
		}
	}

	yieldBar := int(data.EpsilonY * scale)
	sb.WriteString(fmt.Sprintf("\n  εy = %.4f %s (yield strain)\n", data.EpsilonY, strings.Repeat("─", yieldBar)+"┤"))

	return sb.String()
}

// DrawSteelChart plots the bilinear steel stress-strain curve up to the
// tension steel strain, in kg/cm²
func DrawSteelChart(data SectionData) string {
	curve := SteelCurve(data.Fy, data.Es, chartStrainLimit(data), 60)
	stresses := make([]float64, len(curve))
	for i, p := range curve {
		stresses[i] = p.Y
	}

	caption := fmt.Sprintf("fs vs εs to %.4f (εy = %.4f, fs = %.0f kg/cm²)",
		curve[len(curve)-1].X, data.EpsilonY, data.FsTension)

	return asciigraph.Plot(stresses,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	) + "\n"
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}
	maxLen += 4

	pad := func(s string) string {
		return s + strings.Repeat(" ", maxLen-2-utf8.RuneCountInString(s))
	}

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s║\n", pad(title)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s║\n", pad(line)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
