// Package diagram draws rectangular beam sections, strain profiles and the
// steel stress-strain curve, as terminal text or as image files.
package diagram

import (
	"github.com/alexiusacademia/rcflex/internal/beam"
)

// SectionData holds what the diagrams need from one capacity result.
// Lengths in cm, stresses in kg/cm².
type SectionData struct {
	Width  float64
	Height float64

	NeutralAxisDepth float64 // c, from top
	StressBlockDepth float64 // a, from top

	TensionSteelDepth float64 // d, from top
	TensionSteelArea  float64 // cm²
	CompSteelDepth    float64 // d', from top, 0 if none
	CompSteelArea     float64 // cm², 0 if none

	EpsilonCU float64
	EpsilonT  float64
	EpsilonSC float64
	EpsilonY  float64

	Fc        float64 // 0.85·f'c
	Fy        float64
	Es        float64
	FsTension float64
	FsComp    float64

	TensionYields bool
	CompYields    bool
	IsDoubly      bool
}

// FromResult collects the diagram data for a section and its result
func FromResult(g beam.Geometry, m beam.Materials, r *beam.CapacityResult) SectionData {
	data := SectionData{
		Width:             g.Width,
		Height:            g.Height,
		NeutralAxisDepth:  r.C,
		StressBlockDepth:  r.A,
		TensionSteelDepth: r.D,
		TensionSteelArea:  r.Reinforcement.AsTension,
		EpsilonCU:         m.Ecu,
		EpsilonT:          r.EpsilonS,
		EpsilonY:          m.YieldStrain(),
		Fc:                0.85 * m.Fc,
		Fy:                m.Fy,
		Es:                m.Es,
		FsTension:         r.Fs,
		TensionYields:     r.TensionYielded,
		IsDoubly:          r.Kind == beam.KindDoubly,
	}
	if data.IsDoubly {
		data.CompSteelDepth = r.DComp
		data.CompSteelArea = r.Reinforcement.AsCompression
		data.EpsilonSC = r.EpsilonSc
		data.FsComp = r.Fsc
		data.CompYields = r.CompYielded
	}
	return data
}
