package aci

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Strength design constants in the kg/cm² unit set

const (
	// Beta1 factors for the equivalent rectangular stress block
	Beta1Max = 0.85 // for f'c <= 280 kg/cm²
	Beta1Min = 0.65 // for f'c > 560 kg/cm²

	// f'c limits bounding the linear β1 range (kg/cm²)
	Beta1LowerFc = 280.0
	Beta1UpperFc = 560.0

	// Strain limits
	EpsilonCU            = 0.003 // Ultimate concrete strain
	TensionControlStrain = 0.005 // Net tensile strain for tension-controlled sections

	// Strength reduction factor for flexure
	PhiFlexure = 0.90

	// Modulus of elasticity for steel (kg/cm²)
	Es = 2000000.0

	// Typical material grades
	DefaultFc = 210.0  // kg/cm²
	DefaultFy = 4200.0 // kg/cm²

	// MaxSteelFactor relates As,max to As,bal
	MaxSteelFactor = 0.75
)

// Beta1 calculates the factor for the equivalent rectangular stress block.
//
//	β1 = 0.85                          f'c <= 280
//	β1 = 1.05 - 0.714·f'c/1000         280 < f'c <= 560 (rounded to 3 decimals)
//	β1 = 0.65                          f'c > 560
func Beta1(fc float64) float64 {
	switch {
	case fc <= Beta1LowerFc:
		return Beta1Max
	case fc <= Beta1UpperFc:
		return scalar.Round(1.05-0.714*(fc/1000), 3)
	default:
		return Beta1Min
	}
}

// YieldStrain returns εy = fy/Es
func YieldStrain(fy, es float64) float64 {
	return fy / es
}

// AsMin calculates the minimum tension steel area (cm²)
// As,min = 0.7·√f'c/fy·b·d
func AsMin(fc, fy, b, d float64) float64 {
	return 0.7 * (math.Sqrt(fc) / fy) * b * d
}

// AsBalanced calculates the balanced tension steel area (cm²), the area at
// which the concrete crushes as the steel reaches yield.
func AsBalanced(fc, fy, es, ecu, beta1, b, d float64) float64 {
	// c/d at balanced = εcu / (εcu + εy)
	cb := ecu / (ecu + YieldStrain(fy, es))
	return b * d * (0.85 * beta1 * fc / fy) * cb
}

// AsMax calculates the maximum tension steel area (cm²) from the balanced area
func AsMax(asBalanced float64) float64 {
	return MaxSteelFactor * asBalanced
}

// SteelStress returns the stress in steel for a given strain under the
// bilinear (elastic, perfectly plastic) model. Positive strain is tension.
func SteelStress(strain, fy, es float64) float64 {
	if strain >= YieldStrain(fy, es) {
		return fy
	}
	return es * strain
}

// CompressionSteelStress returns the stress in compression steel, capped at fy.
// Positive strain is compression.
func CompressionSteelStress(strain, fy, es float64) float64 {
	return math.Min(es*strain, fy)
}
