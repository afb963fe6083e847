package aci

import "fmt"

// Combination is a strength design load combination (ACI 318 5.3.1)
type Combination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D
	Live       float64 // L
	Roof       float64 // Lr
	Wind       float64 // W
	Earthquake float64 // E
	Rain       float64 // R
}

// Combinations are the basic ACI 318 strength combinations
var Combinations = []Combination{
	{ID: "5.3.1a", Description: "1.4D", Dead: 1.4},
	{ID: "5.3.1b", Description: "1.2D + 1.6L + 0.5(Lr or R)", Dead: 1.2, Live: 1.6, Roof: 0.5, Rain: 0.5},
	{ID: "5.3.1c", Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)", Dead: 1.2, Live: 1.0, Roof: 1.6, Rain: 1.6, Wind: 0.5},
	{ID: "5.3.1d", Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)", Dead: 1.2, Live: 1.0, Wind: 1.0, Roof: 0.5, Rain: 0.5},
	{ID: "5.3.1e", Description: "1.2D + 1.0E + 1.0L", Dead: 1.2, Live: 1.0, Earthquake: 1.0},
	{ID: "5.3.1f", Description: "0.9D + 1.0W", Dead: 0.9, Wind: 1.0},
	{ID: "5.3.1g", Description: "0.9D + 1.0E", Dead: 0.9, Earthquake: 1.0},
}

// GravityCombinations covers dead and live load only
var GravityCombinations = []Combination{
	{ID: "5.3.1a", Description: "1.4D", Dead: 1.4},
	{ID: "5.3.1b", Description: "1.2D + 1.6L", Dead: 1.2, Live: 1.6},
}

// LoadMoments holds unfactored moments per load type (ton·m)
type LoadMoments struct {
	Dead       float64
	Live       float64
	Roof       float64
	Wind       float64
	Earthquake float64
	Rain       float64
}

// IsZero reports whether no load moment was given
func (m LoadMoments) IsZero() bool {
	return m == LoadMoments{}
}

// Factored returns the factored moment Mu for this combination
func (c Combination) Factored(m LoadMoments) float64 {
	return c.Dead*m.Dead +
		c.Live*m.Live +
		c.Roof*m.Roof +
		c.Wind*m.Wind +
		c.Earthquake*m.Earthquake +
		c.Rain*m.Rain
}

// Governing finds the largest factored moment among the combinations
func Governing(m LoadMoments, combinations []Combination) (float64, Combination) {
	var maxMu float64
	var governing Combination

	for _, combo := range combinations {
		mu := combo.Factored(m)
		if mu > maxMu {
			maxMu = mu
			governing = combo
		}
	}

	return maxMu, governing
}

// DemandCheck compares a factored moment with a design capacity
type DemandCheck struct {
	Mu    float64 // ton·m
	PhiMn float64 // ton·m
	Ratio float64 // Mu/φMn
	OK    bool
}

// CheckDemand evaluates Mu <= φMn
func CheckDemand(mu, phiMn float64) (DemandCheck, error) {
	if phiMn <= 0 {
		return DemandCheck{}, fmt.Errorf("design capacity must be positive: φMn=%.2f", phiMn)
	}
	return DemandCheck{
		Mu:    mu,
		PhiMn: phiMn,
		Ratio: mu / phiMn,
		OK:    mu <= phiMn,
	}, nil
}
