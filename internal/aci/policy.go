package aci

import "gonum.org/v1/gonum/floats/scalar"

// SteelBranch tells which closed-form path applies to a singly reinforced section
type SteelBranch int

const (
	// Yielding: As < As,bal, tension steel reaches fy before the concrete crushes
	Yielding SteelBranch = iota + 1
	// NonYielding: As >= As,bal, the concrete crushes with the steel still elastic
	NonYielding
)

func (b SteelBranch) String() string {
	switch b {
	case Yielding:
		return "yielding"
	case NonYielding:
		return "non-yielding"
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler
func (b SteelBranch) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// SteelBranchFor selects the singly reinforced branch for a tension steel area
func SteelBranchFor(as, asBalanced float64) SteelBranch {
	if as < asBalanced {
		return Yielding
	}
	return NonYielding
}

// FailureMode classifies how a section fails at nominal capacity
type FailureMode string

const (
	FailureTension     FailureMode = "Tension"
	FailureCompression FailureMode = "Compression"
	FailureBalanced    FailureMode = "Balanced"
)

func (f FailureMode) String() string {
	return string(f)
}

// Ductile reports whether the section fails by steel yielding
func (f FailureMode) Ductile() bool {
	return f == FailureTension
}

// ClassifyByArea compares the tension steel area against the balanced area,
// both rounded to 2 decimals. Used for singly reinforced sections.
func ClassifyByArea(as, asBalanced float64) FailureMode {
	as = scalar.Round(as, 2)
	asBalanced = scalar.Round(asBalanced, 2)

	switch {
	case as < asBalanced:
		return FailureTension
	case as > asBalanced:
		return FailureCompression
	default:
		return FailureBalanced
	}
}

// ClassifyByStrain uses the net tensile strain convention. Used for doubly
// reinforced sections, which never report Balanced.
func ClassifyByStrain(epsilonT float64) FailureMode {
	if epsilonT >= TensionControlStrain {
		return FailureTension
	}
	return FailureCompression
}
