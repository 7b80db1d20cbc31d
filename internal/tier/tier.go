package tier

import "fmt"

// Tier is the visual severity bucket for a quest's attempt count.
type Tier int

const (
	Baseline Tier = iota // Not conquered: no marking
	Tier1                // 1-2 attempts
	Tier2                // 3-4 attempts
	Tier3                // 5-6 attempts
	Tier4                // 7 or more attempts
)

const tierCount = int(Tier4) + 1

// Classify maps an attempt count to its tier. Thresholds are lower bounds
// checked from the most severe down, so a boundary value belongs to the
// higher tier. Zero and negative counts are Baseline.
func Classify(attempts int) Tier {
	switch {
	case attempts >= 7:
		return Tier4
	case attempts >= 5:
		return Tier3
	case attempts >= 3:
		return Tier2
	case attempts >= 1:
		return Tier1
	default:
		return Baseline
	}
}

// All returns every tier in ascending severity.
func All() []Tier {
	return []Tier{Baseline, Tier1, Tier2, Tier3, Tier4}
}

// Severity returns the ordinal severity (0 for Baseline).
func (t Tier) Severity() int {
	return int(t)
}

// Valid reports whether t is a defined tier.
func (t Tier) Valid() bool {
	return t >= Baseline && t <= Tier4
}

// String returns the configuration key of the tier.
func (t Tier) String() string {
	switch t {
	case Baseline:
		return "baseline"
	case Tier1:
		return "tier1"
	case Tier2:
		return "tier2"
	case Tier3:
		return "tier3"
	case Tier4:
		return "tier4"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Label returns a human-readable label for the tier.
func (t Tier) Label() string {
	switch t {
	case Baseline:
		return "Unconquered"
	case Tier1:
		return "Swift"
	case Tier2:
		return "Steady"
	case Tier3:
		return "Hard-won"
	case Tier4:
		return "Grueling"
	default:
		return "Unknown"
	}
}

// Range returns the human-readable attempt range of the tier.
func (t Tier) Range() string {
	switch t {
	case Baseline:
		return "0"
	case Tier1:
		return "1-2"
	case Tier2:
		return "3-4"
	case Tier3:
		return "5-6"
	case Tier4:
		return "7+"
	default:
		return "?"
	}
}

// Parse converts a configuration key back to a Tier.
func Parse(s string) (Tier, error) {
	for _, t := range All() {
		if t.String() == s {
			return t, nil
		}
	}
	return Baseline, fmt.Errorf("unknown tier %q", s)
}
