package code

import "fmt"

// Granularity is the reporting cadence of a source extract.
// The ordering defines "finer than": Weekly is finest.
type Granularity int

const (
	// GranularityWeekly is the finest cadence and the reconciliation base.
	GranularityWeekly Granularity = iota
	// GranularityMonthly is folded into a weekly base.
	GranularityMonthly
	// GranularityQuarterly is folded last, after monthly.
	GranularityQuarterly
)

// IsValid reports whether the granularity is a known cadence.
func (g Granularity) IsValid() bool {
	return g >= GranularityWeekly && g <= GranularityQuarterly
}

// FinerThan reports whether g is a finer cadence than other.
func (g Granularity) FinerThan(other Granularity) bool { return g < other }

// String returns the cadence name.
func (g Granularity) String() string {
	switch g {
	case GranularityWeekly:
		return "weekly"
	case GranularityMonthly:
		return "monthly"
	case GranularityQuarterly:
		return "quarterly"
	}
	return fmt.Sprintf("granularity(%d)", int(g))
}

// ParseGranularity maps a cadence name to its Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "weekly":
		return GranularityWeekly, nil
	case "monthly":
		return GranularityMonthly, nil
	case "quarterly":
		return GranularityQuarterly, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGranularity, s)
}

// UnmarshalYAML decodes a cadence name from configuration.
func (g *Granularity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseGranularity(name)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
