package classify

import (
	"errors"

	"github.com/shopspring/decimal"

	"rdalreport/internal/reporting/domain/code"
)

// Attributes is the fixed record of business fields an extraction adapter
// attaches to one raw observation. The maturity bucket is pre-computed
// upstream by date arithmetic; it arrives here as a two-digit label.
type Attributes struct {
	TransactionType string
	Residency       string // one-letter residency/classification
	CustomerType    string // one digit
	ProductSubType  string // two digits
	MaturityBucket  string // two digits
	Currency        string
	Indicator       code.Indicator
	Amount          decimal.Decimal
}

// Rule maps matching attributes to one emitted observation.
type Rule struct {
	Name string
	// Match decides whether the rule applies.
	Match func(Attributes) bool
	// Emit constructs the observation for matching attributes.
	Emit func(Attributes) (code.Observation, error)
	// AllowZero lets the rule emit zero-amount placeholder rows; such rows
	// preserve code membership for a later merge to re-populate.
	AllowZero bool
}

// Group is an ordered set of rules. Exclusive groups stop at the first
// matching rule; non-exclusive groups evaluate every rule, so one input
// observation may expand into several derived codes.
type Group struct {
	Name      string
	Exclusive bool
	Rules     []Rule
}

// Engine evaluates an ordered list of rule groups against observation
// attributes. The rule table is loaded once and read-only afterwards.
type Engine struct {
	groups  []Group
	dropped int
}

// NewEngine constructs an engine over an ordered rule table.
func NewEngine(groups []Group) (*Engine, error) {
	if len(groups) == 0 {
		return nil, errors.New("classify: empty rule table")
	}
	return &Engine{groups: groups}, nil
}

// Classify maps attributes to zero or more observations. Groups are walked
// top to bottom; a zero amount suppresses emission unless the matching rule
// allows placeholder rows. Attributes matching no rule at all are dropped
// and counted for audit.
func (e *Engine) Classify(attrs Attributes) ([]code.Observation, error) {
	var out []code.Observation
	matched := false

	for _, group := range e.groups {
		for _, rule := range group.Rules {
			if !rule.Match(attrs) {
				continue
			}
			matched = true
			if attrs.Amount.IsZero() && !rule.AllowZero {
				if group.Exclusive {
					break
				}
				continue
			}
			obs, err := rule.Emit(attrs)
			if err != nil {
				return nil, err
			}
			out = append(out, obs)
			if group.Exclusive {
				break
			}
		}
	}

	if !matched {
		e.dropped++
	}
	return out, nil
}

// Dropped returns the number of observations no rule matched since the
// engine was constructed.
func (e *Engine) Dropped() int { return e.dropped }
