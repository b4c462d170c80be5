package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Condition tells on which side of the target price an alert fires.
type Condition string

const (
	ConditionAbove Condition = "above"
	ConditionBelow Condition = "below"
)

// ParseCondition maps user input to a Condition. An empty string
// defaults to "above", anything else unknown is a validation error.
func ParseCondition(s string) (Condition, error) {
	switch Condition(s) {
	case "", ConditionAbove:
		return ConditionAbove, nil
	case ConditionBelow:
		return ConditionBelow, nil
	}
	return "", Invalidf("unknown condition %q, use 'above' or 'below'", s)
}

// Rule is a registered price alert. Identity is structural, there is no id.
type Rule struct {
	Asset     string
	Target    float64
	Condition Condition
}

// Triggered reports whether price satisfies the rule. Comparison is
// non-strict, a price exactly at the target fires.
func (r Rule) Triggered(price float64) bool {
	if r.Condition == ConditionBelow {
		return price <= r.Target
	}
	return price >= r.Target
}

// Holding is a single portfolio position.
type Holding struct {
	Asset    string
	Quantity decimal.Decimal
}

// Notification carries everything a fired alert message needs.
type Notification struct {
	ChatID    int64
	Asset     string
	Condition Condition
	Target    float64
	Price     float64
}

// ValidationError reports bad user input. It is surfaced to the command
// layer and never touches other users' state.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Invalidf builds a ValidationError from a format string.
func Invalidf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
