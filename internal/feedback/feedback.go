// package feedback classifies and validates the number-of-simulations input
package feedback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/mcview/internal/shared"
)

var (
	ErrBelowMinimum = fmt.Errorf("below minimum")
	ErrAboveMaximum = fmt.Errorf("above maximum")
)

// Level is the live feedback state of the input.
type Level int

const (
	Neutral Level = iota
	OK
	Warning
	Invalid
)

func (l Level) String() string {
	switch l {
	case OK:
		return "ok"
	case Warning:
		return "warning"
	case Invalid:
		return "invalid"
	default:
		return "neutral"
	}
}

// Color returns the border colour shown for the level.
func (l Level) Color() string {
	switch l {
	case OK:
		return "#28a745"
	case Warning:
		return "#ffc107"
	case Invalid:
		return "#dc3545"
	default:
		return "#626262"
	}
}

// Limits is the accepted range for the number of simulations.
type Limits struct {
	Min int
	Max int
}

// DefaultLimits matches the simulation's own bounds.
var DefaultLimits = Limits{Min: 1, Max: 1000}

// LimitsFromConfig reads the validation section, falling back to [DefaultLimits] for an empty range.
func LimitsFromConfig(c shared.ValidationConfig) Limits {
	if c.Min == 0 && c.Max == 0 {
		return DefaultLimits
	}
	return Limits{Min: c.Min, Max: c.Max}
}

// Hint is the tooltip shown next to the input.
func Hint(l Limits) string {
	return fmt.Sprintf("Enter a number of simulations between %d-%d", l.Min, l.Max)
}

func parse(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	return n, err == nil
}

// Classify returns the feedback level for the current input value.
func Classify(raw string, l Limits) Level {
	if strings.TrimSpace(raw) == "" {
		return Neutral
	}
	n, ok := parse(raw)
	switch {
	case !ok, n < l.Min:
		return Invalid
	case n > l.Max:
		return Warning
	default:
		return OK
	}
}

// Validate checks the input on submit.
//
// The returned error wraps [ErrBelowMinimum] or [ErrAboveMaximum] and carries the message shown to the user.
func Validate(raw string, l Limits) (int, error) {
	n, ok := parse(raw)
	if !ok || n < l.Min {
		return 0, fmt.Errorf("%w: number of simulations must be at least %d", ErrBelowMinimum, l.Min)
	}
	if n > l.Max {
		return 0, fmt.Errorf("%w: number of simulations is limited to %d for performance", ErrAboveMaximum, l.Max)
	}
	return n, nil
}

// Message strips the sentinel prefix from a validation error.
func Message(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrBelowMinimum, ErrAboveMaximum} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}

// Normalize clamps raw into the limits, using fallback when raw is not a number.
func Normalize(raw string, l Limits, fallback int) int {
	n, ok := parse(raw)
	if !ok {
		n = fallback
	}
	return max(l.Min, min(n, l.Max))
}
