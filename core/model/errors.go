package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies the failures raised by the catalogs, the conversion
// engine, the thermal manager and the coordinator.
type ErrorKind int

const (
	KindConfigNotFound ErrorKind = iota + 1
	KindInvalidConfiguration
	KindUnsafeTemperature
	KindInvalidThermalConditions
	KindValueOutOfRange
	KindEmergencyShutdown
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfigNotFound:
		return "config_not_found"
	case KindInvalidConfiguration:
		return "invalid_configuration"
	case KindUnsafeTemperature:
		return "unsafe_temperature"
	case KindInvalidThermalConditions:
		return "invalid_thermal_conditions"
	case KindValueOutOfRange:
		return "value_out_of_range"
	case KindEmergencyShutdown:
		return "emergency_shutdown"
	default:
		return "unknown"
	}
}

// Bound is the closed interval a value was checked against.
type Bound struct {
	Min float64
	Max float64
}

func (b Bound) String() string { return fmt.Sprintf("[%g, %g]", b.Min, b.Max) }

// Contains reports whether v lies inside the bound.
func (b Bound) Contains(v float64) bool { return v >= b.Min && v <= b.Max }

// Error is the tagged error returned by every core operation. Callers branch
// on Kind with errors.Is against the Err* sentinels and read the details with
// errors.As.
type Error struct {
	Kind ErrorKind
	// Field names the offending input, e.g. "ambient temperature".
	Field string
	Value float64
	// Bound is set for KindValueOutOfRange and KindUnsafeTemperature.
	Bound *Bound
	// Violations lists every failed constraint for configuration and
	// thermal-condition validation.
	Violations []string
	Msg        string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	switch {
	case e.Kind == KindValueOutOfRange && e.Bound != nil:
		return fmt.Sprintf("%s %g outside range %s", e.Field, e.Value, e.Bound)
	case len(e.Violations) > 0:
		return fmt.Sprintf("%s: %s", e.Kind, strings.Join(e.Violations, "; "))
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Field)
	}
	return e.Kind.String()
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of the details carried.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrConfigNotFound           = &Error{Kind: KindConfigNotFound}
	ErrInvalidConfiguration     = &Error{Kind: KindInvalidConfiguration}
	ErrUnsafeTemperature        = &Error{Kind: KindUnsafeTemperature}
	ErrInvalidThermalConditions = &Error{Kind: KindInvalidThermalConditions}
	ErrValueOutOfRange          = &Error{Kind: KindValueOutOfRange}
	ErrEmergencyShutdown        = &Error{Kind: KindEmergencyShutdown}
)

// NewConfigNotFound reports an unknown TEG configuration id.
func NewConfigNotFound(id string) *Error {
	return &Error{Kind: KindConfigNotFound, Field: id, Msg: fmt.Sprintf("TEG configuration %q not found", id)}
}

// NewInvalidConfiguration wraps the violated constraints of a rejected configuration.
func NewInvalidConfiguration(id string, violations []string) *Error {
	return &Error{
		Kind:       KindInvalidConfiguration,
		Field:      id,
		Violations: violations,
		Msg:        fmt.Sprintf("invalid TEG configuration %q: %s", id, strings.Join(violations, "; ")),
	}
}

// NewInvalidThermalConditions wraps the failed thermal-condition checks.
func NewInvalidThermalConditions(violations []string) *Error {
	return &Error{
		Kind:       KindInvalidThermalConditions,
		Violations: violations,
		Msg:        "invalid thermal conditions: " + strings.Join(violations, "; "),
	}
}

// NewUnsafeTemperature reports a hot side above the safety ceiling.
func NewUnsafeTemperature(hotSide, ceiling float64) *Error {
	return &Error{
		Kind:  KindUnsafeTemperature,
		Field: "hot side temperature",
		Value: hotSide,
		Bound: &Bound{Min: -273.15, Max: ceiling},
		Msg:   fmt.Sprintf("hot side temperature %g°C exceeds safety limit %g°C", hotSide, ceiling),
	}
}

// NewOutOfRange reports value outside [min, max] for the named field.
func NewOutOfRange(field string, value, min, max float64) *Error {
	return &Error{Kind: KindValueOutOfRange, Field: field, Value: value, Bound: &Bound{Min: min, Max: max}}
}

// NewEmergencyShutdown reports a brake temperature at or above the shutdown threshold.
func NewEmergencyShutdown(brakeTemp, threshold float64) *Error {
	return &Error{
		Kind:  KindEmergencyShutdown,
		Field: "brake temperature",
		Value: brakeTemp,
		Bound: &Bound{Min: -273.15, Max: threshold},
		Msg:   fmt.Sprintf("emergency shutdown: brake temperature %g°C reached threshold %g°C", brakeTemp, threshold),
	}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
