package model

import (
	"fmt"
	"math"
	"reflect"
)

// FormatKind is the wire shape of a characteristic value.
type FormatKind uint8

const (
	FormatUnknown FormatKind = iota
	FormatBool
	FormatInt
	FormatFloat
	FormatEnum
	FormatString
)

// String returns the format kind name.
func (k FormatKind) String() string {
	names := []string{"unknown", "bool", "int", "float", "enum", "string"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// ParseFormatKind parses a format kind name.
func ParseFormatKind(s string) (FormatKind, bool) {
	switch s {
	case "bool":
		return FormatBool, true
	case "int":
		return FormatInt, true
	case "float":
		return FormatFloat, true
	case "enum":
		return FormatEnum, true
	case "string":
		return FormatString, true
	default:
		return FormatUnknown, false
	}
}

// stepTolerance absorbs float rounding when checking step alignment.
const stepTolerance = 1e-9

// Format describes a characteristic value's shape and constraints.
type Format struct {
	// Kind is the value shape.
	Kind FormatKind

	// Min is the minimum allowed value (numeric kinds).
	Min *float64

	// Max is the maximum allowed value (numeric kinds).
	Max *float64

	// Step is the value granularity relative to Min (numeric kinds).
	Step *float64

	// MaxCode is the largest valid code (enum kind only).
	MaxCode int

	// MaxLen is the maximum string length in bytes (string kind, 0 = 64).
	MaxLen int

	// Unit is the unit of measurement (e.g., "percentage", "ppm").
	Unit string
}

// DefaultMaxLen is the HAP default maximum string length.
const DefaultMaxLen = 64

// BoolFormat returns a boolean format.
func BoolFormat() Format {
	return Format{Kind: FormatBool}
}

// FloatFormat returns a bounded float format. A zero step means continuous.
func FloatFormat(min, max, step float64, unit string) Format {
	f := Format{Kind: FormatFloat, Min: &min, Max: &max, Unit: unit}
	if step > 0 {
		f.Step = &step
	}
	return f
}

// IntFormat returns a bounded integer format.
func IntFormat(min, max, step int64, unit string) Format {
	lo, hi := float64(min), float64(max)
	f := Format{Kind: FormatInt, Min: &lo, Max: &hi, Unit: unit}
	if step > 0 {
		s := float64(step)
		f.Step = &s
	}
	return f
}

// EnumFormat returns an enumeration format with codes 0..maxCode.
func EnumFormat(maxCode int) Format {
	lo, hi, step := 0.0, float64(maxCode), 1.0
	return Format{Kind: FormatEnum, Min: &lo, Max: &hi, Step: &step, MaxCode: maxCode}
}

// StringFormat returns a string format. A zero maxLen uses DefaultMaxLen.
func StringFormat(maxLen int) Format {
	return Format{Kind: FormatString, MaxLen: maxLen}
}

// Check validates the format definition itself.
func (f Format) Check() error {
	switch f.Kind {
	case FormatBool, FormatString:
		return nil
	case FormatInt, FormatFloat:
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return fmt.Errorf("%w: min %v > max %v", ErrInvalidDefinition, *f.Min, *f.Max)
		}
		if f.Step != nil && *f.Step <= 0 {
			return fmt.Errorf("%w: step %v must be positive", ErrInvalidDefinition, *f.Step)
		}
		return nil
	case FormatEnum:
		if f.MaxCode < 0 {
			return fmt.Errorf("%w: maxCode %d is negative", ErrInvalidDefinition, f.MaxCode)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown format kind %d", ErrInvalidDefinition, f.Kind)
	}
}

// Validate checks that value lies in the format's domain.
func (f Format) Validate(value any) error {
	switch f.Kind {
	case FormatBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: expected bool, got %T", ErrInvalidValue, value)
		}
		return nil

	case FormatString:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrInvalidValue, value)
		}
		max := f.MaxLen
		if max == 0 {
			max = DefaultMaxLen
		}
		if len(s) > max {
			return fmt.Errorf("%w: string length %d > %d", ErrInvalidValue, len(s), max)
		}
		return nil

	case FormatInt:
		if !isInteger(value) {
			return fmt.Errorf("%w: expected integer, got %T", ErrInvalidValue, value)
		}
		return f.checkRange(value)

	case FormatFloat:
		if !isNumeric(value) {
			return fmt.Errorf("%w: expected number, got %T", ErrInvalidValue, value)
		}
		return f.checkRange(value)

	case FormatEnum:
		if !isInteger(value) {
			return fmt.Errorf("%w: expected enum code, got %T", ErrInvalidValue, value)
		}
		code, _ := toFloat64(value)
		if code < 0 || code > float64(f.MaxCode) {
			return fmt.Errorf("%w: code %v outside 0..%d", ErrInvalidValue, value, f.MaxCode)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown format kind %d", ErrInvalidValue, f.Kind)
	}
}

// checkRange validates numeric range and step constraints.
func (f Format) checkRange(value any) error {
	v, _ := toFloat64(value)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v is not finite", ErrInvalidValue, value)
	}

	if f.Min != nil && v < *f.Min {
		return fmt.Errorf("%w: %v < %v", ErrInvalidValue, value, *f.Min)
	}
	if f.Max != nil && v > *f.Max {
		return fmt.Errorf("%w: %v > %v", ErrInvalidValue, value, *f.Max)
	}

	if f.Step != nil {
		base := 0.0
		if f.Min != nil {
			base = *f.Min
		}
		steps := (v - base) / *f.Step
		if math.Abs(steps-math.Round(steps)) > stepTolerance {
			return fmt.Errorf("%w: %v is not a multiple of step %v", ErrInvalidValue, value, *f.Step)
		}
	}
	return nil
}

// Helper functions for type checking. Named numeric types (including enum
// state types) are accepted through reflection.

func isInteger(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func isNumeric(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	default:
		return isInteger(v)
	}
}

func toFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// convertValue converts v to T. Numeric values are converted between kinds
// only when the conversion is lossless (e.g., 75.0 to int, 3 to float64).
func convertValue[T any](v any) (T, bool) {
	var zero T
	if t, ok := v.(T); ok {
		return t, true
	}
	if v == nil {
		return zero, false
	}

	target := reflect.TypeOf((*T)(nil)).Elem()
	rv := reflect.ValueOf(v)
	if !isNumeric(v) || !isNumericKind(target.Kind()) || !rv.CanConvert(target) {
		return zero, false
	}

	converted := rv.Convert(target)
	orig, _ := toFloat64(v)
	back, _ := toFloat64(converted.Interface())
	if orig != back {
		return zero, false
	}
	return converted.Interface().(T), true
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
