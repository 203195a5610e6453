package schema

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
)

// Type defines the contract for field validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// Normalizer is implemented by types that rewrite a value while validating it
// (defaults, numeric coercion). Types without it are returned unchanged.
type Normalizer interface {
	Normalize(value any) (any, error)
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	_, err := toInt(value)
	return err
}

// Normalize returns the value as a plain int.
func (t *IntType) Normalize(value any) (any, error) {
	return toInt(value)
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v), nil
		}
		return 0, fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return 0, fmt.Errorf("expected int, got %T", value)
	}
}

// FloatType validates floating-point values.
type FloatType struct{}

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Validate(value any) error {
	_, err := toFloat(value)
	return err
}

// Normalize returns the value as a float64 so integer literals such as `0`
// in YAML decode uniformly.
func (t *FloatType) Normalize(value any) (any, error) {
	return toFloat(value)
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expected float, got %T", value)
	}
}

// PositiveType validates floats strictly greater than zero.
type PositiveType struct{}

func (t *PositiveType) Name() string { return "positive float" }

func (t *PositiveType) Validate(value any) error {
	_, err := t.Normalize(value)
	return err
}

// Normalize returns the value as a float64.
func (t *PositiveType) Normalize(value any) (any, error) {
	f, err := toFloat(value)
	if err != nil {
		return nil, err
	}
	if f <= 0 {
		return nil, fmt.Errorf("must be positive, got %g", f)
	}
	return f, nil
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// EnumType validates strings drawn from a fixed set. Matching is case-sensitive.
type EnumType struct {
	values []string
}

func (t *EnumType) Name() string {
	return fmt.Sprintf("enum(%s)", strings.Join(t.values, "|"))
}

func (t *EnumType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if !slices.Contains(t.values, s) {
		return fmt.Errorf("%q is not one of %s", s, strings.Join(t.values, ", "))
	}
	return nil
}

// IntRangeType validates integers within [Min, Max].
type IntRangeType struct {
	Min, Max int
}

func (t *IntRangeType) Name() string {
	return fmt.Sprintf("int[%d..%d]", t.Min, t.Max)
}

func (t *IntRangeType) Validate(value any) error {
	_, err := t.Normalize(value)
	return err
}

func (t *IntRangeType) Normalize(value any) (any, error) {
	i, err := toInt(value)
	if err != nil {
		return nil, err
	}
	if i < t.Min || i > t.Max {
		return nil, fmt.Errorf("%d is outside [%d, %d]", i, t.Min, t.Max)
	}
	return i, nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	_, err := t.Normalize(value)
	return err
}

// Normalize returns a fresh []any with every element normalized.
func (t *SliceType) Normalize(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected slice, got %T", value)
	}

	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem, err := Normalize(t.elemType, rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = elem
	}
	return out, nil
}

// MapType validates free-form mappings whose values share one type.
type MapType struct {
	elemType Type
	keyCheck func(string) error
}

func (t *MapType) Name() string {
	return fmt.Sprintf("{string: %s}", t.elemType.Name())
}

func (t *MapType) Validate(value any) error {
	_, err := t.Normalize(value)
	return err
}

// WithKeys returns a copy of the map type that also checks every key.
func (t *MapType) WithKeys(check func(key string) error) *MapType {
	return &MapType{elemType: t.elemType, keyCheck: check}
}

func (t *MapType) Normalize(value any) (any, error) {
	m, err := asStringMap(value)
	if err != nil {
		return nil, err
	}

	var errs []error
	out := make(map[string]any, len(m))
	for key, raw := range m {
		if t.keyCheck != nil {
			if err := t.keyCheck(key); err != nil {
				errs = append(errs, &ValidationError{Key: key, Reason: err.Error()})
				continue
			}
		}
		v, err := Normalize(t.elemType, raw)
		if err != nil {
			errs = append(errs, prefixed(key, raw, err)...)
			continue
		}
		out[key] = v
	}
	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return out, nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Float creates a float type validator.
func Float() Type { return &FloatType{} }

// Positive creates a validator for floats greater than zero.
func Positive() Type { return &PositiveType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Enum creates a validator accepting exactly the given strings.
func Enum(values ...string) Type { return &EnumType{values: values} }

// IntRange creates an integer validator bounded to [min, max].
func IntRange(min, max int) Type { return &IntRangeType{Min: min, Max: max} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Map creates a validator for string-keyed mappings of elemType values.
func Map(elemType Type) *MapType {
	return &MapType{elemType: elemType}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// IsScalar reports whether values of t are leaves (not mappings or lists).
// Custom types check a single value and count as leaves.
func IsScalar(t Type) bool {
	switch t.(type) {
	case *StringType, *IntType, *FloatType, *PositiveType, *BoolType, *EnumType, *IntRangeType, *CustomType:
		return true
	default:
		return false
	}
}

func asStringMap(value any) (map[string]any, error) {
	switch m := value.(type) {
	case map[string]any:
		return m, nil
	case map[any]any: // yaml.v2 style documents
		out := make(map[string]any, len(m))
		for k, v := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("expected string key, got %T", k)
			}
			out[ks] = v
		}
		return out, nil
	case nil:
		return map[string]any{}, nil
	default:
		return nil, fmt.Errorf("expected mapping, got %T", value)
	}
}
