package schema

import (
	"errors"
	"testing"
)

func TestScalarTypes(t *testing.T) {
	tests := []struct {
		typ     Type
		value   any
		wantErr bool
	}{
		{String(), "hello", false},
		{String(), "", false},
		{String(), 42, true},
		{String(), nil, true},

		{Int(), 42, false},
		{Int(), int64(42), false},
		{Int(), float64(42), false},  // whole number
		{Int(), float64(42.5), true}, // not whole
		{Int(), "42", true},
		{Int(), true, true},

		{Float(), 3.14, false},
		{Float(), float32(3.14), false},
		{Float(), 42, false},
		{Float(), "3.14", true},
		{Float(), nil, true},

		{Bool(), true, false},
		{Bool(), false, false},
		{Bool(), 1, true},
		{Bool(), "true", true},
	}

	for _, tt := range tests {
		err := tt.typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s.Validate(%v) error = %v, wantErr %v", tt.typ.Name(), tt.value, err, tt.wantErr)
		}
	}
}

func TestFloatType_NormalizeCoercesInts(t *testing.T) {
	got, err := Normalize(Float(), 3)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if f, ok := got.(float64); !ok || f != 3.0 {
		t.Errorf("Normalize(3) = %#v, want float64(3)", got)
	}
}

func TestIntType_NormalizeWholeFloat(t *testing.T) {
	got, err := Normalize(Int(), float64(30))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if i, ok := got.(int); !ok || i != 30 {
		t.Errorf("Normalize(30.0) = %#v, want int(30)", got)
	}
}

func TestEnumType(t *testing.T) {
	typ := Enum("marcs", "mesa")

	if typ.Name() != "enum(marcs|mesa)" {
		t.Errorf("Name() = %q", typ.Name())
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{"marcs", false},
		{"mesa", false},
		{"MARCS", true}, // case-sensitive
		{"foo", true},
		{1, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestIntRangeType(t *testing.T) {
	typ := IntRange(1, 118)

	tests := []struct {
		value   any
		wantErr bool
	}{
		{1, false},
		{118, false},
		{0, true},
		{119, true},
		{float64(30), false},
		{"30", true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestSliceType(t *testing.T) {
	stringSlice := Slice(String())
	intSlice := Slice(Int())
	stringStringSlice := Slice(Slice(String()))

	tests := []struct {
		typ     Type
		value   any
		wantErr bool
		desc    string
	}{
		// String slices
		{stringSlice, []string{"a", "b"}, false, "string slice"},
		{stringSlice, []string{}, false, "empty string slice"},
		{stringSlice, []interface{}{"a", "b"}, false, "any slice with strings"},
		{stringSlice, []int{1, 2}, true, "slice of ints when expecting strings"},
		{stringSlice, "not a slice", true, "string instead of slice"},
		// Int slices
		{intSlice, []int{1, 2, 3}, false, "int slice"},
		{intSlice, []interface{}{1, "2", 3}, true, "mixed slice"},
		// Nested slices
		{stringStringSlice, [][]string{{"a"}, {"b", "c"}}, false, "nested string slice"},
	}

	for _, tt := range tests {
		err := tt.typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate(%v) error = %v, wantErr %v", tt.desc, tt.value, err, tt.wantErr)
		}
	}
}

func TestMapType(t *testing.T) {
	noDigits := func(key string) error {
		for _, r := range key {
			if r >= '0' && r <= '9' {
				return errors.New("digits not allowed")
			}
		}
		return nil
	}
	typ := Map(Float()).WithKeys(noDigits)

	got, err := Normalize(typ, map[string]any{"a": 1, "b": 2.5})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	m := got.(map[string]any)
	if m["a"] != 1.0 || m["b"] != 2.5 {
		t.Errorf("Normalize() = %v", m)
	}

	if err := typ.Validate(map[string]any{"a1": 1.0}); err == nil {
		t.Error("Validate() should reject key with digits")
	}
	if err := typ.Validate(map[string]any{"a": "x"}); err == nil {
		t.Error("Validate() should reject non-float value")
	}
	if err := typ.Validate(nil); err != nil {
		t.Errorf("Validate(nil) = %v, want empty mapping accepted", err)
	}
}

func TestCustomType(t *testing.T) {
	evenNumber := Custom("even", func(v any) error {
		i, ok := v.(int)
		if !ok {
			return errors.New("not an int")
		}
		if i%2 != 0 {
			return errors.New("not even")
		}
		return nil
	})

	if evenNumber.Name() != "even" {
		t.Errorf("Name() = %q, want %q", evenNumber.Name(), "even")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{2, false},
		{1, true},
		{"2", true},
	}

	for _, tt := range tests {
		err := evenNumber.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestIsScalar(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{String(), true},
		{Int(), true},
		{Float(), true},
		{Bool(), true},
		{Enum("a"), true},
		{IntRange(0, 1), true},
		{Positive(), true},
		{Custom("any", func(any) error { return nil }), true},
		{Slice(Int()), false},
		{Map(Float()), false},
		{Object(), false},
	}

	for _, tt := range tests {
		if got := IsScalar(tt.typ); got != tt.want {
			t.Errorf("IsScalar(%s) = %v, want %v", tt.typ.Name(), got, tt.want)
		}
	}
}

func TestPositiveType(t *testing.T) {
	typ := Positive()

	got, err := typ.(Normalizer).Normalize(2)
	if err != nil {
		t.Fatalf("Normalize(2) error = %v", err)
	}
	if got != 2.0 {
		t.Errorf("Normalize(2) = %#v, want float64 2", got)
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{1.0, false},
		{0.5, false},
		{0, true},
		{-1.5, true},
		{"1", true},
	}
	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}
