package schema

import (
	"sort"
	"strings"
)

// Field describes one key of an Object.
type Field struct {
	Name     string
	Type     Type
	Required bool
	// Default is used when an optional field is absent. Nested objects
	// without a default are filled from their own field defaults.
	Default any
}

// Required declares a field that must be present.
func Required(name string, t Type) Field {
	return Field{Name: name, Type: t, Required: true}
}

// Optional declares a field that falls back to def when absent.
func Optional(name string, t Type, def any) Field {
	return Field{Name: name, Type: t, Default: def}
}

// ObjectType validates a nested mapping with a closed set of keys.
type ObjectType struct {
	fields []Field
	index  map[string]int
}

// Object creates a nested mapping validator. Field order is kept for error
// reporting and documentation.
func Object(fields ...Field) *ObjectType {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	return &ObjectType{fields: fields, index: index}
}

func (t *ObjectType) Name() string {
	names := make([]string, len(t.fields))
	for i, f := range t.fields {
		names[i] = f.Name
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Field returns the field definition for name.
func (t *ObjectType) Field(name string) (Field, bool) {
	i, ok := t.index[name]
	if !ok {
		return Field{}, false
	}
	return t.fields[i], true
}

// Fields returns the declared fields in order.
func (t *ObjectType) Fields() []Field {
	return append([]Field(nil), t.fields...)
}

func (t *ObjectType) Validate(value any) error {
	_, err := t.Normalize(value)
	return err
}

// Normalize validates value and returns a new mapping with defaults applied.
// Errors carry dotted keys relative to this object.
func (t *ObjectType) Normalize(value any) (any, error) {
	m, err := asStringMap(value)
	if err != nil {
		return nil, err
	}

	var errs []error

	unknown := make([]string, 0)
	for key := range m {
		if _, ok := t.index[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		errs = append(errs, &ValidationError{Key: key, Reason: "unknown field", Value: m[key]})
	}

	out := make(map[string]any, len(t.fields))
	for _, f := range t.fields {
		raw, exists := m[f.Name]
		if !exists {
			if f.Required {
				errs = append(errs, &ValidationError{Key: f.Name, Reason: "required"})
				continue
			}
			raw = deepCopy(f.Default)
			if raw == nil {
				if _, nested := f.Type.(*ObjectType); !nested {
					continue
				}
			}
		}

		v, err := Normalize(f.Type, raw)
		if err != nil {
			errs = append(errs, prefixed(f.Name, raw, err)...)
			continue
		}
		out[f.Name] = v
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return out, nil
}

// prefixed rewrites err so that every validation failure is keyed under key.
func prefixed(key string, value any, err error) []error {
	switch e := err.(type) {
	case *AggregateError:
		out := make([]error, 0, len(e.Errors))
		for _, inner := range e.Errors {
			out = append(out, prefixed(key, value, inner)...)
		}
		return out
	case *ValidationError:
		return []error{&ValidationError{Key: key + "." + e.Key, Reason: e.Reason, Value: e.Value}}
	default:
		return []error{&ValidationError{Key: key, Reason: err.Error(), Value: value}}
	}
}

// deepCopy clones the mapping/slice structure of a decoded document.
func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, sub := range val {
			out[k] = deepCopy(sub)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, sub := range val {
			out[i] = deepCopy(sub)
		}
		return out
	default:
		return val
	}
}

// DeepCopy returns a structural copy of a document tree.
func DeepCopy(tree map[string]any) map[string]any {
	if tree == nil {
		return nil
	}
	return deepCopy(tree).(map[string]any)
}
