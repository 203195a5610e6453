package schema

import (
	"fmt"
	"strings"
)

// Validate checks if data conforms to t.
// Returns an error with all validation failures found.
func Validate(t Type, data any) error {
	_, err := Normalize(t, data)
	return err
}

// Normalize validates data against t and returns the normalized value:
// defaults applied, numbers coerced to the declared kind, containers copied.
func Normalize(t Type, data any) (any, error) {
	if t == nil {
		// No schema = no validation
		return data, nil
	}
	if n, ok := t.(Normalizer); ok {
		return n.Normalize(data)
	}
	if err := t.Validate(data); err != nil {
		return nil, err
	}
	return data, nil
}

// NormalizeDocument is Normalize for a root object, returning the mapping.
func NormalizeDocument(t *ObjectType, doc map[string]any) (map[string]any, error) {
	out, err := t.Normalize(doc)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

// Resolve walks t along a dotted path and returns the type found there.
// Map types accept any key segment.
func Resolve(t Type, path string) (Type, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}

	current := t
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("empty segment in %q", path)
		}
		switch typed := current.(type) {
		case *ObjectType:
			f, ok := typed.Field(seg)
			if !ok {
				return nil, fmt.Errorf("%q is not defined in schema", strings.Join(segments[:i+1], "."))
			}
			current = f.Type
		case *MapType:
			if typed.keyCheck != nil {
				if err := typed.keyCheck(seg); err != nil {
					return nil, fmt.Errorf("%q: %w", strings.Join(segments[:i+1], "."), err)
				}
			}
			current = typed.elemType
		default:
			return nil, fmt.Errorf("%q is a %s, not a mapping", strings.Join(segments[:i], "."), current.Name())
		}
	}
	return current, nil
}
