package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/photosphere/pkg/schema"
	"gopkg.in/yaml.v3"
)

// MergeOverrides returns a new Configuration with the dotted-path overrides
// applied and the whole document re-validated. An empty set returns c.
//
// Every key must name a scalar field, including entries of
// input_model.nuclide_rescaling_dict. A Configuration accepts one merge;
// merging again fails with ErrAlreadyMerged.
func (c *Configuration) MergeOverrides(overrides map[string]any) (*Configuration, error) {
	if len(overrides) == 0 {
		return c, nil
	}
	if c.merged {
		return nil, &OverrideError{Err: ErrAlreadyMerged}
	}

	tree := schema.DeepCopy(c.tree)
	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		value := overrides[key]

		t, err := schema.Resolve(Schema, key)
		if err != nil {
			return nil, &OverrideError{Key: key, Err: err}
		}
		if !schema.IsScalar(t) {
			return nil, &OverrideError{Key: key, Err: fmt.Errorf("%w: %s", ErrNotScalar, t.Name())}
		}
		if err := schema.Validate(t, value); err != nil {
			return nil, &OverrideError{Key: key, Err: err}
		}
		setPath(tree, splitKey(key), value)
	}

	next, err := FromMap(tree, c.baseDir)
	if err != nil {
		if ve, ok := err.(*ValidationError); ok {
			ve.Path = c.path
		}
		return nil, err
	}
	next.path = c.path
	next.merged = true
	return next, nil
}

// ParseOverride splits "dotted.key=value" and decodes value as a YAML
// scalar, so "30" is an int, "0.28" a float and "true" a bool.
func ParseOverride(s string) (string, any, error) {
	key, raw, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, &OverrideError{Key: key, Err: fmt.Errorf("expected key=value, got %q", s)}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return key, "", nil
	}

	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return "", nil, &OverrideError{Key: key, Err: fmt.Errorf("decode value: %w", err)}
	}
	return key, value, nil
}

// ParseOverrides parses a list of key=value pairs. Later pairs win.
func ParseOverrides(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, err := ParseOverride(pair)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

func splitKey(key string) []string {
	return strings.Split(key, ".")
}

func setPath(tree map[string]any, segments []string, value any) {
	current := tree
	for _, seg := range segments[:len(segments)-1] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[seg] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}
