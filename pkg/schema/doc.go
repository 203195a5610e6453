// Package schema provides a type-safe validation system for structured data.
//
// It defines a simple type system with built-in types (string, int, float,
// bool, enums, bounded ints), containers (slices, free-form maps) and closed
// nested objects with required and defaulted fields. Validation of a decoded
// YAML or JSON document yields a normalized copy with defaults applied and
// numbers coerced to their declared kind.
//
// Basic usage:
//
//	doc := schema.Object(
//	    schema.Required("atom_data", schema.String()),
//	    schema.Required("input_model", schema.Object(
//	        schema.Required("type", schema.Enum("marcs", "mesa")),
//	        schema.Optional("final_atomic_number", schema.IntRange(1, 118), 30),
//	    )),
//	)
//
//	normalized, err := schema.NormalizeDocument(doc, raw)
//	if err != nil {
//	    for _, key := range schema.Keys(err) {
//	        // "input_model.type", ...
//	    }
//	}
//
// Resolve walks a type along a dotted path, which lets callers check that a
// key such as "input_model.final_atomic_number" names a settable scalar
// before writing to it.
//
// The package has no dependencies beyond the Go standard library.
package schema
