package domain

// ModelFormat identifies the on-disk format of a stellar structure model.
// It is a closed set: adding a format means adding a constant here and a
// branch in every exhaustive switch over ModelFormat.
type ModelFormat int

const (
	// FormatMARCS is a MARCS plane-parallel/spherical atmosphere (.mod, .mod.gz).
	FormatMARCS ModelFormat = iota + 1
	// FormatMESA is a MESA stellar-evolution profile (profileN.data).
	FormatMESA
)

// String returns the configuration spelling of the format.
func (f ModelFormat) String() string {
	switch f {
	case FormatMARCS:
		return "marcs"
	case FormatMESA:
		return "mesa"
	default:
		return "unknown"
	}
}

// ModelFormats lists every supported format in declaration order.
func ModelFormats() []ModelFormat {
	return []ModelFormat{FormatMARCS, FormatMESA}
}

// ParseModelFormat resolves the `input_model.type` tag. Matching is
// case-sensitive; anything other than "marcs" or "mesa" fails with
// *UnsupportedModelTypeError.
func ParseModelFormat(s string) (ModelFormat, error) {
	switch s {
	case "marcs":
		return FormatMARCS, nil
	case "mesa":
		return FormatMESA, nil
	default:
		return 0, &UnsupportedModelTypeError{Type: s}
	}
}
