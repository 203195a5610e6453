package loam

// ElementMetadata is the front matter of one element document.
// It uses "mapstructure" tags to match the atom data file keys.
type ElementMetadata struct {
	AtomicNumber int     `json:"atomic_number" mapstructure:"atomic_number"`
	Symbol       string  `json:"symbol" mapstructure:"symbol"`
	Name         string  `json:"name" mapstructure:"name"`
	Mass         float64 `json:"mass" mapstructure:"mass"`

	// IonizationEnergies in eV, lowest stage first.
	IonizationEnergies []float64 `json:"ionization_energies" mapstructure:"ionization_energies"`
}
