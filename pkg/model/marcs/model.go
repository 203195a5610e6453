// Package marcs reads MARCS plane-parallel model atmospheres (.mod files,
// optionally gzip-compressed) and converts them to domain.StellarModel.
package marcs

import "github.com/aretw0/photosphere/pkg/domain"

// NumAbundances is the number of logarithmic abundances a MARCS file lists,
// one per element from H to U.
const NumAbundances = 92

// AbsentAbundance is the log-epsilon threshold at or below which an element
// is treated as absent. Files write -99.00 for missing elements.
const AbsentAbundance = -20.0

// Header holds the scalar parameters preceding the abundance block.
type Header struct {
	Name                 string
	EffectiveTemperature float64 // K
	Flux                 float64 // erg/cm^2/s
	SurfaceGravity       float64 // cm/s^2
	Microturbulence      float64 // km/s
	Mass                 float64 // M_sun
	Metallicity          float64 // [Fe/H]
	AlphaEnhancement     float64 // [alpha/Fe]
	Radius               float64 // cm
	Luminosity           float64 // L_sun
	Convection           []float64
	X, Y, Z              float64
}

// Layer is one depth point, joined from both structure tables.
type Layer struct {
	K         int
	LgTauR    float64
	LgTau5    float64
	Depth     float64 // cm
	T         float64 // K
	Pe        float64 // dyn/cm^2
	Pg        float64 // dyn/cm^2
	Prad      float64
	Pturb     float64
	KappaRoss float64
	Density   float64 // g/cm^3
	Mu        float64
	Vconv     float64
	FconvF    float64
	RHOX      float64
}

// Model is a parsed MARCS file.
type Model struct {
	Path    string
	Gzipped bool
	Header  Header
	// Abundances are log10(N_el/N_H) + 12; index i is atomic number i+1.
	Abundances [NumAbundances]float64
	Layers     []Layer
}

// Format reports domain.FormatMARCS.
func (m *Model) Format() domain.ModelFormat { return domain.FormatMARCS }

// ShellCount returns the number of depth points.
func (m *Model) ShellCount() int {
	return len(m.Layers)
}

// Abundance returns the log-epsilon abundance of atomic number z.
func (m *Model) Abundance(z int) (float64, bool) {
	if z < 1 || z > NumAbundances {
		return 0, false
	}
	return m.Abundances[z-1], true
}
