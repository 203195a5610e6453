package model

import (
	"strconv"

	"github.com/aretw0/photosphere/pkg/model/marcs"
	"github.com/aretw0/photosphere/pkg/model/mesa"
)

// Field is one named header scalar.
type Field struct {
	Name  string
	Value string
}

// Description summarizes a raw model for display.
type Description struct {
	Format  string
	Path    string
	Name    string
	Shells  int
	Header  []Field
	Columns []string // MESA only
}

// Describe extracts the header of a raw model in file order.
func Describe(raw Raw) Description {
	d := Description{Format: raw.Format().String(), Shells: raw.ShellCount()}

	switch m := raw.(type) {
	case *marcs.Model:
		d.Path = m.Path
		d.Name = m.Header.Name
		h := m.Header
		d.Header = []Field{
			{"Teff [K]", formatFloat(h.EffectiveTemperature)},
			{"Flux [erg/cm2/s]", formatFloat(h.Flux)},
			{"Surface gravity [cm/s2]", formatFloat(h.SurfaceGravity)},
			{"Microturbulence [km/s]", formatFloat(h.Microturbulence)},
			{"Mass [Msun]", formatFloat(h.Mass)},
			{"[Fe/H]", formatFloat(h.Metallicity)},
			{"[alpha/Fe]", formatFloat(h.AlphaEnhancement)},
			{"X", formatFloat(h.X)},
			{"Y", formatFloat(h.Y)},
			{"Z", formatFloat(h.Z)},
			{"gzipped", strconv.FormatBool(m.Gzipped)},
		}
	case *mesa.Model:
		d.Path = m.Path
		if v, ok := m.Header("model_number"); ok {
			d.Name = "model " + v
		}
		for i, name := range m.HeaderNames {
			d.Header = append(d.Header, Field{name, m.HeaderValues[i]})
		}
		d.Columns = m.Columns()
	}
	return d
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
