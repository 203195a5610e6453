package testutils

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// solarLogEps holds photospheric log-epsilon abundances used by fixtures.
var solarLogEps = map[int]float64{
	1: 12.00, 2: 10.93, 3: 1.05, 4: 1.38, 5: 2.70, 6: 8.39, 7: 7.78, 8: 8.66, 9: 4.56, 10: 7.84,
	11: 6.17, 12: 7.53, 13: 6.37, 14: 7.51, 15: 5.36, 16: 7.14, 17: 5.50, 18: 6.18, 19: 5.08, 20: 6.31,
	21: 3.17, 22: 4.90, 23: 4.00, 24: 5.64, 25: 5.39, 26: 7.45, 27: 4.92, 28: 6.23, 29: 4.21, 30: 4.60,
	38: 2.92, 56: 2.17, 82: 2.00,
}

// MARCSFixture describes a synthetic MARCS model.
type MARCSFixture struct {
	Name            string
	Depths          int
	Teff            float64
	Gravity         float64 // cm/s^2
	Microturbulence float64 // km/s
	// Abundances override the solar defaults; -99 removes an element.
	Abundances map[int]float64
}

func (f MARCSFixture) withDefaults() MARCSFixture {
	if f.Name == "" {
		f.Name = "s5000_g+2.5_m1.0_t02_st_z+0.00_a+0.00"
	}
	if f.Depths == 0 {
		f.Depths = 10
	}
	if f.Teff == 0 {
		f.Teff = 5000
	}
	if f.Gravity == 0 {
		f.Gravity = 3.1623e2
	}
	if f.Microturbulence == 0 {
		f.Microturbulence = 2.0
	}
	return f
}

// MARCSLayerT is the temperature written for depth index k (1-based).
func MARCSLayerT(k int) float64 { return 3900 + 50*float64(k) }

// MARCSLayerDensity is the density written for depth index k (1-based).
func MARCSLayerDensity(k int) float64 { return float64(k) * 1e-9 }

// MARCS renders a MARCS .mod document.
func MARCS(f MARCSFixture) string {
	f = f.withDefaults()

	var b strings.Builder
	fmt.Fprintln(&b, f.Name)
	fmt.Fprintf(&b, "  %.0f.      Teff [K].         Last iteration; yyyymmdd=20080301\n", f.Teff)
	fmt.Fprintln(&b, "  3.5467E+10 Flux [erg/cm2/s]")
	fmt.Fprintf(&b, "  %.4E Surface gravity [cm/s2]\n", f.Gravity)
	fmt.Fprintf(&b, "  %.1f        Microturbulence parameter [km/s]\n", f.Microturbulence)
	fmt.Fprintln(&b, "  1.0        Mass [Msun]")
	fmt.Fprintln(&b, " +0.00 +0.00 Metallicity [Fe/H] and [alpha/Fe]")
	fmt.Fprintln(&b, "  3.6588E+12 Radius [cm] at Tau(Rosseland)=1.0")
	fmt.Fprintln(&b, "  2.0268E+01 Luminosity [Lsun]")
	fmt.Fprintln(&b, "  1.50 8.00 0.076 0.00 are the convection parameters: alpha, nu, y and beta")
	fmt.Fprintln(&b, "  0.73826 0.24954 1.22E-02 are X, Y and Z, 12C/13C=20")
	fmt.Fprintln(&b, "Logarithmic chemical number abundances, H always 12.00")
	for z := 1; z <= 92; z++ {
		v, ok := f.Abundances[z]
		if !ok {
			v, ok = solarLogEps[z]
		}
		if !ok {
			v = -99
		}
		fmt.Fprintf(&b, " %7.2f", v)
		if z%10 == 0 || z == 92 {
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "  %d Number of depth points\n", f.Depths)
	fmt.Fprintln(&b, "Model structure")
	fmt.Fprintln(&b, " k lgTauR  lgTau5    Depth     T        Pe          Pg         Prad       Pturb")
	for k := 1; k <= f.Depths; k++ {
		lg := -5 + 0.2*float64(k-1)
		fmt.Fprintf(&b, "%3d %5.2f %7.4f %11.4E %7.1f %11.4E %11.4E %11.4E %11.4E\n",
			k, lg, lg-0.05, -1e8*float64(f.Depths-k), MARCSLayerT(k), 1e-2*float64(k), 1e2*float64(k), 2.4437, 0.0)
	}
	fmt.Fprintln(&b, " k lgTauR    KappaRoss   Density   Mu      Vconv   Fconv/F      RHOX")
	for k := 1; k <= f.Depths; k++ {
		lg := -5 + 0.2*float64(k-1)
		fmt.Fprintf(&b, "%3d %5.2f %11.4E %11.4E %5.3f %9.3E %7.5f %11.4E\n",
			k, lg, 1e-4*float64(k), MARCSLayerDensity(k), 1.287, 0.0, 0.0, 1e-2*float64(k))
	}
	fmt.Fprintln(&b, "Assorted logarithmic partial pressures")
	return b.String()
}

// WriteMARCS writes a MARCS fixture to dir/name, gzip-compressed if asked.
func WriteMARCS(t *testing.T, dir, name string, f MARCSFixture, gzipped bool) string {
	t.Helper()
	content := []byte(MARCS(f))
	if gzipped {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write(content)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		content = buf.Bytes()
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// MESAFixture describes a synthetic MESA profile.
type MESAFixture struct {
	Shells int
	// Nuclides are abundance column names. Defaults to a solar-like set.
	Nuclides []string
	// Radius writes a radius column (R_sun) instead of logR.
	Radius bool
}

var defaultMESANuclides = []string{"h1", "he3", "he4", "c12", "n14", "o16", "ne20", "mg24", "si28", "s32", "fe56", "ni56"}

// MESALogT is the logT written for zone k (1-based).
func MESALogT(k int) float64 { return 3.70 + 0.02*float64(k) }

// MESAFraction is the mass fraction written for nuclide column name.
func MESAFraction(name string, nuclides []string) float64 {
	switch name {
	case "h1":
		return 0.70
	case "he4":
		return 0.28
	}
	metals := 0
	for _, n := range nuclides {
		if n != "h1" && n != "he4" {
			metals++
		}
	}
	return 0.02 / float64(metals)
}

// MESA renders a MESA profile document.
func MESA(f MESAFixture) string {
	if f.Shells == 0 {
		f.Shells = 50
	}
	if f.Nuclides == nil {
		f.Nuclides = defaultMESANuclides
	}

	geometry := "logR"
	if f.Radius {
		geometry = "radius"
	}
	columns := append([]string{"zone", "logT", "logRho", "logP", geometry, "velocity", "conv_vel"}, f.Nuclides...)

	var b strings.Builder
	headerNames := []string{"model_number", "num_zones", "star_age", "Teff"}
	headerValues := []string{"1000", fmt.Sprint(f.Shells), "4.6D+09", "5.7720D+03"}
	writeNumbers(&b, len(headerNames))
	writeRow(&b, headerNames)
	writeRow(&b, headerValues)
	b.WriteString("\n")
	writeNumbers(&b, len(columns))
	writeRow(&b, columns)

	for k := 1; k <= f.Shells; k++ {
		row := []string{
			fmt.Sprint(k),
			fmt.Sprintf("%.6f", MESALogT(k)),
			fmt.Sprintf("%.6f", -9+0.05*float64(k)),
			fmt.Sprintf("%.6f", 4+0.1*float64(k)),
		}
		if f.Radius {
			row = append(row, fmt.Sprintf("%.6f", 1-0.001*float64(k)))
		} else {
			row = append(row, fmt.Sprintf("%.6f", math.Log10(1-0.001*float64(k))))
		}
		row = append(row, "0.0", "1.0E+04")
		for _, n := range f.Nuclides {
			row = append(row, fmt.Sprintf("%.10E", MESAFraction(n, f.Nuclides)))
		}
		writeRow(&b, row)
	}
	return b.String()
}

// WriteMESA writes a MESA fixture to dir/name.
func WriteMESA(t *testing.T, dir, name string, f MESAFixture) string {
	t.Helper()
	return WriteFile(t, dir, name, MESA(f))
}

func writeNumbers(b *strings.Builder, n int) {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprint(i + 1)
	}
	writeRow(b, cols)
}

func writeRow(b *strings.Builder, fields []string) {
	for _, f := range fields {
		fmt.Fprintf(b, " %26s", f)
	}
	b.WriteString("\n")
}
