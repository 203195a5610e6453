package marcs

// asplund2009 holds the Asplund et al. (2009) present-day solar photospheric
// abundances, log10(N_el/N_H) + 12, for Z = 1..30. Index 0 is unused.
var asplund2009 = [...]float64{
	0,
	12.00, 10.93, 1.05, 1.38, 2.70, 8.43, 7.83, 8.69, 4.56, 7.93,
	6.24, 7.60, 6.45, 7.51, 5.41, 7.12, 5.50, 6.40, 5.03, 6.34,
	3.15, 4.95, 3.93, 5.64, 5.43, 7.50, 4.99, 6.22, 4.19, 4.56,
}

// Asplund2009 returns the tabulated photospheric abundance of z.
func Asplund2009(z int) (float64, bool) {
	if z < 1 || z >= len(asplund2009) {
		return 0, false
	}
	return asplund2009[z], true
}
