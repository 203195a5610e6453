package domain

import "strings"

// MaxAtomicNumber is the highest atomic number known to the periodic table here.
const MaxAtomicNumber = 118

var symbols = [...]string{
	"",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var bySymbol = func() map[string]int {
	m := make(map[string]int, MaxAtomicNumber)
	for z := 1; z <= MaxAtomicNumber; z++ {
		m[strings.ToLower(symbols[z])] = z
	}
	return m
}()

// Symbol returns the chemical symbol for atomic number z, or "" when z is
// out of range.
func Symbol(z int) string {
	if z < 1 || z > MaxAtomicNumber {
		return ""
	}
	return symbols[z]
}

// AtomicNumber looks up a chemical symbol, ignoring case.
func AtomicNumber(symbol string) (int, bool) {
	z, ok := bySymbol[strings.ToLower(symbol)]
	return z, ok
}
