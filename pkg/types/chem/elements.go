package chem

// Atomic numbers for every element the type dictionary covers, plus the
// lighter main-group elements that routinely appear in input structures.
const (
	Hydrogen   = 1
	Helium     = 2
	Lithium    = 3
	Beryllium  = 4
	Boron      = 5
	Carbon     = 6
	Nitrogen   = 7
	Oxygen     = 8
	Fluorine   = 9
	Neon       = 10
	Sodium     = 11
	Magnesium  = 12
	Aluminium  = 13
	Silicon    = 14
	Phosphorus = 15
	Sulfur     = 16
	Chlorine   = 17
	Argon      = 18
	Potassium  = 19
	Calcium    = 20
	Scandium   = 21
	Titanium   = 22
	Vanadium   = 23
	Chromium   = 24
	Manganese  = 25
	Iron       = 26
	Cobalt     = 27
	Nickel     = 28
	Copper     = 29
	Zinc       = 30
	Gallium    = 31
	Germanium  = 32
	Arsenic    = 33
	Selenium   = 34
	Bromine    = 35
	Krypton    = 36
	Rubidium   = 37
	Strontium  = 38
	Molybdenum = 42
	Ruthenium  = 44
	Silver     = 47
	Cadmium    = 48
	Indium     = 49
	Tin        = 50
	Antimony   = 51
	Tellurium  = 52
	Iodine     = 53
	Xenon      = 54
	Barium     = 56
	Gadolinium = 64
	Tungsten   = 74
	Platinum   = 78
	Gold       = 79
	Mercury    = 80
	Thallium   = 81
	Lead       = 82
	Polonium   = 84
	Radon      = 86
	Radium     = 88
	Thorium    = 90
	Plutonium  = 94
)

var symbolByNumber = map[int]string{
	1: "H", 2: "He", 3: "Li", 4: "Be", 5: "B", 6: "C", 7: "N", 8: "O",
	9: "F", 10: "Ne", 11: "Na", 12: "Mg", 13: "Al", 14: "Si", 15: "P",
	16: "S", 17: "Cl", 18: "Ar", 19: "K", 20: "Ca", 21: "Sc", 22: "Ti",
	23: "V", 24: "Cr", 25: "Mn", 26: "Fe", 27: "Co", 28: "Ni", 29: "Cu",
	30: "Zn", 31: "Ga", 32: "Ge", 33: "As", 34: "Se", 35: "Br", 36: "Kr",
	37: "Rb", 38: "Sr", 39: "Y", 40: "Zr", 41: "Nb", 42: "Mo", 43: "Tc",
	44: "Ru", 45: "Rh", 46: "Pd", 47: "Ag", 48: "Cd", 49: "In", 50: "Sn",
	51: "Sb", 52: "Te", 53: "I", 54: "Xe", 55: "Cs", 56: "Ba", 57: "La",
	58: "Ce", 59: "Pr", 60: "Nd", 62: "Sm", 63: "Eu", 64: "Gd", 65: "Tb",
	66: "Dy", 67: "Ho", 68: "Er", 69: "Tm", 70: "Yb", 71: "Lu", 72: "Hf",
	73: "Ta", 74: "W", 75: "Re", 76: "Os", 77: "Ir", 78: "Pt", 79: "Au",
	80: "Hg", 81: "Tl", 82: "Pb", 83: "Bi", 84: "Po", 85: "At", 86: "Rn",
	87: "Fr", 88: "Ra", 89: "Ac", 90: "Th", 91: "Pa", 92: "U", 93: "Np",
	94: "Pu",
}

var numberBySymbol = func() map[string]int {
	m := make(map[string]int, len(symbolByNumber))
	for n, s := range symbolByNumber {
		m[s] = n
	}
	return m
}()

// Standard atomic weights (IUPAC 2021 abridged to two decimals; the most
// stable isotope's mass for elements without a standard weight).
var massByNumber = map[int]float64{
	1: 1.008, 2: 4.00, 3: 6.94, 4: 9.01, 5: 10.81, 6: 12.01, 7: 14.01,
	8: 16.00, 9: 19.00, 10: 20.18, 11: 22.99, 12: 24.31, 13: 26.98,
	14: 28.09, 15: 30.97, 16: 32.06, 17: 35.45, 18: 39.95, 19: 39.10,
	20: 40.08, 21: 44.96, 22: 47.87, 23: 50.94, 24: 52.00, 25: 54.94,
	26: 55.85, 27: 58.93, 28: 58.69, 29: 63.55, 30: 65.38, 31: 69.72,
	32: 72.63, 33: 74.92, 34: 78.97, 35: 79.90, 36: 83.80, 37: 85.47,
	38: 87.62, 39: 88.91, 40: 91.22, 41: 92.91, 42: 95.95, 43: 97.0,
	44: 101.07, 45: 102.91, 46: 106.42, 47: 107.87, 48: 112.41,
	49: 114.82, 50: 118.71, 51: 121.76, 52: 127.60, 53: 126.90,
	54: 131.29, 55: 132.91, 56: 137.33, 57: 138.91, 58: 140.12,
	59: 140.91, 60: 144.24, 62: 150.36, 63: 151.96, 64: 157.25,
	65: 158.93, 66: 162.50, 67: 164.93, 68: 167.26, 69: 168.93,
	70: 173.05, 71: 174.97, 72: 178.49, 73: 180.95, 74: 183.84,
	75: 186.21, 76: 190.23, 77: 192.22, 78: 195.08, 79: 196.97,
	80: 200.59, 81: 204.38, 82: 207.2, 83: 208.98, 84: 209.0,
	85: 210.0, 86: 222.0, 87: 223.0, 88: 226.0, 89: 227.0, 90: 232.04,
	91: 231.04, 92: 238.03, 93: 237.0, 94: 244.0,
}

// Symbol returns the element symbol for an atomic number, or the empty
// string when the number is outside the supported table.
func Symbol(atomicNumber int) string {
	return symbolByNumber[atomicNumber]
}

// AtomicNumber returns the atomic number for an element symbol, or 0 when
// the symbol is not recognized.
func AtomicNumber(symbol string) int {
	return numberBySymbol[symbol]
}

// KnownSymbol reports whether the symbol names an element in the table.
func KnownSymbol(symbol string) bool {
	_, ok := numberBySymbol[symbol]
	return ok
}

// AtomicMass returns the standard atomic weight for an atomic number, or 0
// when the number is outside the supported table.
func AtomicMass(atomicNumber int) float64 {
	return massByNumber[atomicNumber]
}
