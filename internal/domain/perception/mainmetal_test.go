package perception

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

// ionCenter builds one central atom with the given charge and count of
// singly bonded chloride ligands.
func ionCenter(t *testing.T, symbol string, charge, ligands int) (*molecule.Molecule, *molecule.Atom) {
	t.Helper()
	mol := molecule.New()
	center := addBareAtom(t, mol, symbol)
	if charge != 0 {
		center.SetCharge(charge)
	}
	for i := 0; i < ligands; i++ {
		cl := addBareAtom(t, mol, "Cl")
		addBond(t, mol, center, cl, chem.OrderSingle)
	}
	return mol, center
}

// The main-group metals key on formal charge and coordination number.
func TestClassify_MainGroupMetals(t *testing.T) {
	cases := []struct {
		name    string
		symbol  string
		charge  int
		ligands int
		want    string
	}{
		{"covalent lithium", "Li", 0, 1, "Li"},
		{"lithium atom", "Li", 0, 0, "Li.neutral"},
		{"lithium cation", "Li", 1, 0, "Li.plus"},
		{"sodium cation", "Na", 1, 0, "Na.plus"},
		{"covalent sodium", "Na", 0, 1, "Na"},
		{"sodium atom", "Na", 0, 0, "Na.neutral"},
		{"potassium cation", "K", 1, 0, "K.plus"},
		{"covalent potassium", "K", 0, 1, "K.neutral"},
		{"potassium atom", "K", 0, 0, "K.metallic"},
		{"rubidium cation", "Rb", 1, 0, "Rb.plus"},
		{"rubidium atom", "Rb", 0, 0, "Rb.neutral"},
		{"tetrahalide beryllate", "Be", -2, 4, "Be.2minus"},
		{"beryllium atom", "Be", 0, 0, "Be.neutral"},
		{"magnesium dication", "Mg", 2, 0, "Mg.2plus"},
		{"dicoordinate magnesium", "Mg", 0, 2, "Mg.neutral.2"},
		{"monocoordinate magnesium", "Mg", 0, 1, "Mg.neutral.1"},
		{"tetracoordinate magnesium", "Mg", 0, 4, "Mg.neutral"},
		{"calcium dication", "Ca", 2, 0, "Ca.2plus"},
		{"calcium dihalide", "Ca", 0, 2, "Ca.2"},
		{"calcium monohalide", "Ca", 0, 1, "Ca.1"},
		{"strontium dication", "Sr", 2, 0, "Sr.2plus"},
		{"barium dication", "Ba", 2, 0, "Ba.2plus"},
		{"radium atom", "Ra", 0, 0, "Ra.neutral"},
		{"aluminium trihalide", "Al", 0, 3, "Al"},
		{"aluminium cation", "Al", 3, 0, "Al.3plus"},
		{"hexafluoroaluminate", "Al", -3, 6, "Al.3minus"},
		{"gallium trihalide", "Ga", 0, 3, "Ga"},
		{"gallium cation", "Ga", 3, 0, "Ga.3plus"},
		{"indium trihalide", "In", 0, 3, "In.3"},
		{"indium cation", "In", 3, 0, "In.3plus"},
		{"monovalent indium", "In", 0, 1, "In.1"},
		{"indium atom", "In", 0, 0, "In"},
		{"thallium cation", "Tl", 1, 0, "Tl.plus"},
		{"thallium atom", "Tl", 0, 0, "Tl"},
		{"monovalent thallium", "Tl", 0, 1, "Tl.1"},
		{"lead atom", "Pb", 0, 0, "Pb.neutral"},
		{"lead dication", "Pb", 2, 0, "Pb.2plus"},
		{"monovalent lead", "Pb", 0, 1, "Pb.1"},
		{"thorium atom", "Th", 0, 0, "Th"},
		{"plutonium atom", "Pu", 0, 0, "Pu"},
		{"gadolinium cation", "Gd", 3, 0, "Gd.3plus"},
	}
	m := permissiveMatcher(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mol, center := ionCenter(t, tc.symbol, tc.charge, tc.ligands)
			assert.Equal(t, tc.want, classifyName(t, m, mol, center))
		})
	}
}

func TestClassify_Methyllithium(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 3)
	li := addBareAtom(t, mol, "Li")
	addBond(t, mol, c, li, chem.OrderSingle)

	assert.Equal(t, []string{"C.sp3", "Li"}, classifyAllNames(t, m, mol))
}

func TestClassify_GrignardReagent(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	c := addAtom(t, mol, "C", 3)
	mg := addBareAtom(t, mol, "Mg")
	br := addBareAtom(t, mol, "Br")
	addBond(t, mol, c, mg, chem.OrderSingle)
	addBond(t, mol, mg, br, chem.OrderSingle)

	assert.Equal(t, []string{"C.sp3", "Mg.neutral.2", "Br"}, classifyAllNames(t, m, mol))
}

func TestClassify_SodiumRadicalUnresolved(t *testing.T) {
	m := permissiveMatcher(t)
	mol := molecule.New()
	na := addBareAtom(t, mol, "Na")
	na.SingleElectrons = 1

	assert.Equal(t, "X", classifyName(t, m, mol, na))
}
