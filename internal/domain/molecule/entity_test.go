package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/chem"
)

func TestNewAtom_KnownSymbol(t *testing.T) {
	a, err := NewAtom("C")
	require.NoError(t, err)
	assert.Equal(t, chem.Carbon, a.AtomicNumber)
	assert.Equal(t, "C", a.Symbol())
	assert.False(t, a.PseudoAtom)
}

func TestNewAtom_UnknownSymbol(t *testing.T) {
	_, err := NewAtom("Qq")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownElement))
}

func TestNewPseudoAtom(t *testing.T) {
	a := NewPseudoAtom("R1")
	assert.True(t, a.PseudoAtom)
	assert.Equal(t, 0, a.AtomicNumber)
	assert.Equal(t, "R1", a.Symbol())
}

func TestAtom_Symbol_UnknownElementFallsBackToStar(t *testing.T) {
	a := &Atom{}
	assert.Equal(t, "*", a.Symbol())
}

func TestAtom_Charge_UnsetIsZero(t *testing.T) {
	a := &Atom{}
	assert.Equal(t, 0, a.Charge())
	a.SetCharge(-1)
	assert.Equal(t, -1, a.Charge())
	require.NotNil(t, a.FormalCharge)
}

func TestAtom_HydrogenCount_UnsetIsZero(t *testing.T) {
	a := &Atom{}
	assert.Equal(t, 0, a.HydrogenCount())
	assert.Nil(t, a.ImplicitHydrogens)
	a.SetImplicitHydrogens(3)
	assert.Equal(t, 3, a.HydrogenCount())
}

func TestBond_ContainsAndOther(t *testing.T) {
	a := &Atom{AtomicNumber: chem.Carbon}
	b := &Atom{AtomicNumber: chem.Oxygen}
	c := &Atom{AtomicNumber: chem.Nitrogen}
	bond := &Bond{Begin: a, End: b, Order: chem.OrderDouble}

	assert.True(t, bond.Contains(a))
	assert.True(t, bond.Contains(b))
	assert.False(t, bond.Contains(c))
	assert.Same(t, b, bond.Other(a))
	assert.Same(t, a, bond.Other(b))
	assert.Nil(t, bond.Other(c))
}

func TestMolecule_AddAtom_Idempotent(t *testing.T) {
	mol := New()
	a := &Atom{AtomicNumber: chem.Carbon}
	mol.AddAtom(a)
	mol.AddAtom(a)
	assert.Equal(t, 1, mol.AtomCount())
	assert.True(t, mol.Contains(a))
}

func TestMolecule_NewAtom(t *testing.T) {
	mol := New()
	a, err := mol.NewAtom("N")
	require.NoError(t, err)
	assert.True(t, mol.Contains(a))

	_, err = mol.NewAtom("nope")
	assert.Error(t, err)
	assert.Equal(t, 1, mol.AtomCount())
}

func TestMolecule_AddBond_Validation(t *testing.T) {
	mol := New()
	a, _ := mol.NewAtom("C")
	outside := &Atom{AtomicNumber: chem.Oxygen}

	_, err := mol.AddBond(a, outside, chem.OrderSingle)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAtomNotInMolecule))

	_, err = mol.AddBond(a, a, chem.OrderSingle)
	assert.Error(t, err)

	_, err = mol.AddBond(nil, a, chem.OrderSingle)
	assert.Error(t, err)
}

func TestMolecule_ConnectivityQueries(t *testing.T) {
	mol := New()
	c, _ := mol.NewAtom("C")
	o1, _ := mol.NewAtom("O")
	o2, _ := mol.NewAtom("O")

	doubleBond, err := mol.AddBond(c, o1, chem.OrderDouble)
	require.NoError(t, err)
	singleBond, err := mol.AddBond(c, o2, chem.OrderSingle)
	require.NoError(t, err)

	assert.Equal(t, 2, mol.ConnectedBondCount(c))
	assert.Equal(t, 1, mol.ConnectedBondCount(o1))
	assert.ElementsMatch(t, []*Bond{doubleBond, singleBond}, mol.ConnectedBonds(c))
	assert.ElementsMatch(t, []*Atom{o1, o2}, mol.ConnectedAtoms(c))
	assert.Same(t, doubleBond, mol.BondBetween(c, o1))
	assert.Same(t, doubleBond, mol.BondBetween(o1, c))
	assert.Nil(t, mol.BondBetween(o1, o2))
}

func TestMolecule_ConnectedBonds_ReturnsCopy(t *testing.T) {
	mol := New()
	c, _ := mol.NewAtom("C")
	o, _ := mol.NewAtom("O")
	mol.AddBond(c, o, chem.OrderSingle)

	got := mol.ConnectedBonds(c)
	got[0] = nil
	assert.NotNil(t, mol.ConnectedBonds(c)[0])
}

func TestMolecule_MaximumBondOrder(t *testing.T) {
	mol := New()
	c, _ := mol.NewAtom("C")
	o, _ := mol.NewAtom("O")
	n, _ := mol.NewAtom("N")
	mol.AddBond(c, o, chem.OrderDouble)
	mol.AddBond(c, n, chem.OrderSingle)

	assert.Equal(t, chem.OrderDouble, mol.MaximumBondOrder(c))
	assert.Equal(t, chem.OrderDouble, mol.MaximumBondOrder(o))
	assert.Equal(t, chem.OrderSingle, mol.MaximumBondOrder(n))
}

func TestMolecule_MaximumBondOrder_IsolatedAtom(t *testing.T) {
	mol := New()
	lone, _ := mol.NewAtom("C")
	assert.Equal(t, chem.OrderUnset, mol.MaximumBondOrder(lone))

	lone.SetImplicitHydrogens(4)
	assert.Equal(t, chem.OrderSingle, mol.MaximumBondOrder(lone))

	lone.SetImplicitHydrogens(0)
	assert.Equal(t, chem.OrderUnset, mol.MaximumBondOrder(lone))
}

func TestMolecule_BondOrderSum(t *testing.T) {
	mol := New()
	c, _ := mol.NewAtom("C")
	o, _ := mol.NewAtom("O")
	n, _ := mol.NewAtom("N")
	s, _ := mol.NewAtom("S")
	mol.AddBond(c, o, chem.OrderDouble)
	mol.AddBond(c, n, chem.OrderSingle)
	mol.AddBond(c, s, chem.OrderUnset)

	assert.InDelta(t, 3.0, mol.BondOrderSum(c), 1e-9)
	assert.InDelta(t, 0.0, mol.BondOrderSum(s), 1e-9)
}

func TestMolecule_AtomIndex(t *testing.T) {
	mol := New()
	a, _ := mol.NewAtom("C")
	b, _ := mol.NewAtom("O")
	assert.Equal(t, 0, mol.AtomIndex(a))
	assert.Equal(t, 1, mol.AtomIndex(b))
	assert.Equal(t, -1, mol.AtomIndex(&Atom{}))
}

func TestMolecule_ElectronCounts(t *testing.T) {
	mol := New()
	a, _ := mol.NewAtom("N")
	a.SingleElectrons = 1
	a.LonePairs = 2
	assert.Equal(t, 1, mol.SingleElectronCount(a))
	assert.Equal(t, 2, mol.LonePairCount(a))
}

func TestMolecule_Formula_HillOrder(t *testing.T) {
	mol := New()
	c, _ := mol.NewAtom("C")
	c.SetImplicitHydrogens(3)
	o, _ := mol.NewAtom("O")
	o.SetImplicitHydrogens(1)
	n, _ := mol.NewAtom("N")
	cl, _ := mol.NewAtom("Cl")
	mol.AddBond(c, o, chem.OrderSingle)
	mol.AddBond(c, n, chem.OrderSingle)
	mol.AddBond(c, cl, chem.OrderSingle)

	assert.Equal(t, "CH4ClNO", mol.Formula())
}

func TestMolecule_Formula_NoCarbon(t *testing.T) {
	mol := New()
	o, _ := mol.NewAtom("O")
	o.SetImplicitHydrogens(2)
	assert.Equal(t, "H2O", mol.Formula())
}

func TestMolecule_Formula_SkipsPseudoAtoms(t *testing.T) {
	mol := New()
	mol.AddAtom(NewPseudoAtom("R1"))
	c, _ := mol.NewAtom("C")
	c.SetImplicitHydrogens(4)
	assert.Equal(t, "CH4", mol.Formula())
}

func TestMolecule_Weight_Methane(t *testing.T) {
	mol := New()
	c, _ := mol.NewAtom("C")
	c.SetImplicitHydrogens(4)
	assert.InDelta(t, 16.04, mol.Weight(), 0.05)
}

func TestNew_AssignsIdentity(t *testing.T) {
	m1 := New()
	m2 := New()
	assert.NoError(t, m1.ID.Validate())
	assert.NotEqual(t, m1.ID, m2.ID)
}
