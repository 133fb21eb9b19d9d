package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBondOrder_Numeric(t *testing.T) {
	assert.Equal(t, 0.0, OrderUnset.Numeric())
	assert.Equal(t, 1.0, OrderSingle.Numeric())
	assert.Equal(t, 2.0, OrderDouble.Numeric())
	assert.Equal(t, 3.0, OrderTriple.Numeric())
	assert.Equal(t, 4.0, OrderQuadruple.Numeric())
}

func TestBondOrder_HigherThan(t *testing.T) {
	assert.True(t, OrderTriple.HigherThan(OrderDouble))
	assert.False(t, OrderSingle.HigherThan(OrderSingle))
	assert.False(t, OrderUnset.HigherThan(OrderSingle))
}

func TestParseBondOrder(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  BondOrder
		valid bool
	}{
		{"single", "single", OrderSingle, true},
		{"double", "double", OrderDouble, true},
		{"triple", "triple", OrderTriple, true},
		{"quadruple", "quadruple", OrderQuadruple, true},
		{"empty means unset", "", OrderUnset, true},
		{"garbage", "quintuple", OrderUnset, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseBondOrder(tc.in)
			if !tc.valid {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseHybridization_RoundTrips(t *testing.T) {
	for _, h := range []Hybridization{
		HybridizationS, HybridizationSP1, HybridizationSP2, HybridizationSP3,
		HybridizationPlanar3, HybridizationSP3D1, HybridizationSP3D2,
	} {
		got, err := ParseHybridization(h.String())
		require.NoError(t, err)
		assert.Equal(t, h, got)
	}

	unset, err := ParseHybridization("")
	require.NoError(t, err)
	assert.Equal(t, HybridizationUnset, unset)
	assert.False(t, unset.IsSet())

	_, err = ParseHybridization("sp9")
	assert.Error(t, err)
}

func TestElementTable(t *testing.T) {
	assert.Equal(t, "C", Symbol(Carbon))
	assert.Equal(t, "N", Symbol(Nitrogen))
	assert.Equal(t, "Pu", Symbol(Plutonium))
	assert.Equal(t, Carbon, AtomicNumber("C"))
	assert.Equal(t, Iodine, AtomicNumber("I"))
	assert.True(t, KnownSymbol("Xe"))
	assert.False(t, KnownSymbol("Xx"))
	assert.Equal(t, "", Symbol(999))
	assert.Equal(t, 0, AtomicNumber("Xx"))
}
