package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes_ListAll(t *testing.T) {
	out, err := runCommand(t, "types")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "C.sp3")
	assert.Contains(t, out, "O.sp3")
}

func TestTypes_FilterByElement(t *testing.T) {
	out, err := runCommand(t, "types", "--element", "N")
	require.NoError(t, err)

	assert.Contains(t, out, "N.sp3")
	assert.NotContains(t, out, "C.sp3")
}

func TestTypes_InspectEntry(t *testing.T) {
	out, err := runCommand(t, "types", "C.sp2")
	require.NoError(t, err)

	assert.Contains(t, out, "Name:            C.sp2")
	assert.Contains(t, out, "Symbol:          C")
}

func TestTypes_InspectEntryJSON(t *testing.T) {
	out, err := runCommand(t, "--output", "json", "types", "C.sp2")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "C.sp2"`)
}

func TestTypes_UnknownEntry(t *testing.T) {
	_, err := runCommand(t, "types", "Zz.nope")
	assert.Error(t, err)
}

func TestTypes_UnknownElement(t *testing.T) {
	_, err := runCommand(t, "types", "--element", "Zz")
	assert.Error(t, err)
}
