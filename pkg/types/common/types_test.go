package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_IsValid(t *testing.T) {
	id := NewID()
	require.NotEmpty(t, id)
	assert.NoError(t, id.Validate())
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestID_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      ID
		wantErr bool
	}{
		{"valid uuid", ID("c4ca4238-a0b9-3382-8dcc-509a6f75849b"), false},
		{"empty", ID(""), true},
		{"not a uuid", ID("abc-123"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
