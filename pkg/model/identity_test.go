package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityShortType(t *testing.T) {
	tests := []struct {
		uuid string
		want string
	}{
		{"00000093-0000-1000-8000-0026BB765291", "93"},
		{"000000AF-0000-1000-8000-0026BB765291", "AF"},
		{"00000000-0000-1000-8000-0026BB765291", "0"},
		{"12345678-1234-1234-1234-123456789abc", "12345678-1234-1234-1234-123456789ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			id := MustIdentity(tt.uuid, "x")
			assert.Equal(t, tt.want, id.ShortType())
		})
	}
}

func TestNewIdentityErrors(t *testing.T) {
	_, err := NewIdentity("not-a-uuid", "x")
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = NewIdentity("00000093-0000-1000-8000-0026BB765291", "")
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	assert.Panics(t, func() { MustIdentity("bad", "x") })
}

func TestIdentityEqual(t *testing.T) {
	a := MustIdentity("00000093-0000-1000-8000-0026BB765291", "Carbon Dioxide Level")
	b, err := NewIdentity("00000093-0000-1000-8000-0026bb765291", "CO2 Level")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(fanID))
	assert.Equal(t, "Carbon Dioxide Level (93)", a.String())
}

func TestAccessString(t *testing.T) {
	assert.Equal(t, "-", Access(0).String())
	assert.Equal(t, "R", AccessRead.String())
	assert.Equal(t, "RWN", (AccessRead | AccessWrite | AccessNotify).String())
	assert.Equal(t, []string{"pr", "ev"}, (AccessRead | AccessNotify).Permissions())
}
