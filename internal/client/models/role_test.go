package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		err  bool
	}{
		{in: "CLIENT", want: RoleCustomer},
		{in: "AGENT_BANCAIRE", want: RoleAgent},
		{in: "ADMIN", want: RoleAdmin},
		{in: "client", err: true},
		{in: "", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.err {
				require.ErrorIs(t, err, ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestRole_JSON(t *testing.T) {
	var id Identity
	require.NoError(t, json.Unmarshal([]byte(`{"role":"AGENT_BANCAIRE"}`), &id))
	assert.Equal(t, RoleAgent, id.Role)

	b, err := json.Marshal(Identity{Role: RoleAdmin})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"role":"ADMIN"`)

	b, err = json.Marshal(Identity{})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"role":""`)

	id = Identity{Role: RoleAdmin}
	require.NoError(t, json.Unmarshal([]byte(`{"role":""}`), &id))
	assert.Equal(t, RoleNone, id.Role)

	_, err = json.Marshal(Identity{Role: Role(42)})
	assert.ErrorIs(t, err, ErrUnknownRole)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"ROOT"}`), &id))
}

func TestRole_In(t *testing.T) {
	assert.True(t, RoleAgent.In(Roles))
	assert.False(t, RoleNone.In(Roles))
	assert.False(t, RoleAdmin.In([]Role{RoleCustomer}))
}

func TestRequiresDocument(t *testing.T) {
	assert.False(t, RequiresDocument(DocumentThreshold))
	assert.True(t, RequiresDocument(DocumentThreshold+0.01))
}
