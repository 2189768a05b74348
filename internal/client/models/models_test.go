package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_ValidAndLabel(t *testing.T) {
	for _, r := range Roles() {
		assert.True(t, r.Valid(), "role %q", r)
		assert.NotEqual(t, string(r), r.Label(), "role %q has no label", r)
	}

	assert.False(t, Role("").Valid())
	assert.False(t, Role("Administrator").Valid())
	assert.Equal(t, "intern", Role("intern").Label())
	assert.Equal(t, "Chief Information Security Officer", RoleCISO.Label())
}

func TestAccount_JSONKeys(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	a := Account{
		ID:           "1",
		FullName:     "Jane Doe",
		Email:        "jane@x.com",
		Organization: "Acme",
		Password:     "Passw0rd",
		Role:         RoleAdministrator,
		CreatedAt:    created,
		IsActive:     true,
	}

	b, err := json.Marshal(a)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, k := range []string{"id", "fullName", "email", "organization", "password", "role", "createdAt", "isActive"} {
		assert.Contains(t, raw, k)
	}
	assert.Equal(t, "2025-03-01T10:00:00Z", raw["createdAt"])
}

func TestNewSession_CopiesIdentity(t *testing.T) {
	a := Account{ID: "id-1", FullName: "Jane Doe", Email: "jane@x.com", Role: RoleCISO, Password: "secret"}
	now := time.Now().UTC()

	s := NewSession(a, now)

	assert.Equal(t, Session{ID: "id-1", Email: "jane@x.com", FullName: "Jane Doe", Role: RoleCISO, LoginTime: now}, s)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
	assert.Contains(t, string(b), `"loginTime"`)
}
