package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockIdentityProvider(t *testing.T) {
	ctx := context.Background()
	p := MockIdentityProvider{}

	tests := []struct {
		role Role
		id   string
		name string
	}{
		{RoleFarmer, "f1", "Arjun Singh"},
		{RoleBuyer, "b1", "Rahul Kumar"},
		{RoleGuest, "g1", "Guest"},
	}
	for _, tt := range tests {
		id, err := p.Identify(ctx, tt.role, "")
		require.NoError(t, err)
		assert.Equal(t, tt.id, id.ID)
		assert.Equal(t, tt.name, id.Name)
	}

	// deterministic across calls
	a, _ := p.Identify(ctx, RoleFarmer, "1")
	b, _ := p.Identify(ctx, RoleFarmer, "2")
	assert.Equal(t, a, b)

	_, err := p.Identify(ctx, Role("ADMIN"), "")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestNewUser_IdentitySliceNotShared(t *testing.T) {
	id := &Identity{ID: "f1", PrimaryCrops: []string{"Wheat"}}
	u := newUser(id, RoleFarmer, LanguageEnglish, "")

	id.PrimaryCrops[0] = "Rice"
	assert.Equal(t, []string{"Wheat"}, u.PrimaryCrops)
	assert.Equal(t, defaultPhone, u.Phone)
}
