package user

import (
	"context"

	"kisanmandi/internal/utils"
)

const (
	defaultPhone    = "+91 98765 43210"
	defaultLocation = "Punjab, India"
)

// Identity is what an identity provider knows about a person logging in.
type Identity struct {
	ID           string
	Name         string
	Location     string
	LandSize     string
	PrimaryCrops []string
}

// IdentityProvider resolves the person behind a login.
type IdentityProvider interface {
	Identify(ctx context.Context, role Role, phone string) (*Identity, error)
}

// MockIdentityProvider returns a fixed identity per role. It stands in for
// a real identity service.
type MockIdentityProvider struct{}

func (MockIdentityProvider) Identify(_ context.Context, role Role, _ string) (*Identity, error) {
	switch role {
	case RoleFarmer:
		return &Identity{
			ID:           "f1",
			Name:         "Arjun Singh",
			Location:     defaultLocation,
			LandSize:     "5.2",
			PrimaryCrops: []string{"Wheat", "Potato"},
		}, nil
	case RoleBuyer:
		return &Identity{ID: "b1", Name: "Rahul Kumar", Location: defaultLocation}, nil
	case RoleGuest:
		return &Identity{ID: "g1", Name: "Guest", Location: defaultLocation}, nil
	}
	return nil, ErrInvalidRole
}

func newUser(id *Identity, role Role, lang Language, phone string) *User {
	if phone == "" {
		phone = defaultPhone
	}
	return &User{
		ID:           id.ID,
		Name:         id.Name,
		Role:         role,
		Language:     lang,
		Phone:        phone,
		Location:     id.Location,
		LandSize:     id.LandSize,
		PrimaryCrops: utils.CloneStrings(id.PrimaryCrops),
	}
}
