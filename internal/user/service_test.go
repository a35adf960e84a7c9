package user

import (
	"context"
	"errors"
	"testing"

	"kisanmandi/internal/store"
	"kisanmandi/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Load(ctx context.Context) (*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Farmer", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})

		mockRepo.On("Save", ctx, mock.AnythingOfType("*user.User")).Return(nil)

		u, err := svc.Login(ctx, RoleFarmer, "+91 99999 88888")

		require.NoError(t, err)
		assert.Equal(t, "f1", u.ID)
		assert.Equal(t, "Arjun Singh", u.Name)
		assert.Equal(t, RoleFarmer, u.Role)
		assert.Equal(t, DefaultLanguage, u.Language)
		assert.Equal(t, "+91 99999 88888", u.Phone)
		assert.Equal(t, "5.2", u.LandSize)
		assert.Equal(t, []string{"Wheat", "Potato"}, u.PrimaryCrops)
		assert.Equal(t, u, svc.Current())
		mockRepo.AssertExpectations(t)
	})

	t.Run("Buyer gets no farm details", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Save", ctx, mock.Anything).Return(nil)

		u, err := svc.Login(ctx, RoleBuyer, "")

		require.NoError(t, err)
		assert.Equal(t, "b1", u.ID)
		assert.Equal(t, "Rahul Kumar", u.Name)
		assert.Equal(t, defaultPhone, u.Phone)
		assert.Empty(t, u.LandSize)
		assert.Nil(t, u.PrimaryCrops)
	})

	t.Run("Carries the session language", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Save", ctx, mock.Anything).Return(nil)

		require.NoError(t, svc.SetLanguage(ctx, LanguagePunjabi))
		u, err := svc.Login(ctx, RoleGuest, "")

		require.NoError(t, err)
		assert.Equal(t, LanguagePunjabi, u.Language)
	})

	t.Run("Invalid role", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})

		_, err := svc.Login(ctx, Role("ADMIN"), "")

		assert.ErrorIs(t, err, ErrInvalidRole)
		assert.Nil(t, svc.Current())
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Save failure keeps the session", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

		u, err := svc.Login(ctx, RoleFarmer, "")

		assert.ErrorIs(t, err, store.ErrNotPersisted)
		require.NotNil(t, u)
		assert.Equal(t, "f1", svc.Current().ID)
	})

	t.Run("Relogin overwrites", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Save", ctx, mock.Anything).Return(nil)

		_, _ = svc.Login(ctx, RoleFarmer, "")
		_, err := svc.Login(ctx, RoleBuyer, "")

		require.NoError(t, err)
		assert.Equal(t, "b1", svc.Current().ID)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Only name changes", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Save", ctx, mock.Anything).Return(nil)

		before, err := svc.Login(ctx, RoleFarmer, "")
		require.NoError(t, err)

		after, err := svc.UpdateProfile(ctx, UpdateProfileParams{Name: utils.StrPtr("X")})
		require.NoError(t, err)

		want := before.Clone()
		want.Name = "X"
		assert.Equal(t, want, after)
		assert.Equal(t, want, svc.Current())
		mockRepo.AssertNumberOfCalls(t, "Save", 2)
	})

	t.Run("Replaces crops", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Save", ctx, mock.Anything).Return(nil)
		_, _ = svc.Login(ctx, RoleFarmer, "")

		crops := []string{"Rice"}
		u, err := svc.UpdateProfile(ctx, UpdateProfileParams{PrimaryCrops: &crops, LandSize: utils.StrPtr("7")})

		require.NoError(t, err)
		assert.Equal(t, []string{"Rice"}, u.PrimaryCrops)
		assert.Equal(t, "7", u.LandSize)

		crops[0] = "Maize"
		assert.Equal(t, []string{"Rice"}, svc.Current().PrimaryCrops)
	})

	t.Run("Logged out is a no-op", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})

		u, err := svc.UpdateProfile(ctx, UpdateProfileParams{Name: utils.StrPtr("X")})

		assert.ErrorIs(t, err, ErrNotLoggedIn)
		assert.Nil(t, u)
		assert.Nil(t, svc.Current())
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Blank name rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Save", ctx, mock.Anything).Return(nil)
		_, _ = svc.Login(ctx, RoleBuyer, "")

		_, err := svc.UpdateProfile(ctx, UpdateProfileParams{Name: utils.StrPtr("  ")})

		assert.ErrorIs(t, err, ErrInvalidName)
		assert.Equal(t, "Rahul Kumar", svc.Current().Name)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("Clears user and store", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Save", ctx, mock.Anything).Return(nil)
		mockRepo.On("Delete", ctx).Return(nil).Once()

		_, _ = svc.Login(ctx, RoleBuyer, "")
		require.NoError(t, svc.Logout(ctx))
		require.NoError(t, svc.Logout(ctx))

		assert.Nil(t, svc.Current())
		mockRepo.AssertExpectations(t)
	})

	t.Run("Delete failure still logs out", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Save", ctx, mock.Anything).Return(nil)
		mockRepo.On("Delete", ctx).Return(errors.New("locked"))

		_, _ = svc.Login(ctx, RoleBuyer, "")
		err := svc.Logout(ctx)

		assert.ErrorIs(t, err, store.ErrNotPersisted)
		assert.Nil(t, svc.Current())
	})
}

func TestService_SetLanguage(t *testing.T) {
	ctx := context.Background()

	t.Run("Without user", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})

		require.NoError(t, svc.SetLanguage(ctx, LanguageHindi))

		assert.Equal(t, LanguageHindi, svc.Language())
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("With user persists the record", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Save", ctx, mock.Anything).Return(nil)
		_, _ = svc.Login(ctx, RoleFarmer, "")

		require.NoError(t, svc.SetLanguage(ctx, LanguageHindi))

		assert.Equal(t, LanguageHindi, svc.Current().Language)
		mockRepo.AssertNumberOfCalls(t, "Save", 2)
	})

	t.Run("Invalid language", func(t *testing.T) {
		svc := NewService(new(MockRepository), MockIdentityProvider{})

		err := svc.SetLanguage(ctx, Language("fr"))

		assert.ErrorIs(t, err, ErrInvalidLanguage)
		assert.Equal(t, DefaultLanguage, svc.Language())
	})
}

func TestService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("Stored user", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		stored := &User{ID: "f1", Name: "Arjun Singh", Role: RoleFarmer, Language: LanguageHindi}
		mockRepo.On("Load", ctx).Return(stored, nil)

		u, err := svc.Restore(ctx)

		require.NoError(t, err)
		assert.Equal(t, "f1", u.ID)
		assert.Equal(t, LanguageHindi, svc.Language())
	})

	t.Run("Nothing stored", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Load", ctx).Return(nil, nil)

		u, err := svc.Restore(ctx)

		assert.NoError(t, err)
		assert.Nil(t, u)
		assert.Nil(t, svc.Current())
	})

	t.Run("Corrupt state falls back to logged out", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Load", ctx).Return(nil, store.ErrCorrupt)

		u, err := svc.Restore(ctx)

		assert.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("Invalid role falls back to logged out", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, MockIdentityProvider{})
		mockRepo.On("Load", ctx).Return(&User{ID: "x", Role: "ROOT"}, nil)

		u, err := svc.Restore(ctx)

		assert.NoError(t, err)
		assert.Nil(t, u)
	})
}
