package user

import (
	"context"
	"fmt"

	"kisanmandi/internal/logger"
	"kisanmandi/internal/store"
	"kisanmandi/internal/utils"

	"go.uber.org/zap"
)

// Service is the session state: the active user and the display language.
type Service interface {
	Restore(ctx context.Context) (*User, error)
	Login(ctx context.Context, role Role, phone string) (*User, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error)
	Logout(ctx context.Context) error
	SetLanguage(ctx context.Context, lang Language) error
	Current() *User
	Language() Language
}

type service struct {
	repo     Repository
	identity IdentityProvider

	current  *User
	language Language
}

func NewService(repo Repository, identity IdentityProvider) Service {
	return &service{
		repo:     repo,
		identity: identity,
		language: DefaultLanguage,
	}
}

// Restore rehydrates the user saved by a previous run. Missing or
// unreadable state leaves the session logged out and is not an error.
func (s *service) Restore(ctx context.Context) (*User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.Load(ctx)
	if err != nil {
		log.Warn("discarding unreadable session user", zap.Error(err))
		s.current = nil
		return nil, nil
	}
	if u == nil {
		s.current = nil
		return nil, nil
	}
	if !u.Role.Valid() || u.ID == "" {
		log.Warn("discarding stored user with invalid identity",
			zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
		s.current = nil
		return nil, nil
	}

	if u.Language.Valid() {
		s.language = u.Language
	} else {
		u.Language = s.language
	}
	s.current = u
	log.Info("session restored", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u.Clone(), nil
}

// Login replaces any active session with the identity for role. The user
// is active even when saving fails; the error then wraps
// store.ErrNotPersisted.
func (s *service) Login(ctx context.Context, role Role, phone string) (*User, error) {
	log := logger.FromCtx(ctx)

	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	id, err := s.identity.Identify(ctx, role, phone)
	if err != nil {
		log.Error("identity lookup failed", zap.String("role", string(role)), zap.Error(err))
		return nil, err
	}

	if s.current != nil {
		log.Warn("login replaces active session",
			zap.String("previous_user_id", s.current.ID),
			zap.String("user_id", id.ID),
		)
	}

	u := newUser(id, role, s.language, phone)
	s.current = u

	if err := s.repo.Save(ctx, u); err != nil {
		log.Error("failed to persist session user", zap.String("user_id", u.ID), zap.Error(err))
		return u.Clone(), store.NotPersisted(err)
	}

	log.Info("login completed", zap.String("user_id", u.ID), zap.String("role", string(role)))
	return u.Clone(), nil
}

// UpdateProfile merges the non-nil fields of params into the active user.
func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error) {
	log := logger.FromCtx(ctx)

	if s.current == nil {
		return nil, ErrNotLoggedIn
	}
	if params.Name != nil && utils.IsBlank(*params.Name) {
		return nil, ErrInvalidName
	}

	u := s.current.Clone()
	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Phone != nil {
		u.Phone = *params.Phone
	}
	if params.Location != nil {
		u.Location = *params.Location
	}
	if params.LandSize != nil {
		u.LandSize = *params.LandSize
	}
	if params.PrimaryCrops != nil {
		u.PrimaryCrops = utils.CloneStrings(*params.PrimaryCrops)
	}
	if params.Avatar != nil {
		u.Avatar = *params.Avatar
	}
	s.current = u

	if err := s.repo.Save(ctx, u); err != nil {
		log.Error("failed to persist profile", zap.String("user_id", u.ID), zap.Error(err))
		return u.Clone(), store.NotPersisted(err)
	}
	return u.Clone(), nil
}

// Logout clears the session. Calling it while logged out is a no-op.
func (s *service) Logout(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	if s.current == nil {
		return nil
	}
	userID := s.current.ID
	s.current = nil

	if err := s.repo.Delete(ctx); err != nil {
		log.Error("failed to remove persisted session user", zap.String("user_id", userID), zap.Error(err))
		return store.NotPersisted(err)
	}
	log.Info("logout completed", zap.String("user_id", userID))
	return nil
}

// SetLanguage works with or without an active user. With one, the
// language is also stored on the user record.
func (s *service) SetLanguage(ctx context.Context, lang Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}
	s.language = lang

	if s.current == nil || s.current.Language == lang {
		return nil
	}
	u := s.current.Clone()
	u.Language = lang
	s.current = u

	if err := s.repo.Save(ctx, u); err != nil {
		logger.FromCtx(ctx).Error("failed to persist language", zap.String("user_id", u.ID), zap.Error(err))
		return store.NotPersisted(err)
	}
	return nil
}

func (s *service) Current() *User {
	return s.current.Clone()
}

func (s *service) Language() Language {
	return s.language
}
