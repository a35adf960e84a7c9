package app

import (
	"context"

	"kisanmandi/internal/auth"
	"kisanmandi/internal/user"
)

func (a *App) Login(ctx context.Context, role user.Role, phone string) (*user.User, error) {
	var u *user.User
	err := a.mutate(ctx, func() error {
		var err error
		u, err = a.users.Login(ctx, role, phone)
		return err
	})
	return u, err
}

// LoginWithOTP applies the login screen rules before logging in: a
// 10-digit phone number and a 6-digit code.
func (a *App) LoginWithOTP(ctx context.Context, role user.Role, rawPhone, otp string) (*user.User, error) {
	phone, err := auth.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}
	if err := auth.VerifyOTP(otp); err != nil {
		return nil, err
	}
	return a.Login(ctx, role, phone)
}

func (a *App) UpdateProfile(ctx context.Context, params user.UpdateProfileParams) (*user.User, error) {
	var u *user.User
	err := a.mutate(ctx, func() error {
		var err error
		u, err = a.users.UpdateProfile(ctx, params)
		return err
	})
	return u, err
}

// Logout ends the session. Cart, orders and inventory are left as they are.
func (a *App) Logout(ctx context.Context) error {
	return a.mutate(ctx, func() error {
		return a.users.Logout(ctx)
	})
}

func (a *App) SetLanguage(ctx context.Context, lang user.Language) error {
	return a.mutate(ctx, func() error {
		return a.users.SetLanguage(ctx, lang)
	})
}

func (a *App) User() *user.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.users.Current()
}

func (a *App) Language() user.Language {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.users.Language()
}
