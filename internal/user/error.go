package user

import "errors"

var (
	// -- Session State --
	ErrNotLoggedIn = errors.New("no active user")

	// -- Validation & Input --
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidLanguage = errors.New("invalid language")
	ErrInvalidName     = errors.New("name must not be blank")
)
