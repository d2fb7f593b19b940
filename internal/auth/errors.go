package auth

import "errors"

var (
	// ErrIncorrectCredentials covers both "no such account" and "wrong
	// password" so callers cannot enumerate accounts.
	ErrIncorrectCredentials = errors.New("incorrect credentials")

	// ErrDuplicateAccount is returned when registering an email that
	// already has a principal.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrProvider wraps failures from an external identity provider.
	ErrProvider = errors.New("identity provider error")

	// ErrUnauthorized is the gate's answer for a request with no
	// authenticated principal.
	ErrUnauthorized = errors.New("unauthorized")
)
