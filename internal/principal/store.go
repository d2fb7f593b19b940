package principal

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means no principal exists for the given email.
	ErrNotFound = errors.New("principal not found")

	// ErrDuplicateEmail is returned when an insert loses against the
	// unique constraint on email.
	ErrDuplicateEmail = errors.New("principal email already exists")

	// ErrUnavailable wraps connectivity and query failures. Callers must
	// never treat it as "bad credentials".
	ErrUnavailable = errors.New("principal store unavailable")
)

// Store is the narrow query contract over the principal records.
// Implementations must enforce a unique constraint on email; insert-if-absent
// races are resolved by that constraint, not by callers.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*Principal, error)
	Insert(ctx context.Context, email, passwordHash string) (*Principal, error)
	UpdateSecret(ctx context.Context, email, secret string) error
}
