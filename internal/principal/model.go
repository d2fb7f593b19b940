package principal

import (
	"time"

	"github.com/google/uuid"
)

// SentinelPasswordHash marks a principal provisioned through a federated
// provider. It is not a valid bcrypt hash, so local password verification
// against it can never succeed.
const SentinelPasswordHash = "!federated-only"

// Principal is one authenticated identity: exactly one row per email.
type Principal struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Secret       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasLocalPassword reports whether the principal can be authenticated
// with a locally stored password.
func (p *Principal) HasLocalPassword() bool {
	return p.PasswordHash != SentinelPasswordHash
}
