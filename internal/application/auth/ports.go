package auth

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for accounts.
Repositories only ever receive password hashes, never plaintext.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	// Create fails with ErrEmailAlreadyExists on a unique violation.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// UpdateProfile changes email and/or name; empty values keep the stored ones.
	UpdateProfile(ctx context.Context, userID, email, name string) (domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// Reset-token bookkeeping
	SetResetToken(ctx context.Context, userID, tokenHash string, expire time.Time) error
	ClearResetToken(ctx context.Context, userID string) error
	// ConsumeResetToken atomically matches tokenHash with expiry after now,
	// stores newHash and clears both reset fields. No match is ErrResetTokenInvalid.
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, newHash string) (domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT).
*/
type TokenClaims struct {
	UserID string
	Role   string
	ID     string // jti
	Exp    time.Time
}

type TokenSigner interface {
	SignAccessToken(userID string, role string, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
}

/*
TokenDenylist
-------------
Revoked token ids, kept until the token would have expired anyway.
*/
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

/*
Mailer
------
Delivers a plain-text message. Send returns only after the transport
accepted or rejected the message.
*/
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
