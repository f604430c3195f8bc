package auth

import (
	"context"
	"sync"
	"time"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

// MinPasswordLength applies to every password write.
const MinPasswordLength = 6

type Service struct {
	users    UserRepo
	hasher   PasswordHasher
	signer   TokenSigner
	denylist TokenDenylist
	mailer   Mailer
	clock    Clock

	sessionTTL   time.Duration
	resetTTL     time.Duration
	resetBaseURL string // e.g. https://frontend/reset-password?token=

	audit func(action string, fields map[string]string)

	dummyOnce sync.Once
	dummyHash string
}

type Config struct {
	SessionTTL           time.Duration
	PasswordResetTTL     time.Duration
	PasswordResetBaseURL string
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	denylist TokenDenylist,
	mailer Mailer,
	clock Clock,
	cfg Config,
) *Service {
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 720 * time.Hour
	}
	resetTTL := cfg.PasswordResetTTL
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		denylist: denylist,
		mailer:   mailer,
		clock:    clock,

		sessionTTL:   sessionTTL,
		resetTTL:     resetTTL,
		resetBaseURL: cfg.PasswordResetBaseURL,

		audit: func(string, map[string]string) {},
	}
}

// LoginResult is returned by every flow that mints a session token.
type LoginResult struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// SessionTTL is the lifetime of minted session tokens.
func (s *Service) SessionTTL() time.Duration { return s.sessionTTL }

func (s *Service) issueToken(u domain.User) (LoginResult, error) {
	tok, err := s.signer.SignAccessToken(u.ID, u.Role, s.sessionTTL)
	if err != nil {
		return LoginResult{}, domain.ErrTokenSignFailed(err)
	}
	return LoginResult{User: u, Token: tok, ExpiresAt: s.clock.Now().Add(s.sessionTTL)}, nil
}

// setPassword is the only place a password hash is produced.
func (s *Service) setPassword(plain string) (string, error) {
	if plain == "" {
		return "", domain.ErrMissingField("password")
	}
	if len(plain) < MinPasswordLength {
		return "", domain.ErrInvalidField("password", "must be at least 6 characters")
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}
	return hash, nil
}

// burnCompare spends the same work as a real password check.
func (s *Service) burnCompare(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("not-a-real-password")
	})
	if s.dummyHash != "" {
		_ = s.hasher.Compare(s.dummyHash, password)
	}
}

func (s *Service) getUser(ctx context.Context, id string) (domain.User, error) {
	if id == "" {
		return domain.User{}, domain.ErrTokenMissing()
	}
	return s.users.GetByID(ctx, id)
}
