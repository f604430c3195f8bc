package auth

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

// Login authenticates an account and mints a session token.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !domain.Is(err, "user_not_found") {
			return LoginResult{}, err
		}
		s.burnCompare(password)
		s.audit("login", map[string]string{"email": email, "result": "fail"})
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		s.audit("login", map[string]string{"user_id": u.ID, "result": "fail"})
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	res, err := s.issueToken(u)
	if err != nil {
		return LoginResult{}, err
	}
	s.audit("login", map[string]string{"user_id": u.ID, "result": "ok"})
	return res, nil
}
