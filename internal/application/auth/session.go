package auth

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

// VerifySessionToken resolves a raw bearer token to the live account it names.
func (s *Service) VerifySessionToken(ctx context.Context, raw string) (domain.User, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.User{}, domain.ErrTokenMissing()
	}

	claims, err := s.signer.VerifyAccessToken(raw)
	if err != nil {
		return domain.User{}, err
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return domain.User{}, domain.ErrTokenInvalid()
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return domain.User{}, err
		}
		if revoked {
			return domain.User{}, domain.ErrTokenInvalid()
		}
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return domain.User{}, domain.ErrUnknownSubject()
		}
		return domain.User{}, err
	}
	return u, nil
}

// Authorize succeeds when the account's role is one of roles.
func (s *Service) Authorize(u domain.User, roles ...string) error {
	if u.ID == "" {
		return domain.ErrTokenMissing()
	}
	for _, r := range roles {
		if u.Role == r {
			return nil
		}
	}
	return domain.ErrInsufficientRole(u.Role)
}

// Logout revokes the token's id until the token would expire on its own.
func (s *Service) Logout(ctx context.Context, raw string) error {
	claims, err := s.signer.VerifyAccessToken(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if s.denylist == nil || claims.ID == "" {
		return nil
	}

	ttl := claims.Exp.Sub(s.clock.Now())
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}
	s.audit("logout", map[string]string{"user_id": claims.UserID})
	return nil
}
