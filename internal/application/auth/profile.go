package auth

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type ProfileUpdate struct {
	Email string
	Name  string
}

func (s *Service) GetProfile(ctx context.Context, userID string) (domain.User, error) {
	return s.getUser(ctx, userID)
}

// UpdateProfile changes the account's email and/or name. Password and role
// cannot be changed through this path.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (domain.User, error) {
	if userID == "" {
		return domain.User{}, domain.ErrTokenMissing()
	}

	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" && name == "" {
		return domain.User{}, domain.ErrInvalidField("email/name", "nothing to update")
	}

	u, err := s.users.UpdateProfile(ctx, userID, email, name)
	if err != nil {
		return domain.User{}, err
	}
	s.audit("profile_update", map[string]string{"user_id": u.ID})
	return u, nil
}
