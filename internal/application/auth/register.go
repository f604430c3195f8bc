package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)

	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if name == "" {
		return domain.User{}, domain.ErrMissingField("name")
	}

	role := in.Role
	if role == "" {
		role = string(domain.RoleUser)
	}
	if !domain.IsSelfAssignable(role) {
		return domain.User{}, domain.ErrInvalidField("role", "must be user or publisher")
	}

	hash, err := s.setPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	created, err := s.users.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	})
	if err != nil {
		s.audit("register", map[string]string{"email": email, "result": "error", "code": domainCode(err)})
		return domain.User{}, err
	}

	s.audit("register", map[string]string{"user_id": created.ID, "role": created.Role, "result": "ok"})
	return created, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
