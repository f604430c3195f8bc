package auth

import (
	"context"
	"fmt"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

const resetMailSubject = "Your password reset token (valid for 1 hour)"

// RequestPasswordReset stores a hashed reset token and mails the plaintext.
// If delivery fails the stored token is cleared again.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", domain.ErrMissingField("email")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := newResetToken()
	if err != nil {
		return "", domain.ErrRandomFailed(err)
	}

	expire := s.clock.Now().Add(s.resetTTL)
	if err := s.users.SetResetToken(ctx, u.ID, hashResetToken(token), expire); err != nil {
		return "", err
	}

	if err := s.mailer.Send(ctx, u.Email, resetMailSubject, s.resetMailBody(token)); err != nil {
		if cerr := s.users.ClearResetToken(ctx, u.ID); cerr != nil {
			s.audit("password_reset_rollback", map[string]string{"user_id": u.ID, "result": "error", "code": domainCode(cerr)})
		}
		s.audit("password_reset_request", map[string]string{"user_id": u.ID, "result": "mail_failed"})
		return "", domain.ErrMailDeliveryFailed(err)
	}

	s.audit("password_reset_request", map[string]string{"user_id": u.ID, "result": "ok"})
	return token, nil
}

func (s *Service) resetMailBody(token string) string {
	if s.resetBaseURL != "" {
		return fmt.Sprintf("You are receiving this email because a password reset was requested for your account.\n\nReset your password here: %s%s\n", s.resetBaseURL, token)
	}
	return fmt.Sprintf("Your password reset token is %s\n", token)
}

// ResetPassword consumes a reset token and mints a fresh session.
// A token can be consumed at most once.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) (LoginResult, error) {
	if token == "" {
		return LoginResult{}, domain.ErrResetTokenInvalid()
	}

	hash, err := s.setPassword(newPassword)
	if err != nil {
		return LoginResult{}, err
	}

	u, err := s.users.ConsumeResetToken(ctx, hashResetToken(token), s.clock.Now(), hash)
	if err != nil {
		return LoginResult{}, err
	}

	s.audit("password_reset", map[string]string{"user_id": u.ID})
	return s.issueToken(u)
}

// ChangePassword verifies the current password, stores the new one and
// mints a fresh session token.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) (LoginResult, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return LoginResult{}, err
	}
	if current == "" {
		return LoginResult{}, domain.ErrMissingField("currentPassword")
	}

	if err := s.hasher.Compare(u.PasswordHash, current); err != nil {
		return LoginResult{}, domain.ErrIncorrectPassword()
	}

	hash, err := s.setPassword(next)
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return LoginResult{}, err
	}
	u.PasswordHash = hash

	s.audit("password_change", map[string]string{"user_id": u.ID})
	return s.issueToken(u)
}
