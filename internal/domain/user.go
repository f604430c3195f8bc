package domain

import "time"

type User struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash string

	// Reset fields hold the sha256 of the emailed token and its expiry.
	ResetPasswordToken  string
	ResetPasswordExpire *time.Time

	CreatedAt time.Time
}

// HasPendingReset reports whether a reset token is stored for the user.
func (u User) HasPendingReset() bool {
	return u.ResetPasswordToken != "" || u.ResetPasswordExpire != nil
}

// UserSummary is the public owner view embedded into listings.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
