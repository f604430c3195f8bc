package dto

import (
	"strings"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/auth"
)

// -------- Core auth --------

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	return Validate(r)
}

func (r *RegisterRequest) Input() auth.RegisterInput {
	return auth.RegisterInput{Email: r.Email, Password: r.Password, Name: r.Name, Role: r.Role}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return Validate(r)
}

// -------- Password reset --------

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return Validate(r)
}

// ResetPasswordRequest carries the emailed token in the body; the
// path variant fills Token from the URL before validation.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required,hexadecimal"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *ResetPasswordRequest) Validate() error {
	r.Token = strings.TrimSpace(r.Token)
	return Validate(r)
}

// -------- Account --------

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (r *UpdateProfileRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	return Validate(r)
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (r *UpdatePasswordRequest) Validate() error {
	return Validate(r)
}
