package http_handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/auth"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/infrastructure/security"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc           *auth.Service
	cookieTTL     time.Duration
	secureCookies bool
}

func NewAuthHandler(svc *auth.Service, cookieTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		cookieTTL:     cookieTTL,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Input())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Str("role", u.Role).
		Msg("user_registered")

	response.Created(w, dto.NewUserView(u))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	h.sendToken(w, res)
}

// Logout revokes the presented token and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tok, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}
	if err := h.svc.Logout(r.Context(), tok); err != nil {
		response.WriteError(w, r, err)
		return
	}

	security.ClearSessionCookie(w, h.secureCookies)
	response.Empty(w)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.GetProfile(r.Context(), actor.ID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewUserView(u))
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), actor.ID, auth.ProfileUpdate{Email: req.Email, Name: req.Name})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewUserView(u))
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.UpdatePasswordRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.ChangePassword(r.Context(), actor.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", actor.ID).
		Msg("password_changed")

	h.sendToken(w, res)
}

// ForgotPassword never returns the reset token; it only travels by mail.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if _, err := h.svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Message(w, "Email sent")
}

// ResetPassword accepts the token in the body, or in the path for
// PUT /resetPassword/{token}.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if tok := chi.URLParam(r, "token"); tok != "" {
		req.Token = tok
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.ResetPassword(r.Context(), req.Token, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("password_reset")

	h.sendToken(w, res)
}

func (h *AuthHandler) sendToken(w http.ResponseWriter, res auth.LoginResult) {
	security.SetSessionCookie(w, res.Token, h.cookieTTL, h.secureCookies)
	response.Token(w, http.StatusOK, res.Token)
}

func currentUser(r *http.Request) (domain.User, error) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return domain.User{}, domain.ErrTokenMissing()
	}
	return u, nil
}
