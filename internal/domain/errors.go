package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindAuth           ErrKind = "auth"           // 401
	KindForbidden      ErrKind = "forbidden"      // 403
	KindNotFound       ErrKind = "not_found"      // 404
	KindConflict       ErrKind = "conflict"       // 409
	KindDuplicate      ErrKind = "duplicate"      // 500, kept for client compatibility
	KindRateLimited    ErrKind = "rate_limited"   // 429
	KindInfrastructure ErrKind = "infrastructure" // 503
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Meta: optional details (field, reason, etc.)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

// Is reports whether err is a domain error carrying the given code.
func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// KindOf returns the kind of a domain error, or KindInternal for anything else.
func KindOf(err error) ErrKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", "missing required field"), map[string]string{
		"field": field,
	})
}

func ErrInvalidField(field, reason string) *Error {
	return WithMeta(New(KindValidation, "invalid_field", "invalid field"), map[string]string{
		"field":  field,
		"reason": reason,
	})
}

// ErrValidationFailed carries per-field messages produced by request validation.
func ErrValidationFailed(fields map[string]string) *Error {
	return WithMeta(New(KindValidation, "validation_failed", "validation failed"), fields)
}

func ErrInvalidUpload(reason string) *Error {
	return WithMeta(New(KindValidation, "invalid_upload", "invalid file upload"), map[string]string{
		"reason": reason,
	})
}

func ErrInvalidQuery(param, reason string) *Error {
	return WithMeta(New(KindValidation, "invalid_query", "invalid query parameter"), map[string]string{
		"param":  param,
		"reason": reason,
	})
}

func ErrResetTokenInvalid() *Error {
	return New(KindValidation, "reset_token_invalid", "token is invalid or has expired")
}

func ErrIncorrectPassword() *Error {
	return New(KindValidation, "incorrect_password", "current password is incorrect")
}

// ----------------------
// Auth errors (401)
// ----------------------

// ErrInvalidCredentials is returned for every login failure so callers cannot
// tell an unknown email from a wrong password.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "invalid email or password")
}

func ErrTokenMissing() *Error {
	return New(KindAuth, "token_missing", "you are not logged in")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "invalid token")
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "token is expired")
}

func ErrUnknownSubject() *Error {
	return New(KindAuth, "unknown_subject", "user belonging to this token no longer exists")
}

// ----------------------
// Forbidden (403)
// ----------------------

func ErrForbidden() *Error {
	return New(KindForbidden, "forbidden", "not authorized to access this resource")
}

func ErrInsufficientRole(role string) *Error {
	return WithMeta(New(KindForbidden, "insufficient_role", "role is not authorized to access this route"), map[string]string{
		"role": role,
	})
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "no user found with that email address")
}

func ErrBootcampNotFound() *Error {
	return New(KindNotFound, "bootcamp_not_found", "bootcamp not found")
}

func ErrCourseNotFound() *Error {
	return New(KindNotFound, "course_not_found", "course not found")
}

func ErrRouteNotFound() *Error {
	return New(KindNotFound, "route_not_found", "no route found")
}

// ----------------------
// Duplicate / Conflict
// ----------------------

func ErrEmailAlreadyExists() *Error {
	return New(KindDuplicate, "email_already_exists", "email address already exists")
}

func ErrBootcampAlreadyExists() *Error {
	return New(KindConflict, "bootcamp_already_exists", "bootcamp already exists")
}

func ErrBootcampAlreadyPublished(userID string) *Error {
	return WithMeta(New(KindConflict, "bootcamp_already_published", "user has already published a bootcamp"), map[string]string{
		"user_id": userID,
	})
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrRateLimited(scope string) *Error {
	return WithMeta(New(KindRateLimited, "rate_limited", "too many requests"), map[string]string{
		"scope": scope,
	})
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrRedisUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "redis_unavailable", "cache unavailable", cause)
}

func ErrMailDeliveryFailed(cause error) *Error {
	return Wrap(KindInfrastructure, "mail_delivery_failed", "an error occurred while sending mail", cause)
}

func ErrStorageUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "storage_unavailable", "file storage unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrRandomFailed(cause error) *Error {
	return Wrap(KindInternal, "random_failed", "random generation failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
