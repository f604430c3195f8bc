package middleware

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type ctxKey string

const (
	ctxUser  ctxKey = "user"
	ctxToken ctxKey = "token"
)

// WithUser stores the authenticated account and the raw session token.
func WithUser(ctx context.Context, u domain.User, token string) context.Context {
	ctx = context.WithValue(ctx, ctxUser, u)
	ctx = context.WithValue(ctx, ctxToken, token)
	return ctx
}

func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxUser).(domain.User)
	return u, ok && u.ID != ""
}

func TokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxToken).(string)
	return v, ok && v != ""
}
