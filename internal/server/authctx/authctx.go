package authctx

import (
	"context"

	"salondesk-backend/internal/domain"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// CurrentUser is the request-scoped auth context. It is produced once by the
// auth middleware; handlers and services receive it explicitly and never read
// ambient globals.
type CurrentUser struct {
	ID       int64
	Email    string
	Role     domain.UserRole
	OutletID *int64
}

func WithCurrentUser(ctx context.Context, user CurrentUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func FromContext(ctx context.Context) *CurrentUser {
	val, ok := ctx.Value(userContextKey).(CurrentUser)
	if !ok {
		return nil
	}
	return &val
}
