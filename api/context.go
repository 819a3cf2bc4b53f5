package api

import (
	"context"
)

type keyType string

const (
	userIDKey keyType = "userID"
)

// ctxWithUserID adds an authenticated user id to the context
func ctxWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxUserID retrieves the authenticated user id from the context; nil when
// the request is anonymous.
func ctxUserID(ctx context.Context) *uint {
	if ctxValue := ctx.Value(userIDKey); ctxValue != nil {
		if userID, ok := ctxValue.(uint); ok {
			return &userID
		}
	}
	return nil
}
