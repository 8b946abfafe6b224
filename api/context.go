package api

import (
	"context"

	"github.com/rs/zerolog"
)

type keyType string

const adminIDKey keyType = "adminID"

// ctxWithAdminID adds the authenticated admin's ID to the context
func ctxWithAdminID(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, adminIDKey, adminID)
}

// ctxGetAdminID retrieves the authenticated admin's ID from the context
func ctxGetAdminID(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(adminIDKey).(string)
	return value, ok
}

// auditLog records a mutating action together with the admin who performed
// it, taken from the request context.
func auditLog(ctx context.Context, logger zerolog.Logger, action, entityID string) {
	adminID, _ := ctxGetAdminID(ctx)
	logger.Info().Str("adminID", adminID).Str("entityID", entityID).Msg(action)
}
