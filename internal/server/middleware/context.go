package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ContextKeyMerchantID contextKey = "merchant_id"
	ContextKeyRole       contextKey = "role"
	ContextKeySessionID  contextKey = "session_id"
	ContextKeyClientIP   contextKey = "client_ip"
)

func MerchantIDFromContext(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(ContextKeyMerchantID).(int64)
	return v, ok
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyRole).(string)
	return v, ok
}

func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeySessionID).(uuid.UUID)
	return v, ok
}

func ClientIPFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ContextKeyClientIP).(string)
	return v
}
