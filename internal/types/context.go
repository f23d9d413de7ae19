package types

import "context"

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxTenantID      ContextKey = "ctx_tenant_id"
	CtxUserID        ContextKey = "ctx_user_id"
	CtxEnvironmentID ContextKey = "ctx_environment_id"

	// Default values
	DefaultTenantID = "00000000-0000-0000-0000-000000000000"
	DefaultUserID   = "00000000-0000-0000-0000-000000000000"
)

func GetTenantID(ctx context.Context) string {
	return stringFromContext(ctx, CtxTenantID)
}

func GetUserID(ctx context.Context) string {
	return stringFromContext(ctx, CtxUserID)
}

func GetRequestID(ctx context.Context) string {
	return stringFromContext(ctx, CtxRequestID)
}

func GetEnvironmentID(ctx context.Context) string {
	return stringFromContext(ctx, CtxEnvironmentID)
}

func stringFromContext(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
