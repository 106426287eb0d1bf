package middleware

import "context"

type ctxKey int

const ctxSessionID ctxKey = iota

// ContextWithSessionID stamps the authenticated session id. Exposed so
// handler tests can simulate a request that passed the admin gate.
func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

// SessionIDFromContext returns the authenticated session id, empty when
// the request did not pass the admin gate.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}
