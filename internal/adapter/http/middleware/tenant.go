package middleware

import (
	"context"
	"net/http"
)

// TenantIDHeader carries the acting dealership's ID. Every /api/v1 route is
// scoped to it; requests without one are rejected before reaching a handler.
const TenantIDHeader = "X-Tenant-ID"

type contextKey string

const tenantIDKey contextKey = "tenant_id"

// RequireTenant extracts the tenant ID header into the request context.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.Header.Get(TenantIDHeader)
		if tenantID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"missing tenant"}`))
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithTenant returns a context carrying the tenant ID.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// TenantID returns the tenant ID stored in the context, if any.
func TenantID(ctx context.Context) string {
	id, _ := ctx.Value(tenantIDKey).(string)
	return id
}
