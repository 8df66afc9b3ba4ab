package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// RequestIDKey is the context key for request ID.
	RequestIDKey contextKey = "request_id"
	// CustomerIDKey is the context key for the x-customerid header value.
	CustomerIDKey contextKey = "customer_id"
	// CountryKey is the context key for the x-country header value.
	CountryKey contextKey = "country"
)

// RequestIDHeader is the HTTP header for request ID.
const RequestIDHeader = "X-Request-ID"

// RequestID injects a unique request ID into each request, along with the
// caller identity headers used for log correlation. If the X-Request-ID
// header is present, it uses that value; otherwise it generates a new UUID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		if customerID := r.Header.Get("x-customerid"); customerID != "" {
			ctx = context.WithValue(ctx, CustomerIDKey, customerID)
		}
		if country := r.Header.Get("x-country"); country != "" {
			ctx = context.WithValue(ctx, CountryKey, country)
		}

		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetCustomerID retrieves the caller customer ID from context.
func GetCustomerID(ctx context.Context) string {
	if id, ok := ctx.Value(CustomerIDKey).(string); ok {
		return id
	}
	return ""
}

// GetCountry retrieves the caller country from context.
func GetCountry(ctx context.Context) string {
	if c, ok := ctx.Value(CountryKey).(string); ok {
		return c
	}
	return ""
}
