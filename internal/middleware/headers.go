// Package middleware provides HTTP middleware for the recognitions API.
package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ixcomercio/recognitions/internal/apperr"
)

// BaseHeaders is the minimum header set required on every validated route.
// Order matters: the first missing header names the rejection.
var BaseHeaders = []string{"x-commerce", "x-customerid"}

// ProxyHeaders is the extended set required by routes that forward headers
// to the upstream Pokédex service.
var ProxyHeaders = []string{
	"x-commerce",
	"x-customerid",
	"x-country",
	"x-channel",
	"x-usrtx",
	"x-api-version",
	"content-type",
}

// HeaderGetter is the read-only view of request headers the gate needs.
type HeaderGetter interface {
	Get(key string) string
}

// CheckHeaders verifies that every required header is present, in the
// declared order. The first missing header fails the whole check with a
// header-class error naming it. The request is never mutated.
func CheckHeaders(headers HeaderGetter, required []string) error {
	for _, name := range required {
		if headers.Get(name) == "" {
			return apperr.Header(
				fmt.Sprintf("missing header %s in the request", name),
				"middleware", "CheckHeaders",
			)
		}
	}
	return nil
}

// RequireHeaders returns a middleware that rejects requests missing any of
// the required headers before the handler runs.
func RequireHeaders(required ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := CheckHeaders(r.Header, required); err != nil {
				writeGateError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeGateError writes the uniform error envelope for a gate rejection.
func writeGateError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.StatusOf(err))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ERROR",
		"message": apperr.MessageOf(err),
	})
}
