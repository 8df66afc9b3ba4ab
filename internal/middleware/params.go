package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ixcomercio/recognitions/internal/apperr"
)

// CheckParam validates a named path parameter. The checks run in order and
// the first violation wins:
//
//  1. nil params container → "missing params object in the request"
//  2. absent or empty value → "missing or invalid parameter <name>"
//  3. leading/trailing whitespace → whitespace violation
//
// All rejections are parameter-class errors (403). On success the value is
// passed through unchanged.
func CheckParam(params map[string]string, name string) error {
	if params == nil {
		return apperr.Param(
			"missing params object in the request",
			"middleware", "CheckParam",
		)
	}

	value, ok := params[name]
	if !ok || value == "" {
		return apperr.Param(
			fmt.Sprintf("missing or invalid parameter %s", name),
			"middleware", "CheckParam",
		)
	}

	if strings.TrimSpace(value) != value {
		return apperr.Param(
			fmt.Sprintf("parameter %s has leading or trailing whitespace", name),
			"middleware", "CheckParam",
		)
	}

	return nil
}

// RequireParam returns a middleware that validates the named chi route
// parameter before the handler runs.
func RequireParam(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := CheckParam(routeParams(r), name); err != nil {
				writeGateError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// routeParams flattens the chi route context into a map, or nil when the
// request carries no route context at all.
func routeParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}
