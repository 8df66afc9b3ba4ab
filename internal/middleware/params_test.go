package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ixcomercio/recognitions/internal/apperr"
)

func TestCheckParam(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]string
		param    string
		wantMsg  string
	}{
		{
			name:   "valid parameter",
			params: map[string]string{"pokemonName": "charmander"},
			param:  "pokemonName",
		},
		{
			name:    "nil params container",
			params:  nil,
			param:   "pokemonName",
			wantMsg: "missing params object in the request",
		},
		{
			name:    "empty params container",
			params:  map[string]string{},
			param:   "pokemonName",
			wantMsg: "missing or invalid parameter pokemonName",
		},
		{
			name:    "empty value",
			params:  map[string]string{"pokemonName": ""},
			param:   "pokemonName",
			wantMsg: "missing or invalid parameter pokemonName",
		},
		{
			name:    "leading whitespace",
			params:  map[string]string{"pokemonName": " charmander"},
			param:   "pokemonName",
			wantMsg: "parameter pokemonName has leading or trailing whitespace",
		},
		{
			name:    "trailing whitespace",
			params:  map[string]string{"pokemonName": "charmander "},
			param:   "pokemonName",
			wantMsg: "parameter pokemonName has leading or trailing whitespace",
		},
		{
			name:   "trimmed value of the same name passes",
			params: map[string]string{"pokemonName": "charmander"},
			param:  "pokemonName",
		},
		{
			name:    "inner whitespace is fine, outer is not",
			params:  map[string]string{"nombre_colaborador": "Ada Lovelace "},
			param:   "nombre_colaborador",
			wantMsg: "parameter nombre_colaborador has leading or trailing whitespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckParam(tt.params, tt.param)

			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("CheckParam() = %v, want nil", err)
				}
				return
			}

			var appErr *apperr.Error
			if !errors.As(err, &appErr) {
				t.Fatalf("CheckParam() = %v, want *apperr.Error", err)
			}
			if appErr.HTTPStatus != http.StatusForbidden {
				t.Errorf("HTTPStatus = %d, want 403", appErr.HTTPStatus)
			}
			if appErr.Code != apperr.CodeParam {
				t.Errorf("Code = %s, want %s", appErr.Code, apperr.CodeParam)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", appErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestCheckParam_IsDeterministic(t *testing.T) {
	params := map[string]string{"pokemonName": " pikachu"}
	first := CheckParam(params, "pokemonName")
	second := CheckParam(params, "pokemonName")

	if first == nil || second == nil {
		t.Fatal("expected both calls to reject")
	}
	if first.Error() != second.Error() {
		t.Errorf("repeated calls differ: %q vs %q", first, second)
	}
}

func TestRequireParam_RejectsBeforeHandler(t *testing.T) {
	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("pokemonName", " charmander")

	req := httptest.NewRequest(http.MethodGet, "/api/pokedex/%20charmander", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	RequireParam("pokemonName")(next).ServeHTTP(rec, req)

	if handlerCalled {
		t.Error("handler should not run when the param is invalid")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequireParam_PassesValidParam(t *testing.T) {
	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("pokemonName", "charmander")

	req := httptest.NewRequest(http.MethodGet, "/api/pokedex/charmander", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	RequireParam("pokemonName")(next).ServeHTTP(rec, req)

	if !handlerCalled {
		t.Error("handler should run for a valid param")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
