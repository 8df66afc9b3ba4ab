package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindsCarryFixedStatusAndCode(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		wantStatus int
		wantCode   string
		wantKind   Kind
	}{
		{
			name:       "header error",
			err:        Header("missing header x-commerce", "middleware", "CheckHeaders"),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeHeader,
			wantKind:   KindHeader,
		},
		{
			name:       "param error",
			err:        Param("missing params object in the request", "middleware", "CheckParam"),
			wantStatus: http.StatusForbidden,
			wantCode:   CodeParam,
			wantKind:   KindParam,
		},
		{
			name:       "generic error",
			err:        Generic("insert failed", "repository", "CreateRecognition", errors.New("boom")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeGeneric,
			wantKind:   KindGeneric,
		},
		{
			name:       "upstream error",
			err:        Upstream("pokedex call failed", "ECONNREFUSED", "pokeapi", "Kanto", errors.New("dial tcp")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "ECONNREFUSED",
			wantKind:   KindUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, want %d", tt.err.HTTPStatus, tt.wantStatus)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", tt.err.Kind, tt.wantKind)
			}
		})
	}
}

func TestStatusOf_UntypedDefaultsTo500(t *testing.T) {
	if got := StatusOf(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("StatusOf(plain) = %d, want 500", got)
	}
}

func TestStatusOf_Wrapped(t *testing.T) {
	inner := Param("missing or invalid parameter pokemonName", "middleware", "CheckParam")
	wrapped := fmt.Errorf("gate: %w", inner)

	if got := StatusOf(wrapped); got != http.StatusForbidden {
		t.Errorf("StatusOf(wrapped param) = %d, want 403", got)
	}
	if got := MessageOf(wrapped); got != "missing or invalid parameter pokemonName" {
		t.Errorf("MessageOf(wrapped param) = %q", got)
	}
}

func TestErrorStringIncludesOrigin(t *testing.T) {
	err := Generic("insert failed", "repository", "CreateRecognition", errors.New("boom"))
	want := "repository: CreateRecognition: insert failed: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Upstream("pokedex call failed", "ECONNRESET", "pokeapi", "Kanto", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}
