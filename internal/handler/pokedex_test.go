package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ixcomercio/recognitions/internal/apperr"
)

type stubPokedexClient struct {
	payload  json.RawMessage
	err      error
	lastName string
}

func (s *stubPokedexClient) Kanto(context.Context, http.Header) (json.RawMessage, error) {
	return s.payload, s.err
}

func (s *stubPokedexClient) Pokemon(_ context.Context, name string, _ http.Header) (json.RawMessage, error) {
	s.lastName = name
	return s.payload, s.err
}

func newPokedexRouter(client PokedexClient) http.Handler {
	h := NewPokedexHandler(client, testLogger())
	r := chi.NewRouter()
	r.Get("/api/pokedex", h.Kanto)
	r.Get("/api/pokedex/{pokemonName}", h.Pokemon)
	return r
}

func TestPokedexKanto(t *testing.T) {
	client := &stubPokedexClient{payload: json.RawMessage(`{"name":"kanto"}`)}
	router := newPokedexRouter(client)

	req := httptest.NewRequest(http.MethodGet, "/api/pokedex", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"result":{"name":"kanto"}`) {
		t.Errorf("upstream payload not enveloped: %s", rec.Body.String())
	}
}

func TestPokedexPokemon(t *testing.T) {
	client := &stubPokedexClient{payload: json.RawMessage(`{"name":"pikachu"}`)}
	router := newPokedexRouter(client)

	req := httptest.NewRequest(http.MethodGet, "/api/pokedex/pikachu", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if client.lastName != "pikachu" {
		t.Errorf("expected name forwarded, got %q", client.lastName)
	}
}

func TestPokedexUpstreamFailure(t *testing.T) {
	client := &stubPokedexClient{
		err: apperr.Upstream("upstream call to /pokedex/kanto failed", "ETIMEDOUT", "pokeapi", "get", nil),
	}
	router := newPokedexRouter(client)

	req := httptest.NewRequest(http.MethodGet, "/api/pokedex", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ERROR" {
		t.Errorf("expected status ERROR, got %v", body["status"])
	}
	if body["message"] != "upstream call to /pokedex/kanto failed" {
		t.Errorf("unexpected message %v", body["message"])
	}
}
