package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PokedexClient is the upstream surface the pokedex handler needs.
type PokedexClient interface {
	Kanto(ctx context.Context, inbound http.Header) (json.RawMessage, error)
	Pokemon(ctx context.Context, name string, inbound http.Header) (json.RawMessage, error)
}

// PokedexHandler proxies requests to the upstream Pokédex API.
type PokedexHandler struct {
	client PokedexClient
	logger *slog.Logger
}

// NewPokedexHandler creates a new PokedexHandler.
func NewPokedexHandler(client PokedexClient, logger *slog.Logger) *PokedexHandler {
	return &PokedexHandler{client: client, logger: logger}
}

// Kanto handles GET /api/pokedex.
func (h *PokedexHandler) Kanto(w http.ResponseWriter, r *http.Request) {
	payload, err := h.client.Kanto(r.Context(), r.Header)
	if err != nil {
		h.logger.Error("pokedex upstream call failed", "error", err)
		writeServiceError(w, "pokedex", err)
		return
	}
	writeResult(w, http.StatusOK, payload)
}

// Pokemon handles GET /api/pokedex/{pokemonName}.
func (h *PokedexHandler) Pokemon(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "pokemonName")

	payload, err := h.client.Pokemon(r.Context(), name, r.Header)
	if err != nil {
		h.logger.Error("pokedex upstream call failed", "pokemon", name, "error", err)
		writeServiceError(w, "pokedex", err)
		return
	}
	writeResult(w, http.StatusOK, payload)
}
