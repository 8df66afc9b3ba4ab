// Package main is the entrypoint for the recognitions API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ixcomercio/recognitions/internal/config"
	"github.com/ixcomercio/recognitions/internal/handler"
	"github.com/ixcomercio/recognitions/internal/mailer"
	"github.com/ixcomercio/recognitions/internal/metrics"
	"github.com/ixcomercio/recognitions/internal/middleware"
	"github.com/ixcomercio/recognitions/internal/pokeapi"
	"github.com/ixcomercio/recognitions/internal/repository"
	"github.com/ixcomercio/recognitions/internal/server"
	"github.com/ixcomercio/recognitions/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database",
			slog.String("error", err.Error()),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// The mailer is a soft dependency: when SES cannot be initialized the
	// API still serves, recognitions are created without notifications.
	var recognitionMailer service.Mailer
	if sesMailer, err := mailer.New(ctx, cfg); err != nil {
		logger.Warn("mailer disabled, notifications will be skipped", "error", err)
	} else {
		recognitionMailer = sesMailer
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, using UTC", "timezone", cfg.Timezone)
		loc = time.UTC
	}

	metricsRecorder := metrics.NewInMemory()
	pokeClient := pokeapi.NewClient(cfg.PokemonURL, metricsRecorder)

	personaService := service.NewPersonaService(repo)
	certTypeService := service.NewCertTypeService(repo)
	recognitionService := service.NewRecognitionService(
		repo, repo, repo,
		recognitionMailer,
		logger,
		metricsRecorder,
		service.RecognitionOptions{
			VerificationBase: cfg.VerificationBase,
			Location:         loc,
		},
	)

	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo)
	personaHandler := handler.NewPersonaHandler(personaService, logger)
	certTypeHandler := handler.NewCertTypeHandler(certTypeService, logger)
	recognitionHandler := handler.NewRecognitionHandler(recognitionService, logger)
	pokedexHandler := handler.NewPokedexHandler(pokeClient, logger)

	r := setupRouter(h, healthHandler, personaHandler, certTypeHandler, recognitionHandler, pokedexHandler, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"pokemon_url", cfg.PokemonURL,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	personaHandler *handler.PersonaHandler,
	certTypeHandler *handler.CertTypeHandler,
	recognitionHandler *handler.RecognitionHandler,
	pokedexHandler *handler.PokedexHandler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	// Readiness probe stays outside the header gate.
	r.Get("/readyz", healthHandler.Readyz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthcheck", healthHandler.Healthcheck)

		// Every business route requires the caller identity headers.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireHeaders(middleware.BaseHeaders...))

			r.Route("/persona", func(r chi.Router) {
				r.Post("/", personaHandler.Create)
				r.Get("/", personaHandler.GetAll)
				r.With(middleware.RequireParam("email")).Get("/{email}", personaHandler.GetByEmail)
				r.With(middleware.RequireParam("email")).Put("/{email}", personaHandler.Update)
				r.With(middleware.RequireParam("email")).Delete("/{email}", personaHandler.Delete)
			})

			r.Route("/cert-type", func(r chi.Router) {
				r.Post("/", certTypeHandler.Create)
				r.Get("/", certTypeHandler.GetAll)
				r.With(middleware.RequireParam("tipo")).Get("/tipo/{tipo}", certTypeHandler.GetByTipo)
				r.With(middleware.RequireParam("id")).Get("/{id}", certTypeHandler.GetByID)
				r.With(middleware.RequireParam("id")).Put("/{id}", certTypeHandler.Update)
				r.With(middleware.RequireParam("id")).Delete("/{id}", certTypeHandler.Delete)
			})

			r.Route("/reconocimiento", func(r chi.Router) {
				r.Post("/", recognitionHandler.Create)
				r.Get("/", recognitionHandler.GetAll)
				r.Get("/stats", recognitionHandler.Stats)
				r.With(middleware.RequireParam("nombre_colaborador")).
					Get("/colaborador/{nombre_colaborador}", recognitionHandler.GetByColaborador)
				r.With(middleware.RequireParam("cert_type_id")).
					Get("/cert-type/{cert_type_id}", recognitionHandler.GetByCertTypeID)
				r.With(middleware.RequireParam("tipo")).
					Get("/tipo/{tipo}", recognitionHandler.GetByTipo)
				r.With(middleware.RequireParam("id")).Get("/{id}", recognitionHandler.GetByID)
				r.With(middleware.RequireParam("id")).Put("/{id}", recognitionHandler.Update)
				r.With(middleware.RequireParam("id")).Delete("/{id}", recognitionHandler.Delete)
			})
		})

		// The Pokédex proxy requires the full header contract of the
		// upstream service.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireHeaders(middleware.ProxyHeaders...))

			r.Get("/pokedex", pokedexHandler.Kanto)
			r.With(middleware.RequireParam("pokemonName")).
				Get("/pokedex/{pokemonName}", pokedexHandler.Pokemon)
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

// redactURL strips credentials from a connection URL before logging.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		if username := parsed.User.Username(); username != "" {
			parsed.User = url.User(username)
		} else {
			parsed.User = url.User("redacted")
		}
	}

	return parsed.String()
}
