package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lumen-api/internal/api"
	apiMiddleware "github.com/phrazzld/lumen-api/internal/api/middleware"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(app.requestLogger)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(app.metrics.Middleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	r.Mount("/api", api.Routes(app.services, authMiddleware, app.logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", app.metrics.Handler())

	// Audio written to local disk is served from here; GCS objects are public.
	if app.localMedia != nil {
		files := http.FileServer(http.Dir(app.localMedia.Dir()))
		r.Handle("/media/*", http.StripPrefix("/media/", files))
	}

	return r
}

// requestLogger stores the application logger, tagged with chi's request id,
// in the request context for handlers and services further down.
func (app *application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := app.logger
		if id := middleware.GetReqID(r.Context()); id != "" {
			log = log.With(slog.String("request_id", id))
		}
		next.ServeHTTP(w, r.WithContext(logger.WithLogger(r.Context(), log)))
	})
}
