package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Health HealthService
	API    *APIHandlers
}

// NewRouter wires the HTTP routes exposed by the teller API.
func NewRouter(logger *slog.Logger, deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(requestID)
	r.Use(requestLogging(logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := map[string]any{
			"status": "ok",
		}

		if deps.Health != nil {
			if err := deps.Health.Probe(ctx); err != nil {
				logger.Error("health probe failed", "error", err)
				status = http.StatusServiceUnavailable
				payload["status"] = "degraded"
				payload["error"] = err.Error()
			}
		}

		respondJSON(w, status, payload)
	})

	if deps.API != nil {
		api := deps.API
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", api.openAccount)
			r.Post("/close", api.closeHolder)
			r.Post("/{number}/deposit", api.deposit)
			r.Post("/{number}/withdraw", api.withdraw)
			r.Delete("/{number}", api.closeAccount)
		})
		r.Get("/reports/{kind}", api.report)
		r.Get("/snapshot", api.snapshot)
		r.Post("/batch/accounts", api.loadAccounts)
		r.Post("/batch/activities", api.processActivities)
		r.Get("/analytics/branches/{branch}/holders", api.branchHolders)
	}

	return r
}
