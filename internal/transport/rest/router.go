package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/apontae/timesheet-management/internal/approval"
	"github.com/apontae/timesheet-management/internal/auth"
	"github.com/apontae/timesheet-management/internal/catalog"
	"github.com/apontae/timesheet-management/internal/timeentry"
	"github.com/apontae/timesheet-management/internal/transport/middleware"
	"github.com/apontae/timesheet-management/internal/transport/swagger"
	"github.com/apontae/timesheet-management/internal/user"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, entryHandler *timeentry.Handler, approvalHandler *approval.Handler, catalogHandler *catalog.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Post("/auth/login", authHandler.Login)
		}

		if authHandler == nil {
			return
		}

		// Protected routes
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			if userHandler != nil {
				pr.Get("/users/me", userHandler.GetCurrentUser)
			}

			if catalogHandler != nil {
				pr.Route("/catalog", func(cr chi.Router) {
					cr.Get("/clients", catalogHandler.GetClients)
					cr.Get("/clients/{clientID}/campaigns", catalogHandler.GetCampaigns)
					cr.Get("/campaigns/{campaignID}/tasks", catalogHandler.GetTasks)
				})
			}

			if entryHandler != nil {
				pr.Route("/time-entries", func(er chi.Router) {
					er.Post("/", entryHandler.CreateEntry)
					er.Get("/user", entryHandler.GetUserEntries)
					if approvalHandler != nil {
						er.Get("/user/week", approvalHandler.GetUserWeek)
						er.Get("/validation-count", approvalHandler.GetValidationCount)
					}
					er.Get("/{id}", entryHandler.GetEntry)
					er.Patch("/{id}", entryHandler.UpdateHours)
					er.Delete("/{id}", entryHandler.DeleteEntry)
					er.Post("/{id}/submit", entryHandler.SubmitEntry)

					// Manager routes
					er.Group(func(mr chi.Router) {
						mr.Use(authHandler.RequireManager)
						mr.Post("/{id}/approve", entryHandler.ApproveEntry)
						mr.Post("/{id}/return-to-draft", entryHandler.ReturnToDraft)
					})
				})
			}

			if approvalHandler != nil {
				pr.Route("/approvals", func(ar chi.Router) {
					ar.Use(authHandler.RequireManager)
					ar.Get("/pending", approvalHandler.GetPending)
					ar.Post("/batch", approvalHandler.ProcessBatch)
				})
			}
		})
	})
}
