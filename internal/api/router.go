package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/samandr77/microservices/helpdesk/docs" //nolint:revive,nolintlint

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	router := chi.NewRouter()

	router.Use(mw.Log, mw.Recover, mw.Cors, mw.WithIP, mw.Metrics)

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Get("/health", h.Health)
			r.Get("/readiness", h.Readiness)
			r.Get("/swagger/*", httpSwagger.WrapHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth)

			r.Get("/session", h.Session)
			r.Post("/session/refresh", h.RefreshSession)
			r.Get("/permissions", h.Permissions)
			r.Get("/permissions/check", h.CheckPermission)

			r.Route("/tickets", func(r chi.Router) {
				r.Use(mw.RequireModule(entity.ModuleTickets))

				r.Get("/", h.ListTickets)
				r.Post("/", h.CreateTicket)
				r.Get("/{ticketID}", h.GetTicket)
				r.Put("/{ticketID}", h.UpdateTicket)
				r.Delete("/{ticketID}", h.DeleteTicket)

				r.Get("/{ticketID}/comments", h.TicketComments)
				r.Post("/{ticketID}/comments", h.AddComment)
				r.Get("/{ticketID}/comments/summary", h.CommentsSummary)
			})

			r.With(mw.RequireModule(entity.ModuleUsers)).Get("/users", h.ListUsers)
			r.Put("/users/{userID}/role", h.UpdateUserRole)

			r.With(mw.RequireModule(entity.ModuleEmployees)).Get("/employees", h.ListEmployees)
			r.With(mw.RequireModule(entity.ModuleDashboard)).Get("/dashboard", h.Dashboard)

			r.With(mw.RequireModule(entity.ModuleAIAssistant)).Post("/ai/chat", h.Chat)
		})
	})

	return router
}
