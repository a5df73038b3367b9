package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SergioM098/Monitoring-proyect/internal/api/handlers"
	"github.com/SergioM098/Monitoring-proyect/internal/api/middleware"
	"github.com/SergioM098/Monitoring-proyect/internal/events"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/metrics"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Target       *handlers.TargetHandler
	Incident     *handlers.IncidentHandler
	Notification *handlers.NotificationHandler
	Status       *handlers.StatusHandler
	Events       *events.Hub
}

func New(log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(metrics.Middleware)
	r.Use(middleware.RateLimit(100, 200))

	r.Get("/health", h.Health.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/events", h.Events.ServeHTTP)

	// Public status pages
	r.Get("/status/{slug}", h.Status.Get)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/targets", func(r chi.Router) {
			r.Get("/", h.Target.List)
			r.Post("/", h.Target.Create)
			r.Get("/{id}", h.Target.Get)
			r.Patch("/{id}", h.Target.Update)
			r.Delete("/{id}", h.Target.Delete)
			r.Post("/{id}/enable", h.Target.Enable)
			r.Post("/{id}/disable", h.Target.Disable)
			r.Post("/{id}/check", h.Target.CheckNow)
			r.Get("/{id}/checks", h.Target.ListChecks)
			r.Get("/{id}/incidents", h.Incident.ListByTarget)
		})

		r.Route("/incidents", func(r chi.Router) {
			r.Get("/", h.Incident.List)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/rules", h.Notification.ListRules)
			r.Post("/rules", h.Notification.CreateRule)
			r.Delete("/rules/{id}", h.Notification.DeleteRule)
			r.Get("/logs", h.Notification.ListLogs)
		})
	})

	return r
}
