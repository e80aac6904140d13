package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
)

type RouterConfig struct {
	Leads       *LeadHandler
	Meetings    *MeetingHandler
	Related     *RelatedHandler
	Lookups     *LookupHandler
	Health      *HealthHandler
	CORSOrigins []string
	// Limiter, when set, guards every route that writes.
	Limiter *middleware.RateLimiter
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
	}))

	r.Get("/health", cfg.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/leads", cfg.Leads.List)
	r.Get("/leads/{id}", cfg.Leads.Detail)
	r.Get("/records/{id}/meetings", cfg.Meetings.List)
	r.Get("/meetings/{id}/remarks", cfg.Meetings.ListRemarks)
	r.Get("/records/{id}/attachments", cfg.Related.ListAttachments)
	r.Get("/records/{id}/notes", cfg.Related.ListNotes)
	r.Get("/records/{id}/reminders", cfg.Related.ListReminders)
	r.Get("/lookups", cfg.Lookups.Kinds)
	r.Get("/lookups/{kind}", cfg.Lookups.Get)

	r.Group(func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(cfg.Limiter.Handler)
		}
		r.Patch("/leads/{id}", cfg.Leads.Update)
		r.Put("/leads/{id}/status", cfg.Leads.ChangeStatus)
		r.Post("/leads/{id}/convert", cfg.Leads.Convert)
		r.Post("/records/{id}/meetings", cfg.Meetings.Schedule)
		r.Put("/meetings/{id}", cfg.Meetings.Edit)
		r.Put("/meetings/{id}/status", cfg.Meetings.ChangeStatus)
		r.Post("/meetings/{id}/remarks", cfg.Meetings.AddRemark)
		r.Post("/records/{id}/attachments", cfg.Related.UploadAttachment)
		r.Post("/records/{id}/notes", cfg.Related.AddNote)
		r.Delete("/notes/{id}", cfg.Related.DeleteNote)
		r.Post("/records/{id}/reminders", cfg.Related.AddReminder)
		r.Put("/reminders/{id}/done", cfg.Related.MarkReminderDone)
	})

	return r
}
