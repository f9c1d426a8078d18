package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kingcapco/salesops-backend/api/controllers"
	designcontrollers "github.com/kingcapco/salesops-backend/api/controllers/designs"
	quotecontrollers "github.com/kingcapco/salesops-backend/api/controllers/quotes"
	"github.com/kingcapco/salesops-backend/api/middleware"
	"github.com/kingcapco/salesops-backend/internal/designquotes"
	"github.com/kingcapco/salesops-backend/internal/export"
	"github.com/kingcapco/salesops-backend/internal/pricing"
	"github.com/kingcapco/salesops-backend/pkg/config"
	"github.com/kingcapco/salesops-backend/pkg/db"
	"github.com/kingcapco/salesops-backend/pkg/logger"
	"github.com/kingcapco/salesops-backend/pkg/metrics"
	"github.com/kingcapco/salesops-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	engine *pricing.Engine,
	designService designquotes.Service,
	exporter *export.Exporter,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	// A typed-nil client would slip past the middleware's own nil check.
	exportLimit := func(next http.Handler) http.Handler { return next }
	if redisClient != nil {
		exportLimit = middleware.ExportRateLimit(cfg.ExportRateLimit, redisClient, logg)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/options", quotecontrollers.Options(engine, logg))
			r.Post("/domestic", quotecontrollers.Domestic(engine, logg))
			r.Post("/overseas", quotecontrollers.Overseas(engine, logg))

			r.Group(func(r chi.Router) {
				r.Use(exportLimit)
				r.Post("/domestic/export", quotecontrollers.DomesticExport(exporter, logg))
				r.Post("/overseas/export", quotecontrollers.OverseasExport(exporter, logg))
				r.Post("/sheet/export", quotecontrollers.SheetExport(exporter, logg))
			})
		})

		r.Route("/designs", func(r chi.Router) {
			r.Post("/", designcontrollers.Create(designService, logg))
			r.Get("/", designcontrollers.List(designService, logg))
			r.Route("/{designId}", func(r chi.Router) {
				r.Get("/", designcontrollers.Get(designService, logg))
				r.Delete("/", designcontrollers.Delete(designService, logg))
				r.Route("/quote", func(r chi.Router) {
					r.Post("/", designcontrollers.SaveQuote(designService, logg))
					r.Patch("/", designcontrollers.PatchQuote(designService, logg))
					r.Get("/", designcontrollers.GetQuote(designService, logg))
					r.Delete("/", designcontrollers.DeleteQuote(designService, logg))
					r.With(exportLimit).Get("/export", designcontrollers.ExportQuote(designService, exporter, logg))
				})
			})
		})
	})

	return r
}
