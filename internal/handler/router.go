package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/infra/observability"
	"github.com/boddenberg/ardesk-go/internal/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

const healthCheckTimeout = 3 * time.Second

// NewRouter creates the web front: the two desk pages plus the operational
// endpoints. A nil API disables the pages and the dependency check.
func NewRouter(customers port.CustomerAPI, receivables port.ReceivableAPI, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(customers, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	if customers == nil || receivables == nil {
		return r
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/clientes", http.StatusFound)
	})

	// --- Clientes ---
	r.Route("/clientes", func(r chi.Router) {
		r.Get("/", customersPageHandler(customers, metrics, logger))
		r.Post("/", createCustomerHandler(customers, metrics, logger))
		r.Post("/{id}/excluir", deleteCustomerHandler(customers, metrics, logger))
	})

	// --- Contas a receber ---
	r.Route("/contas-receber", func(r chi.Router) {
		r.Get("/", receivablesPageHandler(customers, receivables, metrics, logger))
		r.Post("/", createReceivableHandler(customers, receivables, metrics, logger))
		r.Post("/{id}/receber", receiveHandler(customers, receivables, metrics, logger))
	})

	return r
}

func healthzHandler(customers port.CustomerAPI, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().Format(time.RFC3339)
		services := []domain.ServiceHealth{
			{Name: "ardesk", Status: "healthy", LastChecked: now},
		}

		if customers != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			defer cancel()

			start := time.Now()
			_, err := customers.ListCustomers(ctx)
			check := domain.ServiceHealth{
				Name:        "receivables-api",
				Status:      "healthy",
				LatencyMs:   time.Since(start).Milliseconds(),
				LastChecked: now,
			}
			if err != nil {
				logger.Warn("receivables API health check failed", zap.Error(err))
				check.Status = "degraded"
				check.Error = domain.ErrorKind(err)
			}
			services = append(services, check)
		}

		overall := "healthy"
		for _, s := range services {
			if s.Status != "healthy" {
				overall = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{Status: overall, Services: services})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
