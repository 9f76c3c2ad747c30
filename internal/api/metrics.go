package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "qarzdaftar",
	Name:      "http_requests_total",
	Help:      "HTTP requests by method, route pattern and status code.",
}, []string{"method", "route", "status"})

var httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "qarzdaftar",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request latency by route pattern.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route"})

var debtsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "qarzdaftar",
	Name:      "debts_created_total",
	Help:      "Debt records created.",
})

var paymentsCommitted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "qarzdaftar",
	Name:      "payments_committed_total",
	Help:      "Debts settled into the payment history.",
})

var exportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "qarzdaftar",
	Name:      "exports_generated_total",
	Help:      "CSV ledger exports served.",
})

// metricsMiddleware records request counts and latency per chi route pattern,
// so path parameters do not explode the label space.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
