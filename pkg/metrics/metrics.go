// Package metrics provides Prometheus instrumentation.
//
// Wire it up once in the HTTP kernel:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "foodnest",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodnest",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "foodnest",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// UsersRegistered counts successful registrations by role.
	UsersRegistered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodnest",
			Subsystem: "accounts",
			Name:      "registrations_total",
			Help:      "Total successful user registrations.",
		},
		[]string{"role"},
	)

	// LoginFailures counts rejected login attempts.
	LoginFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "foodnest",
		Subsystem: "accounts",
		Name:      "login_failures_total",
		Help:      "Total rejected login attempts.",
	})

	// OrdersCreated counts orders placed.
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "foodnest",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Total orders placed.",
	})

	// OrderValue observes the total price of each placed order.
	OrderValue = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "foodnest",
		Subsystem: "orders",
		Name:      "value",
		Help:      "Total price of placed orders.",
		Buckets:   []float64{10, 50, 100, 500, 1_000, 5_000, 10_000},
	})

	// ProductsCreated counts catalog listings created, by category.
	ProductsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodnest",
			Subsystem: "catalog",
			Name:      "products_created_total",
			Help:      "Total products listed.",
		},
		[]string{"category"},
	)
)

// DefaultRegistry is the Prometheus registry used by the application.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	// Go runtime metrics (GC, goroutines, memory)
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	// OS process metrics (CPU, open FDs)
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		UsersRegistered,
		LoginFailures,
		OrdersCreated,
		OrderValue,
		ProductsCreated,
	)
}

// MustRegister adds custom collectors to the application registry.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// responseRecorder wraps http.ResponseWriter to capture status code and size.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Middleware records duration, total and in-flight metrics for every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path // raw path; normalize in high-cardinality APIs

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler exposes the Prometheus metrics page. Mount it on GET /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}
