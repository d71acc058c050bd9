package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	Transitions         *prometheus.CounterVec
	RejectedTransitions *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec
	AutoAccepted        prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorhub_order_transitions_total",
		Help: "Order status changes stored.",
	}, []string{"from", "to"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorhub_order_transition_rejected_total",
		Help: "Order status changes refused by the workflow.",
	}, []string{"from", "to"})
	notifyFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorhub_notifications_failed_total",
		Help: "Status events a sink failed to deliver.",
	}, []string{"sink"})
	autoAccepted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vendorhub_auto_accepted_total",
		Help: "Orders accepted by the auto-accept worker.",
	})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vendorhub_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "code"})

	r.MustRegister(
		transitions, rejected, notifyFailed, autoAccepted, duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:                 r,
		Transitions:         transitions,
		RejectedTransitions: rejected,
		NotificationsFailed: notifyFailed,
		AutoAccepted:        autoAccepted,
		RequestDuration:     duration,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// Middleware records request latency labelled by the chi route pattern, so
// /api/orders/{id} is one series rather than one per order.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.RequestDuration.
			WithLabelValues(req.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
