package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BotUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "academiabot", Name: "updates_total", Help: "Actualizaciones de Telegram procesadas",
	})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "academiabot", Name: "handler_errors_total", Help: "Errores en handlers",
	})
	APIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "academiabot", Name: "api_requests_total", Help: "Peticiones al backend de la academia",
	}, []string{"endpoint", "status"})
	APILatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "academiabot", Name: "api_request_seconds", Help: "Latencia de peticiones al backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	ListCargasDescartadas = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "academiabot", Name: "list_stale_loads_total", Help: "Respuestas de lista descartadas por llegar tarde",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "academiabot", Name: "db_ping_seconds", Help: "Latencia de ping a la base",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(BotUpdates, HandlerErrors, APIRequests, APILatency, ListCargasDescartadas, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

func ObserveAPI(endpoint, status string, d time.Duration) {
	APIRequests.WithLabelValues(endpoint, status).Inc()
	APILatency.WithLabelValues(endpoint).Observe(d.Seconds())
}
