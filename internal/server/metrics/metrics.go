// metrics - пакет с Prometheus метриками сервера.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Значения метки result для счетчиков входа и регистрации.
const (
	ResultSuccess      = "success"
	ResultInvalidInput = "invalid_input"
	ResultRejected     = "rejected"
	ResultError        = "error"
)

// Решения шага проверки доступа.
const (
	DecisionAllow     = "allow"
	DecisionNoToken   = "no_token"
	DecisionInvalid   = "invalid_token"
	DecisionForbidden = "forbidden"
)

var (
	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badgegate_logins_total",
			Help: "Login attempts by result.",
		},
		[]string{"result"},
	)

	signups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badgegate_signups_total",
			Help: "Sign-up attempts by result.",
		},
		[]string{"result"},
	)

	gateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badgegate_gate_decisions_total",
			Help: "Protected resource access decisions.",
		},
		[]string{"decision"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

var registerOnce sync.Once

// Init - регистрирует метрики в default-регистре. Повторный вызов ничего не делает.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(logins, signups, gateDecisions, httpRequestsTotal, httpRequestDuration)
	})
}

// Handler - хэндлер Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Login - учитывает попытку входа.
func Login(result string) {
	logins.WithLabelValues(result).Inc()
}

// SignUp - учитывает попытку регистрации.
func SignUp(result string) {
	signups.WithLabelValues(result).Inc()
}

// Gate - учитывает решение о доступе к защищенному ресурсу.
func Gate(decision string) {
	gateDecisions.WithLabelValues(decision).Inc()
}

// Instrument - middleware для измерения количества и длительности запросов.
// В качестве метки используется шаблон маршрута chi, чтобы идентификаторы не раздували кардинальность.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
	})
}

// statusWriter - запоминает код ответа.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
