// health.go — обработчики служебных endpoints.
// /api/health — liveness probe (процесс жив)
// /api/ready — readiness probe (PostgreSQL доступен)
// /metrics — Prometheus метрики
package handlers

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigkaa/gofilereg/internal/config"
)

// ReadinessChecker — интерфейс проверки готовности зависимости.
type ReadinessChecker interface {
	// CheckReady возвращает статус ("ok", "fail") и сообщение.
	CheckReady() (status string, message string)
}

// HealthHandler — обработчик служебных endpoints.
type HealthHandler struct {
	pgChecker   ReadinessChecker
	promHandler http.Handler
}

// NewHealthHandler создаёт обработчик служебных endpoints.
// pgChecker может быть nil (readiness вернёт "fail").
func NewHealthHandler(pgChecker ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		pgChecker:   pgChecker,
		promHandler: promhttp.Handler(),
	}
}

// healthCheckResult — результат проверки одной зависимости.
type healthCheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// healthResponse — ответ liveness probe.
type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

// readyResponse — ответ readiness probe.
type readyResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
	Checks    struct {
		PostgreSQL healthCheckResult `json:"postgresql"`
	} `json:"checks"`
}

// Health — GET /api/health. Возвращает 200, если процесс жив.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   "filereg",
	})
}

// Ready — GET /api/ready. Возвращает 200, если PostgreSQL доступен,
// иначе 503.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	resp := readyResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   "filereg",
	}

	if h.pgChecker == nil {
		resp.Checks.PostgreSQL = healthCheckResult{Status: "fail", Message: "проверка не инициализирована"}
	} else {
		status, message := h.pgChecker.CheckReady()
		resp.Checks.PostgreSQL = healthCheckResult{Status: status, Message: message}
	}

	code := http.StatusOK
	if resp.Checks.PostgreSQL.Status != "ok" {
		resp.Status = "FAIL"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, resp)
}

// Metrics — GET /metrics. Prometheus метрики.
func (h *HealthHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}
