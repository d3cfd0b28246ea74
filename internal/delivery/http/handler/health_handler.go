package handler

import (
	"context"
	"net/http"
	"time"

	"see-a-doctor/pkg/response"

	"github.com/sirupsen/logrus"
)

// Pinger is satisfied by a thin adapter over *sql.DB or *redis.Client
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	log      *logrus.Logger
	database Pinger
	cache    Pinger
}

// NewHealthHandler takes a nil cache when Redis is not configured
func NewHealthHandler(log *logrus.Logger, database, cache Pinger) *HealthHandler {
	return &HealthHandler{
		log:      log,
		database: database,
		cache:    cache,
	}
}

type readiness struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}

// Ready fails when Postgres is unreachable. A Redis outage reports "degraded".
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := readiness{Status: "ok", Database: "up", Cache: "up"}

	if err := h.database.Ping(ctx); err != nil {
		h.log.Warnf("Readiness: database ping failed: %+v", err)
		status.Status = "down"
		status.Database = "down"
	}

	if h.cache == nil {
		status.Cache = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		h.log.Warnf("Readiness: redis ping failed: %+v", err)
		status.Cache = "down"
		if status.Status == "ok" {
			status.Status = "degraded"
		}
	}

	if status.Database == "down" {
		response.JSON(w, http.StatusServiceUnavailable, response.Response{
			Success: false,
			Message: "Database unavailable",
			Data:    status,
		})
		return
	}

	response.Success(w, http.StatusOK, status.Status, status)
}
