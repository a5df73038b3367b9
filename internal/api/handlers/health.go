package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/pkg/utils"
)

type HealthHandler struct {
	db      *sql.DB
	version string
	started time.Time
}

func NewHealthHandler(db *sql.DB, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version, started: time.Now()}
}

// Health reports service liveness and database reachability
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if err := h.db.PingContext(r.Context()); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, code, map[string]interface{}{
		"status":   status,
		"database": dbStatus,
		"version":  h.version,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	})
}
