package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ServiceInfo identifies the running catalog instance in probe
// responses, including which policy variant and book route table this
// deployment serves.
type ServiceInfo struct {
	Name       string
	Version    string
	Policy     string
	BookRoutes string
}

type HealthHandler struct {
	db        *gorm.DB
	info      ServiceInfo
	startTime time.Time
}

func NewHealthHandler(db *gorm.DB, info ServiceInfo, startTime time.Time) *HealthHandler {
	return &HealthHandler{
		db:        db,
		info:      info,
		startTime: startTime,
	}
}

func (h *HealthHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
}

type HealthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

type ReadyResponse struct {
	HealthResponse
	Policy     string `json:"policy"`
	BookRoutes string `json:"book_routes"`
	Database   string `json:"database"`
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:        "ok",
		Service:       h.info.Name,
		Version:       h.info.Version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	resp := ReadyResponse{
		HealthResponse: HealthResponse{
			Status:        "ready",
			Service:       h.info.Name,
			Version:       h.info.Version,
			UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		},
		Policy:     h.info.Policy,
		BookRoutes: h.info.BookRoutes,
		Database:   "up",
	}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		resp.Status = "unavailable"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
