package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler reports process and database status.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	database := "connected"
	if sqlDB, err := h.db.DB(); err != nil {
		database = "unreachable"
	} else if err := sqlDB.PingContext(c.Request().Context()); err != nil {
		database = "unreachable"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Server is running",
		"database":  database,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
