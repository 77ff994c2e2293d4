package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is set from the build version at startup
var Version = "dev"

// ErrorResponse is the error body returned by all handlers
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the health check body
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HealthCheck godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}
