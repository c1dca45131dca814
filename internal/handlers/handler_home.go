package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome godoc
// @Summary Service banner
// @Description Returns a small identification payload for smoke tests
// @Tags home
// @Produce json
// @Success 200 {object} map[string]string
// @Router /home [get]
func GetHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "leaseflow-backend",
		"status":  "ok",
	})
}
