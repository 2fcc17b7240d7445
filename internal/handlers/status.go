package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Student Portfolio API",
		"version": "0.1.0",
		"status":  "operational",
	})
}
