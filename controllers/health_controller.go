package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newsdesk/global"
)

// Health provides an unauthenticated liveness endpoint for container orchestrators.
func Health(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := global.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().UTC(),
	})
}
