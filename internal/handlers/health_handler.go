package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health responde el liveness check.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "name": "Import Export Hub API"})
}
