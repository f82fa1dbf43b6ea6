// Package controller provides the HTTP request handlers of the Atelier
// API: auth, catalog, gallery, counters and the admin endpoints.
package controller

import (
	"github.com/gin-gonic/gin"
)

// jsonError sends the contract's error body with the given status.
func jsonError(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, gin.H{"error": msg})
}

// jsonOk sends the contract's success body with the given status.
func jsonOk(c *gin.Context, statusCode int) {
	c.JSON(statusCode, gin.H{"ok": true})
}
