package handlers

import (
	"SanteSenegal/utils"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
)

// respondError maps the typed service error kinds to HTTP status codes.
// Unknown errors are logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case utils.IsNotFound(err):
		c.JSON(404, gin.H{"error": err.Error()})
	case utils.IsConflict(err):
		c.JSON(409, gin.H{"error": err.Error()})
	case utils.IsValidation(err), utils.IsIllegalState(err):
		c.JSON(400, gin.H{"error": err.Error()})
	default:
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(500, gin.H{"error": "internal server error"})
	}
}

// paramID parses a numeric path parameter, writing a 400 on failure.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// queryID parses an optional numeric query parameter into a *int64.
func queryID(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid " + name})
		return nil, false
	}
	return &id, true
}
