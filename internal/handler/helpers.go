package handler

import (
	"errors"
	"net/http"
	"strconv"

	"productivity_tracker/internal/middleware"
	"productivity_tracker/internal/query"

	"github.com/gin-gonic/gin"
)

// authIdentity pulls the caller identity set by the JWT middleware. A
// missing identity means the middleware did not run; treat as 401.
func authIdentity(c *gin.Context) (query.Identity, bool) {
	ident, ok := middleware.AuthIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return query.Identity{}, false
	}
	return ident, true
}

// pathID parses the :id path segment. A malformed id is a validation
// failure, not a not-found.
func pathID(c *gin.Context, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + label + " ID"})
		return 0, false
	}
	return id, true
}

// badRequest writes the 400 response for a filter/pagination parse
// failure.
func badRequest(c *gin.Context, err error) {
	var ve *query.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Msg})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
}
