package handlers

import (
	"errors"
	"io"
	"net/http"

	"macro-sim/internal/api/models"

	"github.com/gin-gonic/gin"
)

func abortWithError(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// bindOptionalJSON binds the request body into dst. An empty body leaves
// dst unchanged.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return false
	}
	return true
}
