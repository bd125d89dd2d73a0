package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/imagetags/internal/common"
	"github.com/dmitrijs2005/imagetags/internal/server/services"
	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

type errorResponse struct {
	Error string `json:"error"`
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

// fail maps a service error onto the HTTP error contract. Client-correctable
// errors are returned verbatim; anything else is logged and hidden behind a
// generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		abortWithError(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, common.ErrMissingBearerToken),
		errors.Is(err, common.ErrUnauthorizedRequest):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrImageNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		h.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		abortWithError(c, http.StatusInternalServerError, internalErrorMessage)
	}
}
