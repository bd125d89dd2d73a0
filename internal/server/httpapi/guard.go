package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/imagetags/internal/common"
	"github.com/dmitrijs2005/imagetags/internal/server/auth"
	"github.com/gin-gonic/gin"
)

// Guard authenticates the Authorization header before any protected
// handler runs. On success the caller's auth.Identity is stored in the
// request context; on failure the chain is aborted with 401 (or 500 when
// the account lookup itself failed).
func (h *Handler) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := h.accounts.Authenticate(ctx, c.GetHeader("Authorization"))
		if err != nil {
			reason := "error"
			switch {
			case errors.Is(err, common.ErrMissingBearerToken):
				reason = "missing_token"
			case errors.Is(err, common.ErrUnauthorizedRequest):
				reason = "unauthorized"
			}
			h.metrics.ObserveAuthRejection(reason)
			if reason != "error" {
				h.logger.Info(ctx, "request rejected", "path", c.Request.URL.Path, "reason", reason)
			}
			h.fail(c, err)
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(ctx, id))
		c.Next()
	}
}

// identity returns the caller attached by Guard. It aborts with 401 when the
// route was mounted without the guard.
func (h *Handler) identity(c *gin.Context) (auth.Identity, bool) {
	id, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		h.fail(c, common.ErrUnauthorizedRequest)
	}
	return id, ok
}
