package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/imagetags/internal/common"
	"github.com/dmitrijs2005/imagetags/internal/server/services"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string `json:"authToken"`
}

// bindJSON decodes the body into dst. An empty body leaves dst zero so the
// field checks report what is missing.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// Register handles POST /users.
func (h *Handler) Register(c *gin.Context) {
	var candidate services.Candidate
	if !h.bindJSON(c, &candidate) {
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), candidate)
	if err != nil {
		h.metrics.ObserveRegistration(registrationOutcome(err))
		h.fail(c, err)
		return
	}
	h.metrics.ObserveRegistration("created")

	h.logger.Info(c.Request.Context(), "registered", "user_id", account.ID)
	c.Header("Location", fmt.Sprintf("/users/%d", account.ID))
	c.JSON(http.StatusCreated, account)
}

func registrationOutcome(err error) string {
	outcomes := []struct {
		code  error
		label string
	}{
		{services.ErrMissingField, "missing_field"},
		{services.ErrPasswordTooShort, "password_too_short"},
		{services.ErrPasswordTooLong, "password_too_long"},
		{services.ErrPasswordPadded, "password_padded"},
		{services.ErrPasswordNotComplex, "password_not_complex"},
		{common.ErrUsernameTaken, "username_taken"},
	}
	for _, o := range outcomes {
		if errors.Is(err, o.code) {
			return o.label
		}
	}
	return "error"
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{AuthToken: token})
}
