package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/imagetags/internal/server/services"
	"github.com/gin-gonic/gin"
)

const (
	imageDeletedMessage  = "Image URL was deleted..."
	featuresAddedMessage = "Features added successfully"
)

type messageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) AddImage(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}
	var req services.NewImage
	if !h.bindJSON(c, &req) {
		return
	}

	image, err := h.images.AddImage(c.Request.Context(), caller.AccountID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

func (h *Handler) ListImages(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}

	images, err := h.images.ListImages(c.Request.Context(), caller.AccountID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *Handler) GetImage(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	image, err := h.images.GetImage(c.Request.Context(), caller.AccountID, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

func (h *Handler) DeleteImage(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.images.DeleteImage(c.Request.Context(), caller.AccountID, id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, imageDeletedMessage)
}

func (h *Handler) AddFeatures(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}
	var req services.NewFeatures
	if !h.bindJSON(c, &req) {
		return
	}

	if _, err := h.images.AddFeatures(c.Request.Context(), caller.AccountID, req); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, messageResponse{Message: featuresAddedMessage})
}

func (h *Handler) ListFeatures(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	features, err := h.images.ListFeatures(c.Request.Context(), caller.AccountID, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, features)
}
