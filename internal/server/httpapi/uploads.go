package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/imagetags/internal/server/services"
	"github.com/gin-gonic/gin"
)

const (
	uploadSucceededMessage = "Upload was successful"
	// multipartOverhead leaves room for boundaries and part headers on top
	// of the file itself.
	multipartOverhead = 1 << 20
)

// Upload handles POST /uploads with the file in multipart field "file".
func (h *Handler) Upload(c *gin.Context) {
	if _, ok := h.identity(c); !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.fail(c, &services.ValidationError{
				Code: services.ErrFileTooLarge,
				Err:  fmt.Errorf("File must not be larger than %d bytes.", h.maxUploadSize),
			})
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			h.fail(c, &services.ValidationError{Code: services.ErrMissingField, Field: "file"})
		default:
			abortWithError(c, http.StatusBadRequest, "Invalid request body")
		}
		return
	}

	file, err := header.Open()
	if err != nil {
		h.fail(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	url, err := h.uploads.Store(c.Request.Context(), services.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.AddUploadedBytes(header.Size)

	c.JSON(http.StatusOK, messageResponse{Message: uploadSucceededMessage, Data: url})
}
