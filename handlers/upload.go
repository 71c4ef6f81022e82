package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"marketplace/models"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
)

var errFileTooLarge = fmt.Errorf("file exceeds %d MB: %w", utils.MaxUploadBytes>>20, models.ErrInvalidInput)

// formFile opens the "file" part of a multipart request. The caller closes it.
func formFile(c *gin.Context) (multipart.File, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxUploadBytes+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", errFileTooLarge
		}
		return nil, "", fmt.Errorf("file not provided: %w", models.ErrInvalidInput)
	}
	if fh.Size > utils.MaxUploadBytes {
		return nil, "", errFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open upload: %w", err)
	}
	return f, fh.Filename, nil
}
