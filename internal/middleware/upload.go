package middleware

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rentspot/rentspot-api/internal/constants"
)

// LimitUploadSize caps the multipart request body before any handler reads it.
func LimitUploadSize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// ValidImageUpload reports whether the file is an acceptable image upload:
// image MIME type and within the per-file size cap.
func ValidImageUpload(file *multipart.FileHeader) bool {
	if file.Size > constants.MaxUploadSize {
		return false
	}
	contentType := file.Header.Get("Content-Type")
	return strings.HasPrefix(contentType, "image/")
}
