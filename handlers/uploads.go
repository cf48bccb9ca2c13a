package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/teamsite/teamsite/internal/uploads"
	"github.com/teamsite/teamsite/pkg/logger"
)

// ObjectOpener reads stored uploads back, e.g. *uploads.MinIOStore.
type ObjectOpener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, int64, string, error)
}

// RegisterUploads serves files under /<prefix>/:name. Local uploads are
// mounted with gin's Static instead; this is for object storage.
func RegisterUploads(r *gin.Engine, prefix string, store ObjectOpener) {
	r.GET(path.Join("/", prefix, ":name"), func(c *gin.Context) {
		name := c.Param("name")
		if name == "" || name != path.Base(name) {
			c.Status(http.StatusNotFound)
			return
		}
		body, size, contentType, err := store.Open(c.Request.Context(), name)
		switch {
		case errors.Is(err, uploads.ErrNotFound):
			c.Status(http.StatusNotFound)
			return
		case err != nil:
			logger.Errorf("uploads: open %s: %v", name, err)
			c.Status(http.StatusInternalServerError)
			return
		}
		defer body.Close()
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.DataFromReader(http.StatusOK, size, contentType, body, nil)
	})
}
