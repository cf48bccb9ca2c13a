// Package uploads stores user-uploaded files under random names and returns
// the public URL they are served from.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a stored file does not exist.
var ErrNotFound = errors.New("uploads: file not found")

// Store persists an uploaded file and returns its public URL.
type Store interface {
	// Save writes all of r under a fresh name that keeps the extension of
	// filename. An empty filename means "no file" and yields ("", nil).
	Save(ctx context.Context, r io.Reader, filename string) (string, error)
}

// NewName returns a random UUIDv4 (122 random bits) as 32 hex digits plus
// the extension of filename.
func NewName(filename string) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + filepath.Ext(filename)
}

// PublicURL joins the public prefix and a stored name: /<prefix>/<name>.
func PublicURL(prefix, name string) string {
	return "/" + strings.Trim(prefix, "/") + "/" + name
}

// SaveFormFile stores an optional multipart file. A nil header or one
// without a filename is "no file attached" and returns ("", nil).
func SaveFormFile(ctx context.Context, s Store, fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()
	return s.Save(ctx, f, fh.Filename)
}

// ctxReader stops a copy once the request context ends, so an abandoned
// upload is not written to completion.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
