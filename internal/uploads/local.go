package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/teamsite/teamsite/pkg/logger"
	"github.com/teamsite/teamsite/pkg/metrics"
)

// LocalStore writes uploads into a flat directory on disk. The directory name
// doubles as the public URL prefix (uploads -> /uploads/<name>).
type LocalStore struct {
	dir    string
	prefix string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir, prefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, prefix: prefix}, nil
}

// Dir returns the directory files are written to.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(ctx context.Context, r io.Reader, filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	name := NewName(filename)
	path := filepath.Join(s.dir, name)

	// O_EXCL: a name collision is an error, never an overwrite.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	n, err := io.Copy(f, ctxReader{ctx: ctx, r: r})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// drop the partial file; nothing references it yet
		if rmErr := os.Remove(path); rmErr != nil {
			logger.Warnf("uploads: could not remove partial file %s: %v", name, rmErr)
		}
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	metrics.UploadsStored.WithLabelValues("local").Inc()
	metrics.UploadBytes.WithLabelValues("local").Add(float64(n))
	logger.Debugf("uploads: stored %s (%d bytes)", name, n)
	return PublicURL(s.prefix, name), nil
}
