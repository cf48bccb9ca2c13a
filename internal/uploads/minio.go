package uploads

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/teamsite/teamsite/internal/config"
	"github.com/teamsite/teamsite/pkg/metrics"
)

// MinIOStore keeps uploads in an S3-compatible bucket. URLs keep the same
// /<prefix>/<name> shape as LocalStore; the site serves them through Open.
type MinIOStore struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinIOStore creates a new MinIO storage client and ensures the bucket exists.
func NewMinIOStore(cfg config.MinIOConfig, prefix string) (*MinIOStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &MinIOStore{client: mc, bucket: cfg.Bucket, prefix: prefix}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

func (s *MinIOStore) Save(ctx context.Context, r io.Reader, filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	name := NewName(filename)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	info, err := s.client.PutObject(ctx, s.bucket, name, r, -1, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("minio put %s: %w", name, err)
	}
	metrics.UploadsStored.WithLabelValues("minio").Inc()
	metrics.UploadBytes.WithLabelValues("minio").Add(float64(info.Size))
	return PublicURL(s.prefix, name), nil
}

// Open returns the stored object, its size and content type.
func (s *MinIOStore) Open(ctx context.Context, name string) (io.ReadCloser, int64, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, "", err
	}
	// stat so a missing object fails here rather than mid-response
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, "", ErrNotFound
		}
		return nil, 0, "", err
	}
	return obj, st.Size, st.ContentType, nil
}
