package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGO_CONNECTION_STRING", "mongodb://localhost:27017")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("SECRET_KEY", "testsecret123456789012345678901234")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	require.Equal(t, "website", cfg.MongoDB.Database)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
	require.Equal(t, "session_cookie", cfg.Session.CookieName)
	require.Equal(t, 14*24*time.Hour, cfg.Session.TTL)
	require.Equal(t, "local", cfg.Uploads.Backend)
	require.Equal(t, "uploads", cfg.Uploads.Dir)
}

func TestLoadConfig_MongoURIOverridesLegacyName(t *testing.T) {
	t.Setenv("MONGO_CONNECTION_STRING", "mongodb://legacy:27017")
	t.Setenv("MONGODB_URI", "mongodb://primary:27017")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "mongodb://primary:27017", cfg.MongoDB.URI)
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("SERVER_ENVIRONMENT", "production")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("SECRET_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_MinIOBackendNeedsEndpoint(t *testing.T) {
	t.Setenv("UPLOAD_BACKEND", "minio")
	t.Setenv("MINIO_ENDPOINT", "")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "minio", cfg.Uploads.Backend)
}

func TestLoadConfig_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("UPLOAD_BACKEND", "ftp")
	_, err := LoadConfig()
	require.Error(t, err)
}
