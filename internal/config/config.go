package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Session SessionConfig
	Uploads UploadsConfig
	Hashing HashingConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// IsProduction reports whether secure-cookie and strict-secret rules apply.
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
}

type UploadsConfig struct {
	Backend string // local | minio
	Dir     string
	MinIO   MinIOConfig
}

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type HashingConfig struct {
	Cost    int
	Workers int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("MONGODB_DATABASE", "website")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("SESSION_TTL_HOURS", 14*24)
	v.SetDefault("UPLOAD_BACKEND", "local")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MINIO_BUCKET", "uploads")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("HASH_WORKERS", runtime.NumCPU())

	// MONGO_CONNECTION_STRING is the historical name; MONGODB_URI wins when both are set.
	mongoURI := v.GetString("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = v.GetString("MONGO_CONNECTION_STRING")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      mongoURI,
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       0,
		},
		Session: SessionConfig{
			Secret:     v.GetString("SECRET_KEY"),
			CookieName: "session_cookie",
			TTL:        time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		},
		Uploads: UploadsConfig{
			Backend: strings.ToLower(v.GetString("UPLOAD_BACKEND")),
			Dir:     strings.Trim(v.GetString("UPLOAD_DIR"), "/"),
			MinIO: MinIOConfig{
				Endpoint:  v.GetString("MINIO_ENDPOINT"),
				AccessKey: v.GetString("MINIO_ACCESS_KEY"),
				SecretKey: v.GetString("MINIO_SECRET_KEY"),
				UseSSL:    v.GetBool("MINIO_USE_SSL"),
				Bucket:    v.GetString("MINIO_BUCKET"),
			},
		},
		Hashing: HashingConfig{
			Cost:    v.GetInt("BCRYPT_COST"),
			Workers: v.GetInt("HASH_WORKERS"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.IsProduction() {
		if c.Session.Secret == "" {
			return fmt.Errorf("SECRET_KEY is required in production")
		}
		if c.MongoDB.URI == "" {
			return fmt.Errorf("MONGO_CONNECTION_STRING is required in production")
		}
	}
	if c.Uploads.Dir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	switch c.Uploads.Backend {
	case "local":
	case "minio":
		if c.Uploads.MinIO.Endpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required when UPLOAD_BACKEND=minio")
		}
	default:
		return fmt.Errorf("unsupported UPLOAD_BACKEND %q", c.Uploads.Backend)
	}
	if c.Hashing.Cost < bcrypt.MinCost || c.Hashing.Cost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Hashing.Workers < 1 {
		c.Hashing.Workers = 1
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}
	return nil
}
