package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/teamsite/teamsite/handlers"
	"github.com/teamsite/teamsite/internal/config"
	"github.com/teamsite/teamsite/internal/content/repository"
	"github.com/teamsite/teamsite/internal/content/service"
	"github.com/teamsite/teamsite/internal/database"
	"github.com/teamsite/teamsite/internal/models"
	"github.com/teamsite/teamsite/internal/passwords"
	"github.com/teamsite/teamsite/internal/sessions"
	"github.com/teamsite/teamsite/internal/uploads"
	"github.com/teamsite/teamsite/internal/users"
	"github.com/teamsite/teamsite/pkg/logger"
	"github.com/teamsite/teamsite/pkg/metrics"
	"github.com/teamsite/teamsite/pkg/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	uploadsPrefix = "uploads"
	assetsDir     = "static/assets"
	scriptsDir    = "static/scripts"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: env=%s mongo=%v redis=%v uploads=%s", cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Uploads.Backend)

	ctx := context.Background()

	var db *mongo.Database
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			logger.Fatalf("mongodb: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		db = client.Database(cfg.MongoDB.Database)
	} else {
		logger.Warnf("MONGO_CONNECTION_STRING not set: content, users and sessions are kept in memory")
	}

	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis %s unreachable, not using it for sessions: %v", addr, err)
			_ = rdb.Close()
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	store, serveUploads, err := openUploadStore(cfg)
	if err != nil {
		logger.Fatalf("uploads: %v", err)
	}

	repos, userRepo, sessionRepo := openRepositories(ctx, db, rdb, cfg.Session.CookieName)

	hasher := passwords.NewHasher(cfg.Hashing.Cost, cfg.Hashing.Workers)
	userSvc := users.NewService(userRepo, hasher)
	sessionSvc := sessions.NewService(sessionRepo, cfg.Session.TTL)
	contentSvc := service.New(repos, userSvc, store)

	gate := middleware.NewGate(sessionSecret(cfg), middleware.CookieOptions{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Server.IsProduction(),
	}, sessionSvc, userSvc)

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.Middleware(), metrics.Middleware(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readiness(db, rdb))

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Static("/assets", assetsDir)
	r.Static("/scripts", scriptsDir)
	serveUploads(r)

	handlers.NewAuthHandler(gate, userSvc).Register(r)
	handlers.NewContentHandler(contentSvc, gate).Register(r)
	handlers.NewPageHandler(contentSvc, gate).Register(r)
	handlers.RegisterSwagger(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-signals
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

// openRepositories picks Mongo collections when db is set and in-memory
// stores otherwise. Sessions prefer Redis when a client is available.
func openRepositories(ctx context.Context, db *mongo.Database, rdb *redis.Client, cookieName string) (service.Repos, users.UserRepository, sessions.Repository) {
	var sessionRepo sessions.Repository
	if rdb != nil {
		sessionRepo = sessions.NewRedisRepository(rdb, cookieName)
		logger.Infof("sessions: redis")
	}

	if db == nil {
		if sessionRepo == nil {
			sessionRepo = sessions.NewMemoryRepository()
			logger.Infof("sessions: memory")
		}
		return service.MemoryRepos(), users.NewMemoryUserRepository(), sessionRepo
	}

	repos := service.Repos{
		Projects: repository.NewMongoRepo[*models.Project](db.Collection(database.ProjectsCollection)),
		Members:  repository.NewMongoRepo[*models.Member](db.Collection(database.MembersCollection)),
		Gallery:  repository.NewMongoRepo[*models.GalleryItem](db.Collection(database.GalleryCollection)),
		Blogs:    repository.NewMongoRepo[*models.Blog](db.Collection(database.BlogsCollection)),
	}
	userRepo := users.NewMongoUserRepository(db.Collection(database.UsersCollection))

	if sessionRepo == nil {
		mrepo := sessions.NewMongoRepository(db.Collection(database.SessionsCollection))
		ensureIndexes(ctx, database.SessionsCollection, mrepo)
		sessionRepo = mrepo
		logger.Infof("sessions: mongodb")
	}
	return repos, userRepo, sessionRepo
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// ensureIndexes creates optional indexes; a failure is logged, not fatal.
func ensureIndexes(ctx context.Context, collection string, ix indexer) {
	if err := ix.EnsureIndexes(ctx); err != nil {
		logger.Warnf("%s: could not create indexes, continuing without them: %v", collection, err)
	}
}

// openUploadStore returns the configured file store and a function that
// mounts the route serving its files.
func openUploadStore(cfg *config.Config) (uploads.Store, func(*gin.Engine), error) {
	if cfg.Uploads.Backend == "minio" {
		s, err := uploads.NewMinIOStore(cfg.Uploads.MinIO, uploadsPrefix)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("uploads: minio bucket %s at %s", cfg.Uploads.MinIO.Bucket, cfg.Uploads.MinIO.Endpoint)
		return s, func(r *gin.Engine) { handlers.RegisterUploads(r, uploadsPrefix, s) }, nil
	}
	s, err := uploads.NewLocalStore(cfg.Uploads.Dir, uploadsPrefix)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("uploads: local directory %s", s.Dir())
	return s, func(r *gin.Engine) { r.Static("/"+uploadsPrefix, s.Dir()) }, nil
}

// sessionSecret returns SECRET_KEY, or a random per-process key outside
// production. Sessions signed with a random key do not survive a restart.
func sessionSecret(cfg *config.Config) []byte {
	if cfg.Session.Secret != "" {
		return []byte(cfg.Session.Secret)
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		logger.Fatalf("generate session secret: %v", err)
	}
	logger.Warnf("SECRET_KEY not set: using a random key, sessions end on restart")
	return []byte(hex.EncodeToString(b))
}

// readiness returns 200 only when the configured backing stores answer.
func readiness(db *mongo.Database, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		deps := map[string]bool{}
		if db != nil {
			deps["mongodb"] = db.Client().Ping(ctx, nil) == nil
			ready = ready && deps["mongodb"]
		}
		if rdb != nil {
			deps["redis"] = rdb.Ping(ctx).Err() == nil
			ready = ready && deps["redis"]
		}

		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(startTime).String()})
	}
}
