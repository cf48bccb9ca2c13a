// Package logger is the site's small leveled logger.
//
// Lines look like `2006-01-02T15:04:05Z07:00 [INFO] message`. The level is
// set once at startup with Init (LOG_LEVEL env).
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

var (
	mu     sync.RWMutex
	logger = log.New(os.Stdout, "", 0)
	level  = LevelInfo
)

// Init sets the global log level (case-insensitive: debug, info, warn, error).
// Unknown values select info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	default:
		level = LevelInfo
	}
}

// SetOutput redirects log output; tests use it to capture lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", 0)
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	return levelNames[level]
}

func logf(l Level, format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if l < level {
		return
	}
	prefix := fmt.Sprintf("%s [%s] ", time.Now().Format(time.RFC3339), strings.ToUpper(levelNames[l]))
	logger.Printf(prefix+format, v...)
}

func Debugf(format string, v ...interface{}) { logf(LevelDebug, format, v...) }
func Infof(format string, v ...interface{})  { logf(LevelInfo, format, v...) }
func Warnf(format string, v ...interface{})  { logf(LevelWarn, format, v...) }
func Errorf(format string, v ...interface{}) { logf(LevelError, format, v...) }

// Fatalf logs regardless of level and exits.
func Fatalf(format string, v ...interface{}) {
	mu.RLock()
	logger.Printf(fmt.Sprintf("%s [FATAL] ", time.Now().Format(time.RFC3339))+format, v...)
	mu.RUnlock()
	os.Exit(1)
}

func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// Middleware logs one line per request. Query strings are dropped: login
// redirects carry the return-to URL there and nothing in them is useful in logs.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		line := "%s %s -> %d (%s) ip=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Microsecond), c.ClientIP()}
		switch {
		case status >= 500:
			Errorf(line, args...)
		case status >= 400:
			Warnf(line, args...)
		default:
			Infof(line, args...)
		}
	}
}
