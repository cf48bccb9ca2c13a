package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		Init("info")
	})
	return &buf
}

func TestInitAndLevelString(t *testing.T) {
	t.Cleanup(func() { Init("info") })
	Init("debug")
	require.Equal(t, "debug", LevelString())
	Init("WARN")
	require.Equal(t, "warn", LevelString())
	Init("Error")
	require.Equal(t, "error", LevelString())
	Init("nonsense")
	require.Equal(t, "info", LevelString())
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)

	Init("warn")
	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg")
	Errorf("error-msg %d", 7)

	out := buf.String()
	require.NotContains(t, out, "debug-msg")
	require.NotContains(t, out, "info-msg")
	require.Contains(t, out, "[WARN] warn-msg")
	require.Contains(t, out, "[ERROR] error-msg 7")

	buf.Reset()
	Init("info")
	Info("hello")
	require.Contains(t, buf.String(), "[INFO] hello")
}

func TestMiddlewareOmitsQuery(t *testing.T) {
	buf := capture(t)
	Init("info")

	g := gin.New()
	g.Use(Middleware())
	g.GET("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	g.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login?next=%2Fsecret", nil))
	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "[INFO] GET /login -> 200")
	require.NotContains(t, lines[0], "secret")
	require.Contains(t, lines[1], "[ERROR] GET /boom -> 500")
}
