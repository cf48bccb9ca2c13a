package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/teamsite/teamsite/internal/content/service"
	"github.com/teamsite/teamsite/internal/passwords"
	"github.com/teamsite/teamsite/internal/sessions"
	"github.com/teamsite/teamsite/internal/uploads"
	"github.com/teamsite/teamsite/internal/users"
	"github.com/teamsite/teamsite/pkg/middleware"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("handlers-test-secret-32-bytes-xx")

const (
	adminEmail    = "ada@example.com"
	adminPassword = "correct horse"
)

type testApp struct {
	engine    *gin.Engine
	users     *users.MemoryUserRepository
	sessions  *sessions.MemoryRepository
	uploadDir string
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWithRepos(t, service.MemoryRepos())
}

func newTestAppWithRepos(t *testing.T, repos service.Repos) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store, err := uploads.NewLocalStore(dir, "uploads")
	require.NoError(t, err)

	urepo := users.NewMemoryUserRepository()
	usvc := users.NewService(urepo, passwords.NewHasher(bcrypt.MinCost, 2))
	_, err = usvc.Register(context.Background(), "Ada", adminEmail, adminPassword)
	require.NoError(t, err)

	srepo := sessions.NewMemoryRepository()
	gate := middleware.NewGate(testSecret, middleware.CookieOptions{Name: "session_cookie"}, sessions.NewService(srepo, time.Hour), usvc)
	svc := service.New(repos, usvc, store)

	r := gin.New()
	NewAuthHandler(gate, usvc).Register(r)
	NewContentHandler(svc, gate).Register(r)
	NewPageHandler(svc, gate).Register(r)

	return &testApp{engine: r, users: urepo, sessions: srepo, uploadDir: dir}
}

func (a *testApp) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (a *testApp) postLogin(email, password, next string) *httptest.ResponseRecorder {
	form := url.Values{"email": {email}, "password": {password}}
	if next != "" {
		form.Set("next_url", next)
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

// login returns the session cookie for the seeded admin.
func (a *testApp) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := a.postLogin(adminEmail, adminPassword, "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	c := sessionCookie(w)
	require.NotNil(t, c)
	return c
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_cookie" {
			return c
		}
	}
	return nil
}

type upload struct {
	field, filename, content string
}

// multipartRequest builds a POST with text fields and optional files.
func multipartRequest(t *testing.T, path string, fields map[string]string, files ...upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
