package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeShowsCounts(t *testing.T) {
	app := newTestApp(t)
	c := app.login(t)

	for _, title := range []string{"One", "Two"} {
		w := app.do(multipartRequest(t, "/api/projects", map[string]string{
			"projectTitle": title, "projectDescription": "d", "techStack": "go",
			"linkedinLink": "l", "githubLink": "g",
		}), c)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := app.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<strong>2</strong><span>Projects</span>")
	assert.Contains(t, body, "<strong>0</strong><span>Members</span>")
	assert.Contains(t, body, `href="/login"`)

	w = app.get("/projects")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "One")
	assert.Contains(t, w.Body.String(), "Two")
}

func TestPublicPagesRender(t *testing.T) {
	app := newTestApp(t)
	for _, p := range []string{"/", "/login", "/projects", "/members", "/gallery", "/blogs"} {
		w := app.get(p)
		assert.Equal(t, http.StatusOK, w.Code, p)
		assert.Contains(t, w.Body.String(), "<!doctype html>", p)
	}
}

func TestFormPagesRequireLogin(t *testing.T) {
	app := newTestApp(t)
	c := app.login(t)
	forms := map[string]string{
		"/add-project": `action="/api/projects"`,
		"/add-member":  `name="adminPrivileges"`,
		"/add-image":   `action="/api/gallery"`,
		"/add-blog":    `name="readTime"`,
	}
	for p, marker := range forms {
		w := app.get(p)
		require.Equal(t, http.StatusTemporaryRedirect, w.Code, p)

		w = app.get(p, c)
		require.Equal(t, http.StatusOK, w.Code, p)
		assert.Contains(t, w.Body.String(), marker, p)
		assert.Contains(t, w.Body.String(), `enctype="multipart/form-data"`, p)
	}
}

func TestDaysSince(t *testing.T) {
	assert.Equal(t, 0, DaysSince(FoundedOn, FoundedOn))
	assert.Equal(t, 0, DaysSince(FoundedOn, FoundedOn.Add(-48*time.Hour)))
	assert.Equal(t, 0, DaysSince(FoundedOn, FoundedOn.Add(23*time.Hour)))
	assert.Equal(t, 10, DaysSince(FoundedOn, FoundedOn.AddDate(0, 0, 10).Add(time.Hour)))
}
