package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamsite/teamsite/internal/content/repository"
	"github.com/teamsite/teamsite/internal/content/service"
	"github.com/teamsite/teamsite/internal/models"
)

type apiResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

func decodeResult(t *testing.T, body []byte) apiResult {
	t.Helper()
	var r apiResult
	require.NoError(t, json.Unmarshal(body, &r))
	return r
}

func TestListEmptyReturnsArray(t *testing.T) {
	app := newTestApp(t)
	for _, p := range []string{"/api/projects", "/api/members", "/api/gallery", "/api/blogs"} {
		w := app.get(p)
		require.Equal(t, http.StatusOK, w.Code, p)
		assert.JSONEq(t, "[]", w.Body.String(), p)
	}
}

func TestCreateRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	req := multipartRequest(t, "/api/projects", map[string]string{"projectTitle": "x"})
	w := app.do(req)
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/login?next=%2Fapi%2Fprojects", w.Header().Get("Location"))
}

func TestCreateProjectWithImage(t *testing.T) {
	app := newTestApp(t)
	c := app.login(t)

	req := multipartRequest(t, "/api/projects", map[string]string{
		"projectTitle":       "Robot",
		"projectDescription": "A robot",
		"techStack":          " go, mongo ,, redis ",
		"linkedinLink":       "https://linkedin.example/robot",
		"githubLink":         "https://github.example/robot",
	}, upload{"projectImage", "robot.final.png", "png-bytes"})
	w := app.do(req, c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decodeResult(t, w.Body.Bytes())
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, "Project added successfully", res.Message)
	assert.NotEmpty(t, res.ID)

	w = app.get("/api/projects")
	require.Equal(t, http.StatusOK, w.Code)
	var projects []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	require.Len(t, projects, 1)
	p := projects[0]
	assert.Equal(t, res.ID, p["id"])
	assert.NotContains(t, p, "_id")
	assert.Equal(t, []any{"go", "mongo", "redis"}, p["techStack"])

	img, _ := p["imageUrl"].(string)
	require.True(t, strings.HasPrefix(img, "/uploads/"), img)
	require.True(t, strings.HasSuffix(img, ".png"), img)
	data, err := os.ReadFile(filepath.Join(app.uploadDir, filepath.Base(img)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestCreateWithoutFileLeavesURLUnset(t *testing.T) {
	app := newTestApp(t)
	c := app.login(t)

	req := multipartRequest(t, "/api/gallery", map[string]string{
		"caption": "Kickoff", "category": "events", "description": "first meeting",
	})
	w := app.do(req, c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.get("/api/gallery")
	var items []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.NotContains(t, items[0], "imageUrl")
}

func TestCreateMissingFieldIs400(t *testing.T) {
	app := newTestApp(t)
	c := app.login(t)

	req := multipartRequest(t, "/api/blogs", map[string]string{"title": "no body"})
	w := app.do(req, c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeResult(t, w.Body.Bytes())
	assert.Equal(t, "error", res.Status)
	assert.NotEmpty(t, res.Message)
}

func TestCreateBlogFormatsFields(t *testing.T) {
	app := newTestApp(t)
	c := app.login(t)

	req := multipartRequest(t, "/api/blogs", map[string]string{
		"title": "Hello", "content": "Body", "date": "2025-02-01", "category": "news",
		"author": "Ada", "readTime": "5", "tags": "go, web",
	})
	w := app.do(req, c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Blog post added successfully", decodeResult(t, w.Body.Bytes()).Message)

	var blogs []models.Blog
	require.NoError(t, json.Unmarshal(app.get("/api/blogs").Body.Bytes(), &blogs))
	require.Len(t, blogs, 1)
	assert.Equal(t, "5 min read", blogs[0].ReadTime)
	assert.Equal(t, []string{"go", "web"}, blogs[0].Tags)
}

func adminMemberFields(email string) map[string]string {
	return map[string]string{
		"fullName": "Grace", "role": "lead", "email": email,
		"password": "hunter22", "adminPrivileges": "on",
	}
}

func TestCreateAdminMember(t *testing.T) {
	app := newTestApp(t)
	c := app.login(t)
	before := app.users.Len()

	w := app.do(multipartRequest(t, "/api/members", adminMemberFields("grace@example.com"),
		upload{"profileImage", "me.jpg", "jpg"}, upload{"resume", "cv.pdf", "pdf"}), c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Admin member and user created successfully", decodeResult(t, w.Body.Bytes()).Message)
	assert.Equal(t, before+1, app.users.Len())

	// same email again: a second member, no second user
	w = app.do(multipartRequest(t, "/api/members", adminMemberFields("grace@example.com")), c)
	require.Equal(t, http.StatusConflict, w.Code)
	res := decodeResult(t, w.Body.Bytes())
	assert.Equal(t, "error", res.Status)
	assert.Equal(t, "A user with this email already exists.", res.Message)
	assert.Equal(t, before+1, app.users.Len())

	var members []models.Member
	require.NoError(t, json.Unmarshal(app.get("/api/members").Body.Bytes(), &members))
	require.Len(t, members, 2)
	assert.True(t, strings.HasPrefix(members[0].PhotoURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(members[0].ResumeURL, ".pdf"))
	assert.Empty(t, members[1].PhotoURL)

	// the new admin can log in
	w = app.postLogin("grace@example.com", "hunter22", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotNil(t, sessionCookie(w))
}

func TestCreateAdminMemberWithoutPassword(t *testing.T) {
	app := newTestApp(t)
	c := app.login(t)
	before := app.users.Len()

	fields := adminMemberFields("nopass@example.com")
	delete(fields, "password")
	w := app.do(multipartRequest(t, "/api/members", fields), c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Admin user requires a name, email, and password.", decodeResult(t, w.Body.Bytes()).Message)
	assert.Equal(t, before, app.users.Len())
}

func TestCreateAdminMemberPasswordTooLong(t *testing.T) {
	app := newTestApp(t)
	c := app.login(t)
	before := app.users.Len()

	fields := adminMemberFields("long@example.com")
	fields["password"] = strings.Repeat("p", 80)
	w := app.do(multipartRequest(t, "/api/members", fields), c)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	res := decodeResult(t, w.Body.Bytes())
	assert.Equal(t, "error", res.Status)
	assert.Equal(t, "Admin password must be at most 72 bytes.", res.Message)
	assert.Equal(t, before, app.users.Len())

	var members []models.Member
	require.NoError(t, json.Unmarshal(app.get("/api/members").Body.Bytes(), &members))
	require.Len(t, members, 1)

	// an over-long password at login is a plain failure, not a 500
	w = app.postLogin(adminEmail, strings.Repeat("p", 80), "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?error=1", w.Header().Get("Location"))
}

type brokenRepo[T models.Item] struct{}

func (brokenRepo[T]) List(ctx context.Context) ([]T, error) { return nil, errors.New("db down") }
func (brokenRepo[T]) Insert(ctx context.Context, item T) (string, error) {
	return "", errors.New("db down")
}
func (brokenRepo[T]) Count(ctx context.Context) (int64, error) { return 0, errors.New("db down") }

var _ repository.Repository[*models.Project] = brokenRepo[*models.Project]{}

func TestStorageFailureIs500WithoutDetails(t *testing.T) {
	repos := service.MemoryRepos()
	repos.Projects = brokenRepo[*models.Project]{}
	app := newTestAppWithRepos(t, repos)
	c := app.login(t)

	w := app.get("/api/projects")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")

	w = app.do(multipartRequest(t, "/api/projects", map[string]string{
		"projectTitle": "x", "projectDescription": "x", "techStack": "x",
		"linkedinLink": "x", "githubLink": "x",
	}), c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	res := decodeResult(t, w.Body.Bytes())
	assert.Equal(t, "error", res.Status)
	assert.Equal(t, "internal error", res.Message)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,b,, "))
	assert.Equal(t, []string{}, splitList(""))
}

func TestFormBool(t *testing.T) {
	for in, want := range map[string]bool{
		"on": true, "true": true, "1": true, "YES": true,
		"": false, "false": false, "off": false, "garbage": false,
	} {
		assert.Equal(t, want, formBool(in), in)
	}
}
