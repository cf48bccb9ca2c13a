package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teamsite/teamsite/internal/content/service"
	"github.com/teamsite/teamsite/pkg/logger"
	"github.com/teamsite/teamsite/pkg/middleware"
)

type projectForm struct {
	Title       string `form:"projectTitle" binding:"required"`
	Description string `form:"projectDescription" binding:"required"`
	TechStack   string `form:"techStack" binding:"required"`
	LinkedIn    string `form:"linkedinLink" binding:"required"`
	GitHub      string `form:"githubLink" binding:"required"`
}

type memberForm struct {
	Name     string `form:"fullName" binding:"required"`
	Role     string `form:"role" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password"`
	LinkedIn string `form:"linkedin"`
	GitHub   string `form:"github"`
	Admin    string `form:"adminPrivileges"`
}

type galleryForm struct {
	Caption     string `form:"caption" binding:"required"`
	Category    string `form:"category" binding:"required"`
	Description string `form:"description" binding:"required"`
}

type blogForm struct {
	Title    string `form:"title" binding:"required"`
	Content  string `form:"content" binding:"required"`
	Date     string `form:"date" binding:"required"`
	Category string `form:"category" binding:"required"`
	Author   string `form:"author" binding:"required"`
	ReadTime string `form:"readTime" binding:"required"`
	Tags     string `form:"tags" binding:"required"`
}

// ContentHandler serves the JSON content API.
type ContentHandler struct {
	svc  *service.Service
	gate *middleware.Gate
}

func NewContentHandler(svc *service.Service, gate *middleware.Gate) *ContentHandler {
	return &ContentHandler{svc: svc, gate: gate}
}

// Register mounts /api. Reads are public, writes require a session.
func (h *ContentHandler) Register(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/projects", h.ListProjects)
	api.GET("/members", h.ListMembers)
	api.GET("/gallery", h.ListGallery)
	api.GET("/blogs", h.ListBlogs)

	write := api.Group("", h.gate.RequireLogin())
	write.POST("/projects", h.CreateProject)
	write.POST("/members", h.CreateMember)
	write.POST("/gallery", h.CreateGalleryItem)
	write.POST("/blogs", h.CreateBlog)
}

func (h *ContentHandler) ListProjects(c *gin.Context) {
	items, err := h.svc.ListProjects(c.Request.Context())
	writeList(c, items, err)
}

func (h *ContentHandler) ListMembers(c *gin.Context) {
	items, err := h.svc.ListMembers(c.Request.Context())
	writeList(c, items, err)
}

func (h *ContentHandler) ListGallery(c *gin.Context) {
	items, err := h.svc.ListGallery(c.Request.Context())
	writeList(c, items, err)
}

func (h *ContentHandler) ListBlogs(c *gin.Context) {
	items, err := h.svc.ListBlogs(c.Request.Context())
	writeList(c, items, err)
}

func (h *ContentHandler) CreateProject(c *gin.Context) {
	var form projectForm
	if !bindForm(c, &form) {
		return
	}
	image, ok := optionalFile(c, "projectImage")
	if !ok {
		return
	}
	res, err := h.svc.AddProject(c.Request.Context(), service.ProjectInput{
		Title:       form.Title,
		Description: form.Description,
		TechStack:   splitList(form.TechStack),
		GitHub:      form.GitHub,
		LinkedIn:    form.LinkedIn,
		Image:       image,
	})
	writeResult(c, res, err)
}

func (h *ContentHandler) CreateMember(c *gin.Context) {
	var form memberForm
	if !bindForm(c, &form) {
		return
	}
	photo, ok := optionalFile(c, "profileImage")
	if !ok {
		return
	}
	resume, ok := optionalFile(c, "resume")
	if !ok {
		return
	}
	res, err := h.svc.AddMember(c.Request.Context(), service.MemberInput{
		Name:     form.Name,
		Role:     form.Role,
		Email:    form.Email,
		Password: form.Password,
		LinkedIn: form.LinkedIn,
		GitHub:   form.GitHub,
		IsAdmin:  formBool(form.Admin),
		Photo:    photo,
		Resume:   resume,
	})
	writeResult(c, res, err)
}

func (h *ContentHandler) CreateGalleryItem(c *gin.Context) {
	var form galleryForm
	if !bindForm(c, &form) {
		return
	}
	image, ok := optionalFile(c, "image")
	if !ok {
		return
	}
	res, err := h.svc.AddGalleryItem(c.Request.Context(), service.GalleryInput{
		Caption:     form.Caption,
		Category:    form.Category,
		Description: form.Description,
		Image:       image,
	})
	writeResult(c, res, err)
}

func (h *ContentHandler) CreateBlog(c *gin.Context) {
	var form blogForm
	if !bindForm(c, &form) {
		return
	}
	image, ok := optionalFile(c, "image")
	if !ok {
		return
	}
	res, err := h.svc.AddBlog(c.Request.Context(), service.BlogInput{
		Title:    form.Title,
		Content:  form.Content,
		Date:     form.Date,
		Category: form.Category,
		Author:   form.Author,
		ReadTime: strings.TrimSpace(form.ReadTime) + " min read",
		Tags:     splitList(form.Tags),
		Image:    image,
	})
	writeResult(c, res, err)
}

func writeList[T any](c *gin.Context, items []T, err error) {
	if err != nil {
		logger.Errorf("api: list %s: %v", c.FullPath(), err)
		internalError(c)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

func writeResult(c *gin.Context, res service.Result, err error) {
	if err != nil {
		logger.Errorf("api: %s %s: %v", c.Request.Method, c.FullPath(), err)
		internalError(c)
		return
	}
	switch res.Reason {
	case service.ReasonInvalid:
		c.JSON(http.StatusBadRequest, res)
	case service.ReasonConflict:
		c.JSON(http.StatusConflict, res)
	default:
		c.JSON(http.StatusOK, res)
	}
}

func bindForm(c *gin.Context, form any) bool {
	if err := c.ShouldBind(form); err != nil {
		logger.Debugf("api: rejecting form on %s: %v", c.FullPath(), err)
		c.JSON(http.StatusBadRequest, gin.H{"status": service.StatusError, "message": "Missing or invalid form fields."})
		return false
	}
	return true
}

// optionalFile returns the uploaded file for field, or nil when the client
// sent none. A malformed body is answered with 400 and ok=false.
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	fh, err := c.FormFile(field)
	switch {
	case err == nil:
		return fh, true
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, true
	default:
		logger.Debugf("api: reading file %q: %v", field, err)
		c.JSON(http.StatusBadRequest, gin.H{"status": service.StatusError, "message": "Could not read uploaded file."})
		return nil, false
	}
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"status": service.StatusError, "message": "internal error"})
}

// splitList turns "go, mongo ,redis" into [go mongo redis], dropping blanks.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// formBool accepts the values browsers and API clients send for a checkbox.
func formBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
