package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	g "github.com/maragudk/gomponents"
	"github.com/teamsite/teamsite/internal/content/service"
	"github.com/teamsite/teamsite/internal/models"
	"github.com/teamsite/teamsite/internal/views"
	"github.com/teamsite/teamsite/pkg/logger"
	"github.com/teamsite/teamsite/pkg/middleware"
)

// FoundedOn is day zero for the home page's "days active" counter.
var FoundedOn = time.Date(2025, time.January, 21, 0, 0, 0, 0, time.UTC)

// PageHandler renders the HTML pages.
type PageHandler struct {
	svc  *service.Service
	gate *middleware.Gate
	now  func() time.Time
}

func NewPageHandler(svc *service.Service, gate *middleware.Gate) *PageHandler {
	return &PageHandler{svc: svc, gate: gate, now: time.Now}
}

func (h *PageHandler) Register(r *gin.Engine) {
	public := r.Group("", h.gate.LoadUser())
	public.GET("/", h.Home)
	public.GET("/login", h.Login)
	public.GET("/projects", h.Projects)
	public.GET("/members", h.Members)
	public.GET("/gallery", h.Gallery)
	public.GET("/blogs", h.Blogs)

	protected := r.Group("", h.gate.RequireLogin())
	protected.GET("/add-project", h.form("Add project", views.AddProjectPage))
	protected.GET("/add-member", h.form("Add member", views.AddMemberPage))
	protected.GET("/add-image", h.form("Add image", views.AddImagePage))
	protected.GET("/add-blog", h.form("Add blog post", views.AddBlogPage))
}

func (h *PageHandler) Home(c *gin.Context) {
	projects, members, err := h.svc.Counts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, views.HomePage(layout(c, "Home"), views.HomeProps{
		ProjectCount: projects,
		MemberCount:  members,
		DaysCount:    DaysSince(FoundedOn, h.now()),
	}))
}

// Login shows the login form, or sends a logged-in user straight on.
func (h *PageHandler) Login(c *gin.Context) {
	if middleware.UserFrom(c) != nil {
		c.Redirect(http.StatusSeeOther, DefaultLanding)
		return
	}
	render(c, views.LoginPage(layout(c, "Login"), views.LoginProps{
		NextURL: c.Query("next"),
		Failed:  c.Query("error") != "",
	}))
}

func (h *PageHandler) Projects(c *gin.Context) {
	items, err := h.svc.ListProjects(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, views.ProjectsPage(layout(c, "Projects"), items))
}

func (h *PageHandler) Members(c *gin.Context) {
	items, err := h.svc.ListMembers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, views.MembersPage(layout(c, "Members"), items))
}

func (h *PageHandler) Gallery(c *gin.Context) {
	items, err := h.svc.ListGallery(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, views.GalleryPage(layout(c, "Gallery"), items))
}

func (h *PageHandler) Blogs(c *gin.Context) {
	items, err := h.svc.ListBlogs(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, views.BlogsPage(layout(c, "Blogs"), items))
}

func (h *PageHandler) form(title string, page func(views.LayoutProps) g.Node) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, page(layout(c, title)))
	}
}

func (h *PageHandler) fail(c *gin.Context, err error) {
	logger.Errorf("page %s: %v", c.FullPath(), err)
	c.String(http.StatusInternalServerError, "internal error")
}

// DaysSince counts whole days from start to now, never negative.
func DaysSince(start, now time.Time) int {
	d := int(now.Sub(start).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func layout(c *gin.Context, title string) views.LayoutProps {
	props := views.LayoutProps{Title: title}
	if u := middleware.UserFrom(c); u != nil {
		props.UserName = displayName(u)
	}
	return props
}

func displayName(u *models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func render(c *gin.Context, node g.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := node.Render(c.Writer); err != nil {
		logger.Errorf("render %s: %v", c.FullPath(), err)
	}
}
