// Package service is the site's persistence layer: list and add operations
// for projects, members, gallery items and blogs, plus the admin-member flow
// that creates a companion login user.
package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/teamsite/teamsite/internal/content/repository"
	"github.com/teamsite/teamsite/internal/models"
	"github.com/teamsite/teamsite/internal/uploads"
	"github.com/teamsite/teamsite/internal/users"
	"github.com/teamsite/teamsite/pkg/logger"
	"github.com/teamsite/teamsite/pkg/metrics"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Reason classifies an error Result so callers can choose a response code.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonInvalid  Reason = "invalid"
	ReasonConflict Reason = "conflict"
)

// Result is the outcome envelope of an add operation.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Reason  Reason `json:"-"`
}

func success(id, msg string) Result { return Result{Status: StatusSuccess, Message: msg, ID: id} }

func failure(id string, reason Reason, msg string) Result {
	return Result{Status: StatusError, Message: msg, ID: id, Reason: reason}
}

// Repos groups the four content collections.
type Repos struct {
	Projects repository.Repository[*models.Project]
	Members  repository.Repository[*models.Member]
	Gallery  repository.Repository[*models.GalleryItem]
	Blogs    repository.Repository[*models.Blog]
}

// MemoryRepos returns in-memory collections.
func MemoryRepos() Repos {
	return Repos{
		Projects: repository.NewMemoryRepo[*models.Project](),
		Members:  repository.NewMemoryRepo[*models.Member](),
		Gallery:  repository.NewMemoryRepo[*models.GalleryItem](),
		Blogs:    repository.NewMemoryRepo[*models.Blog](),
	}
}

// Service is the sole writer of the content collections.
type Service struct {
	repos Repos
	users *users.Service
	files uploads.Store
	now   func() time.Time
}

func New(repos Repos, u *users.Service, files uploads.Store) *Service {
	return &Service{repos: repos, users: u, files: files, now: func() time.Time { return time.Now().UTC() }}
}

type ProjectInput struct {
	Title       string
	Description string
	TechStack   []string
	GitHub      string
	LinkedIn    string
	Image       *multipart.FileHeader
}

type MemberInput struct {
	Name     string
	Role     string
	Email    string
	Password string
	LinkedIn string
	GitHub   string
	IsAdmin  bool
	Photo    *multipart.FileHeader
	Resume   *multipart.FileHeader
}

type GalleryInput struct {
	Caption     string
	Category    string
	Description string
	Image       *multipart.FileHeader
}

type BlogInput struct {
	Title    string
	Content  string
	Date     string
	Category string
	Author   string
	ReadTime string
	Tags     []string
	Image    *multipart.FileHeader
}

func (s *Service) ListProjects(ctx context.Context) ([]*models.Project, error) {
	return s.repos.Projects.List(ctx)
}

func (s *Service) ListMembers(ctx context.Context) ([]*models.Member, error) {
	return s.repos.Members.List(ctx)
}

func (s *Service) ListGallery(ctx context.Context) ([]*models.GalleryItem, error) {
	return s.repos.Gallery.List(ctx)
}

func (s *Service) ListBlogs(ctx context.Context) ([]*models.Blog, error) {
	return s.repos.Blogs.List(ctx)
}

// Counts returns the number of projects and members, for the home page.
func (s *Service) Counts(ctx context.Context) (projects, members int64, err error) {
	if projects, err = s.repos.Projects.Count(ctx); err != nil {
		return 0, 0, err
	}
	if members, err = s.repos.Members.Count(ctx); err != nil {
		return 0, 0, err
	}
	return projects, members, nil
}

func (s *Service) AddProject(ctx context.Context, in ProjectInput) (Result, error) {
	url, err := uploads.SaveFormFile(ctx, s.files, in.Image)
	if err != nil {
		return Result{}, err
	}
	p := &models.Project{
		Title:       in.Title,
		Description: in.Description,
		TechStack:   in.TechStack,
		GitHub:      in.GitHub,
		LinkedIn:    in.LinkedIn,
		ImageURL:    url,
	}
	id, err := insert(ctx, s, "project", s.repos.Projects, p)
	if err != nil {
		return Result{}, err
	}
	return s.record("project", success(id, "Project added successfully")), nil
}

func (s *Service) AddGalleryItem(ctx context.Context, in GalleryInput) (Result, error) {
	url, err := uploads.SaveFormFile(ctx, s.files, in.Image)
	if err != nil {
		return Result{}, err
	}
	g := &models.GalleryItem{
		Caption:     in.Caption,
		Category:    in.Category,
		Description: in.Description,
		ImageURL:    url,
	}
	id, err := insert(ctx, s, "gallery", s.repos.Gallery, g)
	if err != nil {
		return Result{}, err
	}
	return s.record("gallery", success(id, "Gallery item added successfully")), nil
}

func (s *Service) AddBlog(ctx context.Context, in BlogInput) (Result, error) {
	url, err := uploads.SaveFormFile(ctx, s.files, in.Image)
	if err != nil {
		return Result{}, err
	}
	b := &models.Blog{
		Title:    in.Title,
		Content:  in.Content,
		Date:     in.Date,
		Category: in.Category,
		Author:   in.Author,
		ReadTime: in.ReadTime,
		Tags:     in.Tags,
		ImageURL: url,
	}
	id, err := insert(ctx, s, "blog", s.repos.Blogs, b)
	if err != nil {
		return Result{}, err
	}
	return s.record("blog", success(id, "Blog post added successfully")), nil
}

// AddMember always stores the member first. With IsAdmin it then tries to
// create a login user; when that fails the member row stays in place and an
// error Result is returned. The two writes are not transactional.
func (s *Service) AddMember(ctx context.Context, in MemberInput) (Result, error) {
	photoURL, err := uploads.SaveFormFile(ctx, s.files, in.Photo)
	if err != nil {
		return Result{}, err
	}
	resumeURL, err := uploads.SaveFormFile(ctx, s.files, in.Resume)
	if err != nil {
		return Result{}, err
	}
	m := &models.Member{
		Name:      in.Name,
		Role:      in.Role,
		LinkedIn:  in.LinkedIn,
		GitHub:    in.GitHub,
		Email:     in.Email,
		PhotoURL:  photoURL,
		ResumeURL: resumeURL,
	}
	id, err := insert(ctx, s, "member", s.repos.Members, m)
	if err != nil {
		return Result{}, err
	}
	if !in.IsAdmin {
		return s.record("member", success(id, "Member added successfully")), nil
	}

	_, err = s.users.Register(ctx, in.Name, in.Email, in.Password)
	switch {
	case errors.Is(err, users.ErrMissingFields):
		return s.record("member", failure(id, ReasonInvalid, "Admin user requires a name, email, and password.")), nil
	case errors.Is(err, users.ErrPasswordTooLong):
		return s.record("member", failure(id, ReasonInvalid, "Admin password must be at most 72 bytes.")), nil
	case errors.Is(err, users.ErrEmailTaken):
		return s.record("member", failure(id, ReasonConflict, "A user with this email already exists.")), nil
	case err != nil:
		return Result{}, fmt.Errorf("create admin user for member %s: %w", id, err)
	}
	logger.Infof("content: member %s registered as admin user", id)
	return s.record("member", success(id, "Admin member and user created successfully")), nil
}

// insert stamps the creation time and stores item.
func insert[T models.Item](ctx context.Context, s *Service, kind string, repo repository.Repository[T], item T) (string, error) {
	item.SetCreatedAt(s.now())
	id, err := repo.Insert(ctx, item)
	if err != nil {
		metrics.ContentCreated.WithLabelValues(kind, "failed").Inc()
		return "", fmt.Errorf("add %s: %w", kind, err)
	}
	return id, nil
}

func (s *Service) record(kind string, r Result) Result {
	metrics.ContentCreated.WithLabelValues(kind, r.Status).Inc()
	return r
}
