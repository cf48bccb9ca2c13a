package models

import "time"

// Item is implemented by every content record so the persistence layer can
// stamp identity and creation time without knowing the concrete variant.
type Item interface {
	SetID(id string)
	SetCreatedAt(t time.Time)
}

// Project is a showcased project.
type Project struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	TechStack   []string  `bson:"techStack" json:"techStack"`
	GitHub      string    `bson:"github" json:"github"`
	LinkedIn    string    `bson:"linkedin" json:"linkedin"`
	ImageURL    string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Member is a team member. Admin privileges are not stored here; they only
// trigger creation of a companion User.
type Member struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Role      string    `bson:"role" json:"role"`
	LinkedIn  string    `bson:"linkedin" json:"linkedin"`
	GitHub    string    `bson:"github" json:"github"`
	Email     string    `bson:"email" json:"email"`
	PhotoURL  string    `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	ResumeURL string    `bson:"resumeUrl,omitempty" json:"resumeUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// GalleryItem is a captioned image.
type GalleryItem struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Caption     string    `bson:"caption" json:"caption"`
	Category    string    `bson:"category" json:"category"`
	Description string    `bson:"description" json:"description"`
	ImageURL    string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Blog is a blog post.
type Blog struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Date      string    `bson:"date" json:"date"`
	Category  string    `bson:"category" json:"category"`
	Author    string    `bson:"author" json:"author"`
	ReadTime  string    `bson:"readTime" json:"readTime"`
	Tags      []string  `bson:"tags" json:"tags"`
	ImageURL  string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

func (p *Project) SetCreatedAt(t time.Time)     { p.CreatedAt = t }
func (m *Member) SetCreatedAt(t time.Time)      { m.CreatedAt = t }
func (g *GalleryItem) SetCreatedAt(t time.Time) { g.CreatedAt = t }
func (b *Blog) SetCreatedAt(t time.Time)        { b.CreatedAt = t }

func (p *Project) SetID(id string)     { p.ID = id }
func (m *Member) SetID(id string)      { m.ID = id }
func (g *GalleryItem) SetID(id string) { g.ID = id }
func (b *Blog) SetID(id string)        { b.ID = id }
