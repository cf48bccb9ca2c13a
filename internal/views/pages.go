package views

import (
	"strings"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
	"github.com/teamsite/teamsite/internal/models"
)

type HomeProps struct {
	ProjectCount int64
	MemberCount  int64
	DaysCount    int
}

func HomePage(layout LayoutProps, props HomeProps) g.Node {
	return Layout(layout,
		H1(g.Text("Welcome")),
		Div(Class("stats"),
			stat("Projects", props.ProjectCount),
			stat("Members", props.MemberCount),
			stat("Days active", int64(props.DaysCount)),
		),
	)
}

func stat(label string, n int64) g.Node {
	return Div(Class("stat"),
		Strong(g.Textf("%d", n)),
		Span(g.Text(label)),
	)
}

type LoginProps struct {
	NextURL string
	Failed  bool
}

func LoginPage(layout LayoutProps, props LoginProps) g.Node {
	return Layout(layout,
		H1(g.Text("Login")),
		g.If(props.Failed, P(Class("error"), g.Text("Invalid email or password."))),
		FormEl(Method("post"), Action("/login"),
			Input(Type("hidden"), Name("next_url"), Value(props.NextURL)),
			Label(For("email"), g.Text("Email")),
			Input(Type("email"), ID("email"), Name("email"), Required()),
			Label(For("password"), g.Text("Password")),
			Input(Type("password"), ID("password"), Name("password"), Required()),
			Button(Type("submit"), g.Text("Login")),
		),
	)
}

func ProjectsPage(layout LayoutProps, items []*models.Project) g.Node {
	return Layout(layout,
		H1(g.Text("Projects")),
		Div(Class("cards"), g.Group(g.Map(items, func(p *models.Project) g.Node {
			return Article(Class("card"),
				image(p.ImageURL, p.Title),
				H2(g.Text(p.Title)),
				P(g.Text(p.Description)),
				P(Class("tags"), g.Text(strings.Join(p.TechStack, ", "))),
				link(p.GitHub, "GitHub"),
				link(p.LinkedIn, "LinkedIn"),
			)
		}))),
	)
}

func MembersPage(layout LayoutProps, items []*models.Member) g.Node {
	return Layout(layout,
		H1(g.Text("Members")),
		Div(Class("cards"), g.Group(g.Map(items, func(m *models.Member) g.Node {
			return Article(Class("card"),
				image(m.PhotoURL, m.Name),
				H2(g.Text(m.Name)),
				P(g.Text(m.Role)),
				link(m.GitHub, "GitHub"),
				link(m.LinkedIn, "LinkedIn"),
				link(m.ResumeURL, "Resume"),
			)
		}))),
	)
}

func GalleryPage(layout LayoutProps, items []*models.GalleryItem) g.Node {
	return Layout(layout,
		H1(g.Text("Gallery")),
		Div(Class("gallery"), g.Group(g.Map(items, func(it *models.GalleryItem) g.Node {
			return Figure(
				image(it.ImageURL, it.Caption),
				FigCaption(g.Text(it.Caption)),
				Small(g.Text(it.Category)),
			)
		}))),
	)
}

func BlogsPage(layout LayoutProps, items []*models.Blog) g.Node {
	return Layout(layout,
		H1(g.Text("Blogs")),
		g.Group(g.Map(items, func(b *models.Blog) g.Node {
			return Article(Class("post"),
				image(b.ImageURL, b.Title),
				H2(g.Text(b.Title)),
				P(Class("meta"), g.Textf("%s · %s · %s · %s", b.Author, b.Date, b.Category, b.ReadTime)),
				P(g.Text(b.Content)),
				P(Class("tags"), g.Text(strings.Join(b.Tags, ", "))),
			)
		})),
	)
}

func image(url, alt string) g.Node {
	return g.If(url != "", Img(Src(url), Alt(alt)))
}

func link(url, label string) g.Node {
	return g.If(url != "", A(Href(url), Target("_blank"), Rel("noopener"), g.Text(label)))
}
