// Package views renders the site's HTML pages with gomponents.
package views

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

type LayoutProps struct {
	Title    string
	UserName string // empty when nobody is logged in
}

func navbar(props LayoutProps) g.Node {
	return Nav(Class("nav"),
		Div(Class("nav-left"),
			A(Class("brand"), Href("/"), g.Text("Home")),
			A(Href("/projects"), g.Text("Projects")),
			A(Href("/members"), g.Text("Members")),
			A(Href("/gallery"), g.Text("Gallery")),
			A(Href("/blogs"), g.Text("Blogs")),
		),
		Div(Class("nav-right"),
			g.If(props.UserName == "",
				A(Href("/login"), g.Text("Login")),
			),
			g.If(props.UserName != "",
				Div(Class("row"),
					Span(g.Textf("Logged in as %s", props.UserName)),
					A(Href("/add-project"), g.Text("Add project")),
					A(Href("/add-member"), g.Text("Add member")),
					A(Href("/add-image"), g.Text("Add image")),
					A(Href("/add-blog"), g.Text("Add blog")),
					A(Href("/logout"), g.Text("Logout")),
				),
			),
		),
	)
}

// Layout wraps page content in the common document shell.
func Layout(props LayoutProps, children ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Link(Rel("stylesheet"), Href("/assets/css/main.css")),
				TitleEl(g.Text(props.Title)),
			),
			Body(
				Div(Class("container"),
					navbar(props),
					Main(g.Group(children)),
				),
				Script(Src("/scripts/main.js"), Defer()),
			),
		),
	)
}
