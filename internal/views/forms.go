package views

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

// The add-* forms post multipart data to the JSON API; the script on the page
// shows the returned message.

func uploadForm(action string, fields ...g.Node) g.Node {
	return FormEl(Class("upload-form"), Method("post"), Action(action), EncType("multipart/form-data"),
		g.Group(fields),
		Button(Type("submit"), g.Text("Save")),
		P(Class("form-result")),
	)
}

func textField(name, label string, required bool) g.Node {
	return Div(Class("field"),
		Label(For(name), g.Text(label)),
		Input(Type("text"), ID(name), Name(name), g.If(required, Required())),
	)
}

func areaField(name, label string) g.Node {
	return Div(Class("field"),
		Label(For(name), g.Text(label)),
		Textarea(ID(name), Name(name), Required()),
	)
}

func fileField(name, label, accept string) g.Node {
	return Div(Class("field"),
		Label(For(name), g.Text(label)),
		Input(Type("file"), ID(name), Name(name), Accept(accept)),
	)
}

func AddProjectPage(layout LayoutProps) g.Node {
	return Layout(layout,
		H1(g.Text("Add project")),
		uploadForm("/api/projects",
			textField("projectTitle", "Title", true),
			areaField("projectDescription", "Description"),
			textField("techStack", "Tech stack (comma separated)", true),
			textField("linkedinLink", "LinkedIn", true),
			textField("githubLink", "GitHub", true),
			fileField("projectImage", "Image", "image/*"),
		),
	)
}

func AddMemberPage(layout LayoutProps) g.Node {
	return Layout(layout,
		H1(g.Text("Add member")),
		uploadForm("/api/members",
			textField("fullName", "Full name", true),
			textField("role", "Role", true),
			Div(Class("field"),
				Label(For("email"), g.Text("Email")),
				Input(Type("email"), ID("email"), Name("email"), Required()),
			),
			Div(Class("field"),
				Label(For("password"), g.Text("Password (admins only)")),
				Input(Type("password"), ID("password"), Name("password")),
			),
			textField("linkedin", "LinkedIn", false),
			textField("github", "GitHub", false),
			fileField("profileImage", "Photo", "image/*"),
			fileField("resume", "Resume", ".pdf,.doc,.docx"),
			Div(Class("field"),
				Label(
					Input(Type("checkbox"), Name("adminPrivileges"), Value("true")),
					g.Text(" Admin privileges"),
				),
			),
		),
	)
}

func AddImagePage(layout LayoutProps) g.Node {
	return Layout(layout,
		H1(g.Text("Add image")),
		uploadForm("/api/gallery",
			textField("caption", "Caption", true),
			textField("category", "Category", true),
			areaField("description", "Description"),
			fileField("image", "Image", "image/*"),
		),
	)
}

func AddBlogPage(layout LayoutProps) g.Node {
	return Layout(layout,
		H1(g.Text("Add blog post")),
		uploadForm("/api/blogs",
			textField("title", "Title", true),
			areaField("content", "Content"),
			Div(Class("field"),
				Label(For("date"), g.Text("Date")),
				Input(Type("date"), ID("date"), Name("date"), Required()),
			),
			textField("category", "Category", true),
			textField("author", "Author", true),
			Div(Class("field"),
				Label(For("readTime"), g.Text("Read time (minutes)")),
				Input(Type("number"), ID("readTime"), Name("readTime"), Min("1"), Required()),
			),
			textField("tags", "Tags (comma separated)", true),
			fileField("image", "Image", "image/*"),
		),
	)
}
