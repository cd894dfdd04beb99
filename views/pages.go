package views

import (
	"cmp"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/arisclub/site/blog"
	"github.com/arisclub/site/posts"
)

// Home renders the landing page.
func Home(p HomePage) templ.Component {
	return component(layout(p.Site, p.Meta, p.Preview,
		Section(
			Class("hero"),
			H1(g.Text(p.Site.Name)),
			g.If(p.Site.Description != "", P(Class("lead"), g.Text(p.Site.Description))),
			A(Class("button"), Href("/blog/"), g.Text("Read the blog")),
		),
		Section(
			Class("latest"),
			H2(g.Text("Latest posts")),
			postList(p.Latest, ""),
		),
	))
}

// BlogIndex renders the blog listing with its tag cloud and search form.
func BlogIndex(p IndexPage) templ.Component {
	heading := "Blog"
	switch {
	case p.Query != "":
		heading = "Search: " + p.Query
	case p.Tag != "":
		heading = "Tagged " + p.Tag
	case p.Author != "":
		heading = "Posts by " + p.Author
	}
	return component(layout(p.Site, p.Meta, p.Preview,
		H1(g.Text(heading)),
		Form(
			Class("search"),
			Method("get"),
			Action("/blog/"),
			Input(Type("search"), Name("q"), Value(p.Query), Placeholder("Search posts")),
			Button(Type("submit"), g.Text("Search")),
		),
		tagCloud(p.Tags, p.Tag),
		postList(p.Posts, p.Tag),
	))
}

// Post renders a single post page.
func Post(p PostPage) templ.Component {
	post := p.Post
	return component(layout(p.Site, p.Meta, p.Preview,
		Article(
			Class("post"),
			Header(
				H1(g.Text(post.Title)),
				postMeta(post.PublishedAt, post.Author, post.ReadingTime),
				g.If(!post.Published, P(Class("draft-note"), g.Text("Draft: not yet published"))),
				tagLinks(post.Tags, ""),
			),
			Div(Class("post-body"), g.Raw(post.ContentHTML)),
			g.If(post.AuthorBio != "", Aside(
				Class("author-bio"),
				H2(g.Text("About "+cmp.Or(post.Author, p.Site.Author))),
				P(g.Text(post.AuthorBio)),
			)),
		),
		g.If(post.Previous != nil || post.Next != nil, Nav(
			Class("post-nav"),
			g.Iff(post.Previous != nil, func() g.Node { return neighbour("Previous", post.Previous) }),
			g.Iff(post.Next != nil, func() g.Node { return neighbour("Next", post.Next) }),
		)),
		g.If(len(p.Related) > 0, Section(
			Class("related"),
			H2(g.Text("Related posts")),
			postList(p.Related, ""),
		)),
	))
}

// PreviewLogin renders the password form that unlocks draft posts.
func PreviewLogin(p LoginPage) templ.Component {
	meta := PageMeta{Title: "Preview"}
	if p.Preview {
		return component(layout(p.Site, meta, true,
			H1(g.Text("Preview")),
			P(g.Text("Drafts are visible in this session.")),
			Form(
				Method("post"),
				Action("/preview/logout/"),
				Input(Type("hidden"), Name("_csrf"), Value(p.CSRFToken)),
				Button(Type("submit"), g.Text("Log out")),
			),
		))
	}
	return component(layout(p.Site, meta, false,
		H1(g.Text("Preview")),
		g.If(p.Failed, P(Class("error"), g.Text("Wrong password."))),
		Form(
			Class("login"),
			Method("post"),
			Action("/preview/login/"),
			Input(Type("hidden"), Name("_csrf"), Value(p.CSRFToken)),
			Label(For("password"), g.Text("Password")),
			Input(Type("password"), ID("password"), Name("password"), Required()),
			Button(Type("submit"), g.Text("Log in")),
		),
	))
}

// NotFound renders the 404 page.
func NotFound(site SiteConfig) templ.Component {
	return component(layout(site, PageMeta{Title: "Not found"}, false,
		H1(g.Text("Page not found")),
		P(g.Text("The page you are looking for does not exist.")),
		A(Href("/blog/"), g.Text("Back to the blog")),
	))
}

// ServerError renders the 500 page.
func ServerError(site SiteConfig) templ.Component {
	return component(layout(site, PageMeta{Title: "Error"}, false,
		H1(g.Text("Something went wrong")),
		P(g.Text("Please try again later.")),
	))
}

func postList(items []blog.ListItem, activeTag string) g.Node {
	if len(items) == 0 {
		return P(Class("empty"), g.Text("No posts yet."))
	}
	return Ul(
		Class("post-list"),
		g.Group(g.Map(items, func(it blog.ListItem) g.Node {
			return Li(
				Class("post-item"),
				H3(A(Href(PostPath(it.Slug)), g.Text(it.Title))),
				postMeta(it.Date, it.Author, it.ReadingTime),
				g.If(it.Excerpt != "", P(Class("excerpt"), g.Text(it.Excerpt))),
				tagLinks(it.Tags, activeTag),
			)
		})),
	)
}

func postMeta(date, author string, readingTime int) g.Node {
	return P(
		Class("post-meta"),
		g.If(date != "", g.El("time", g.Attr("datetime", date), g.Text(posts.FormatDate(date)))),
		g.If(author != "", g.Group([]g.Node{
			g.Text(" · "),
			A(Href("/blog/?author="+url.QueryEscape(author)), g.Text(author)),
		})),
		g.Text(" · "+strconv.Itoa(readingTime)+" min read"),
	)
}

func tagCloud(tags []string, active string) g.Node {
	if len(tags) == 0 {
		return nil
	}
	return Nav(Class("tag-cloud"), tagLinks(tags, active))
}

func tagLinks(tags []string, active string) g.Node {
	if len(tags) == 0 {
		return nil
	}
	return Ul(
		Class("tags"),
		g.Group(g.Map(tags, func(tag string) g.Node {
			return Li(A(Class(TagClass(tag == active)), Href(TagPath(tag)), g.Text(tag)))
		})),
	)
}

func neighbour(label string, l *blog.Link) g.Node {
	return A(
		Class("post-nav-"+strings.ToLower(label)),
		Href(PostPath(l.Slug)),
		Span(Class("muted"), g.Text(label)),
		g.Text(" "+l.Title),
	)
}
