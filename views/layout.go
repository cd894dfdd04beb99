package views

import (
	"cmp"
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// layout wraps page content in the shared document shell.
func layout(site SiteConfig, meta PageMeta, preview bool, content ...g.Node) g.Node {
	title := site.Name
	if meta.Title != "" && meta.Title != site.Name {
		title = meta.Title + " | " + site.Name
	}
	description := cmp.Or(meta.Description, site.Description)
	ogType := cmp.Or(meta.OGType, "website")

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(title)),
				g.If(description != "", Meta(Name("description"), Content(description))),
				g.If(meta.URL != "", Link(Rel("canonical"), Href(meta.URL))),

				Meta(g.Attr("property", "og:title"), Content(cmp.Or(meta.Title, site.Name))),
				g.If(description != "", Meta(g.Attr("property", "og:description"), Content(description))),
				Meta(g.Attr("property", "og:type"), Content(ogType)),
				g.If(meta.URL != "", Meta(g.Attr("property", "og:url"), Content(meta.URL))),
				Meta(g.Attr("property", "og:site_name"), Content(site.Name)),

				Link(Rel("stylesheet"), Href("/assets/site.css")),
				Link(Rel("alternate"), Type("application/rss+xml"), TitleAttr(site.Name), Href("/feed.xml")),
				Link(Rel("alternate"), Type("application/atom+xml"), TitleAttr(site.Name), Href("/atom.xml")),
				g.If(meta.JSONLD != "", Script(Type("application/ld+json"), g.Raw(meta.JSONLD))),
			),
			Body(
				topbar(site, preview),
				Main(Class("container"), g.Group(content)),
				footer(site),
			),
		),
	})
}

func topbar(site SiteConfig, preview bool) g.Node {
	return Header(
		Class("topbar"),
		Nav(
			Class("container"),
			A(Class("brand"), Href("/"), g.Text(site.Name)),
			A(Href("/blog/"), g.Text("Blog")),
			A(Href("/feed.xml"), g.Text("RSS")),
			g.If(preview, Span(Class("preview-badge"), g.Text("Preview"))),
		),
	)
}

func footer(site SiteConfig) g.Node {
	year := strconv.Itoa(time.Now().Year())
	return Footer(
		Class("footer"),
		Div(
			Class("container"),
			P(g.Text("© "+year+" "+site.Name)),
			g.If(site.Description != "", P(Class("muted"), g.Text(site.Description))),
		),
	)
}
