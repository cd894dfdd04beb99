package site

import (
	"net/url"
	"path"
	"strings"

	"github.com/arisclub/site/blog"
	"github.com/arisclub/site/markdown"
	"github.com/arisclub/site/views"
)

// descriptionLength bounds meta descriptions derived from post content.
const descriptionLength = 160

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// postDescription is the meta description of a post: its excerpt with
// Markdown stripped, else the start of its plain text.
func postDescription(p blog.Post) string {
	if p.Excerpt != "" {
		return markdown.PlainText(p.Excerpt, descriptionLength)
	}
	return markdown.PlainText(p.Content, descriptionLength)
}

func (a *App) pageMeta(title, description string, segments ...string) views.PageMeta {
	return views.PageMeta{
		Title:       title,
		Description: description,
		URL:         BuildURL(a.Config.URL, segments...),
		OGType:      "website",
	}
}

func (a *App) postMeta(p blog.Post) views.PageMeta {
	description := postDescription(p)
	return views.PageMeta{
		Title:       p.Title,
		Description: description,
		URL:         BuildURL(a.Config.URL, "blog", p.Slug),
		OGType:      "article",
		JSONLD:      views.BlogPostingJsonLD(a.Config.view(), p, description),
	}
}
