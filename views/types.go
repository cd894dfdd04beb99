package views

import "github.com/arisclub/site/blog"

// SiteConfig holds the site-wide settings every page needs.
type SiteConfig struct {
	Name        string // SITE_NAME
	URL         string // SITE_URL, canonical base without trailing slash
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string // raw schema.org document, omitted when empty
}

// HomePage is the landing page.
type HomePage struct {
	Site    SiteConfig
	Meta    PageMeta
	Latest  []blog.ListItem
	Preview bool
}

// IndexPage is the blog listing, optionally narrowed by tag, author or a
// search query.
type IndexPage struct {
	Site    SiteConfig
	Meta    PageMeta
	Posts   []blog.ListItem
	Tags    []string
	Tag     string
	Author  string
	Query   string
	Preview bool
}

// PostPage is a single post with its related posts.
type PostPage struct {
	Site    SiteConfig
	Meta    PageMeta
	Post    blog.Post
	Related []blog.ListItem
	Preview bool
}

// LoginPage is the draft preview login form.
type LoginPage struct {
	Site      SiteConfig
	Failed    bool
	Preview   bool
	CSRFToken string
}
