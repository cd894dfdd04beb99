package site

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arisclub/site/posts"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists the landing page, the blog index, every published
// post and every tag page.
func (a *App) renderSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := a.public.Posts(ctx)
	if err != nil {
		return err
	}
	tags, err := a.public.Tags(ctx)
	if err != nil {
		return err
	}

	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "blog")},
	}
	for _, it := range items {
		u := sitemapURL{Loc: BuildURL(base, "blog", it.Slug)}
		if t, ok := posts.ParseDate(it.Date); ok {
			u.LastMod = t.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	for _, tag := range tags {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "blog", "tags", tag)})
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	out, err := xml.Marshal(sitemap)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}
