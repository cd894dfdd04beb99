package site

import (
	"cmp"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/arisclub/site/posts"
)

type feedFormat int

const (
	feedRSS feedFormat = iota
	feedAtom
)

// buildFeed assembles the feed of published posts, newest first. Posts
// without a parseable date are left undated.
func (a *App) buildFeed(c echo.Context) (*feeds.Feed, error) {
	items, err := a.public.Posts(c.Request().Context())
	if err != nil {
		return nil, err
	}
	feed := &feeds.Feed{
		Title:       a.Config.Name,
		Link:        &feeds.Link{Href: BuildURL(a.Config.URL)},
		Description: a.Config.Description,
		Id:          BuildURL(a.Config.URL),
	}
	if a.Config.Author != "" {
		feed.Author = &feeds.Author{Name: a.Config.Author}
	}
	for _, it := range items {
		postURL := BuildURL(a.Config.URL, "blog", it.Slug)
		item := &feeds.Item{
			Title:       it.Title,
			Link:        &feeds.Link{Href: postURL},
			Id:          postURL,
			Description: cmp.Or(it.Description, it.Excerpt),
		}
		if it.Author != "" {
			item.Author = &feeds.Author{Name: it.Author}
		}
		if t, ok := posts.ParseDate(it.Date); ok {
			item.Created = t
			if t.After(feed.Updated) {
				feed.Updated = t
			}
		}
		feed.Items = append(feed.Items, item)
	}
	if feed.Updated.IsZero() {
		feed.Updated = time.Now().UTC()
	}
	feed.Created = feed.Updated
	return feed, nil
}

func (a *App) renderFeed(c echo.Context, format feedFormat) error {
	feed, err := a.buildFeed(c)
	if err != nil {
		return err
	}
	var body, contentType string
	switch format {
	case feedAtom:
		body, err = feed.ToAtom()
		contentType = "application/atom+xml; charset=utf-8"
	default:
		body, err = feed.ToRss()
		contentType = "application/rss+xml; charset=utf-8"
	}
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentType, []byte(body))
}
