package site

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arisclub/site/blog"
	"github.com/arisclub/site/posts"
	"github.com/arisclub/site/views"
)

// latestPosts is the number of posts shown on the landing page.
const latestPosts = 3

// blogFor picks the service matching the visitor: drafts are only listed
// for preview sessions.
func (a *App) blogFor(c echo.Context) *blog.Service {
	if IsPreview(c) {
		return a.preview
	}
	return a.public
}

func (a *App) handleHome(c echo.Context) error {
	items, err := a.public.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	if len(items) > latestPosts {
		items = items[:latestPosts]
	}
	meta := a.pageMeta(a.Config.Name, a.Config.Description)
	meta.JSONLD = views.WebsiteJsonLD(a.Config.view())
	return Render(c, a.Views.Home(views.HomePage{
		Site:    a.Config.view(),
		Meta:    meta,
		Latest:  items,
		Preview: IsPreview(c),
	}))
}

func (a *App) handleBlogIndex(c echo.Context) error {
	svc := a.blogFor(c)
	filter := blog.Filter{
		Tag:    strings.TrimSpace(c.QueryParam("tag")),
		Author: strings.TrimSpace(c.QueryParam("author")),
		Query:  strings.TrimSpace(c.QueryParam("q")),
	}
	return a.renderIndex(c, svc, filter, a.pageMeta("Blog", a.Config.Description, "blog"))
}

func (a *App) handleTag(c echo.Context) error {
	tag := pathParam(c, "tag")
	svc := a.blogFor(c)
	items, err := svc.PostsByTag(c.Request().Context(), tag)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return echo.ErrNotFound
	}
	meta := a.pageMeta("Posts tagged "+tag, a.Config.Description, "blog", "tags", tag)
	return a.renderIndex(c, svc, blog.Filter{Tag: tag}, meta)
}

func (a *App) renderIndex(c echo.Context, svc *blog.Service, filter blog.Filter, meta views.PageMeta) error {
	ctx := c.Request().Context()
	items, err := svc.List(ctx, filter)
	if err != nil {
		return err
	}
	tags, err := svc.Tags(ctx)
	if err != nil {
		return err
	}
	return Render(c, a.Views.BlogIndex(views.IndexPage{
		Site:    a.Config.view(),
		Meta:    meta,
		Posts:   items,
		Tags:    tags,
		Tag:     filter.Tag,
		Author:  filter.Author,
		Query:   filter.Query,
		Preview: IsPreview(c),
	}))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	svc := a.blogFor(c)
	post, ok := svc.Post(ctx, pathParam(c, "slug"))
	if !ok {
		return echo.ErrNotFound
	}
	related, err := svc.Related(ctx, post.Slug, posts.DefaultRelatedLimit)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(views.PostPage{
		Site:    a.Config.view(),
		Meta:    a.postMeta(post),
		Post:    post,
		Related: related,
		Preview: IsPreview(c),
	}))
}

// pathParam returns the named route parameter with any percent-encoding
// left in place by the router removed.
func pathParam(c echo.Context, name string) string {
	v := c.Param(name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func (a *App) handleRSS(c echo.Context) error {
	return a.renderFeed(c, feedRSS)
}

func (a *App) handleAtom(c echo.Context) error {
	return a.renderFeed(c, feedAtom)
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nDisallow: /preview/\n\nSitemap: " + a.Config.URL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

func (a *App) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config.view()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		if !errors.Is(err, context.Canceled) {
			c.Logger().Errorf("server error: %v", err)
		}
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config.view()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
