package site

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arisclub/site/views"
)

func (a *App) handlePreview(c echo.Context) error {
	if !a.Config.PreviewEnabled() {
		return echo.ErrNotFound
	}
	return a.renderLogin(c, http.StatusOK, false)
}

func (a *App) handlePreviewLogin(c echo.Context) error {
	if !a.Config.PreviewEnabled() {
		return echo.ErrNotFound
	}
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.PreviewPassword)) == 1 {
		if err := setPreviewSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/blog/")
	}
	a.loginLimiter.Record(ip)
	c.Logger().Warnf("preview: failed login from %s", ip)
	return a.renderLogin(c, http.StatusUnauthorized, true)
}

func (a *App) handlePreviewLogout(c echo.Context) error {
	if !a.Config.PreviewEnabled() {
		return echo.ErrNotFound
	}
	if err := clearPreviewSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) renderLogin(c echo.Context, code int, failed bool) error {
	return RenderStatus(c, code, a.Views.PreviewLogin(views.LoginPage{
		Site:      a.Config.view(),
		Failed:    failed,
		Preview:   IsPreview(c),
		CSRFToken: CsrfToken(c),
	}))
}
