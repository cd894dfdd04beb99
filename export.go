package site

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arisclub/site/views"
)

// Export renders every public page through the site's own handlers and
// writes the results under dir, ready for a static file host. Page paths
// become dir/<path>/index.html; files such as feed.xml keep their name.
// A 404.html is written for hosts that serve custom error pages. It
// returns the written paths relative to dir.
func (a *App) Export(ctx context.Context, dir string) ([]string, error) {
	pages, err := a.exportPaths(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("site: export: %w", err)
	}

	var (
		mu      sync.Mutex
		written []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, p := range pages {
		g.Go(func() error {
			rel, err := a.exportPage(gctx, dir, p, http.StatusOK)
			if err != nil {
				return err
			}
			mu.Lock()
			written = append(written, rel)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rel, err := a.exportPage(ctx, dir, "/404.html", http.StatusNotFound)
	if err != nil {
		return nil, err
	}
	written = append(written, rel)
	a.logger.Infof("exported %d files to %s", len(written), dir)
	return written, nil
}

// exportPaths lists the site paths a static copy needs.
func (a *App) exportPaths(ctx context.Context) ([]string, error) {
	slugs, err := a.public.Slugs(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := a.public.Tags(ctx)
	if err != nil {
		return nil, err
	}

	paths := []string{"/", "/blog/", "/feed.xml", "/atom.xml", "/sitemap.xml", "/robots.txt"}
	assets, err := assetPaths()
	if err != nil {
		return nil, err
	}
	paths = append(paths, assets...)
	for _, slug := range slugs {
		paths = append(paths, views.PostPath(slug))
	}
	for _, tag := range tags {
		paths = append(paths, views.TagPath(tag))
	}
	return paths, nil
}

func assetPaths() ([]string, error) {
	entries, err := Assets.ReadDir("assets")
	if err != nil {
		return nil, fmt.Errorf("site: export: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() {
			paths = append(paths, "/assets/"+e.Name())
		}
	}
	return paths, nil
}

// exportPage requests target and writes the response body to its file
// under dir. The response status must equal want.
func (a *App) exportPage(ctx context.Context, dir, target string, want int) (string, error) {
	req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != want {
		return "", fmt.Errorf("site: export %s: status %d", target, rec.Code)
	}

	rel, err := exportFile(target)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("site: export %s: %w", target, err)
	}
	if err := os.WriteFile(dst, rec.Body.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("site: export %s: %w", target, err)
	}
	return rel, nil
}

// exportFile maps a request path to the file that serves it statically.
func exportFile(target string) (string, error) {
	p, err := url.PathUnescape(target)
	if err != nil {
		return "", fmt.Errorf("site: export %s: %w", target, err)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "." || seg == ".." || strings.ContainsRune(seg, '\\') {
			return "", fmt.Errorf("site: export: refusing path %q", target)
		}
	}
	rel := strings.TrimPrefix(path.Clean(p), "/")
	if strings.HasSuffix(p, "/") {
		rel = path.Join(rel, "index.html")
	}
	return rel, nil
}
