package posts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/arisclub/site/markdown"
)

// Renderer turns a Markdown body into HTML.
type Renderer interface {
	Render(src []byte) (string, error)
}

// Repository reads posts from a file system whose root holds one .md file
// per post. It never writes and keeps no state between calls.
type Repository struct {
	fsys     fs.FS
	renderer Renderer
	workers  int
}

// Option configures a Repository.
type Option func(*Repository)

// WithRenderer replaces the default Markdown renderer.
func WithRenderer(r Renderer) Option {
	return func(repo *Repository) {
		repo.renderer = r
	}
}

// WithConcurrency bounds how many files All reads at once.
func WithConcurrency(n int) Option {
	return func(repo *Repository) {
		if n > 0 {
			repo.workers = n
		}
	}
}

// Dir returns the file system for the posts directory at path. The
// directory does not have to exist: a missing directory reads as empty.
func Dir(path string) fs.FS {
	return os.DirFS(path)
}

// New creates a Repository over fsys.
func New(fsys fs.FS, opts ...Option) *Repository {
	r := &Repository{
		fsys:     fsys,
		renderer: markdown.New(),
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// All loads every post, newest first. A missing directory yields an empty
// slice. Any file that fails to load fails the whole call with a
// *ParseError, including one removed while the directory was being read.
func (r *Repository) All(ctx context.Context) ([]Post, error) {
	ids, err := r.ids()
	if err != nil {
		return nil, err
	}

	list := make([]Post, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, id := range ids {
		g.Go(func() error {
			p, err := r.Get(gctx, id)
			if errors.Is(err, ErrNotFound) {
				// Listed but gone by the time it was read.
				return &ParseError{ID: id, Err: fmt.Errorf("listed but not readable: %v", err)}
			}
			if err != nil {
				return err
			}
			list[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(list, compareNewestFirst)
	return list, nil
}

// Get loads the post stored as id + Ext. It returns an error matching
// ErrNotFound when there is no such file and a *ParseError when the file
// cannot be read or parsed.
func (r *Repository) Get(ctx context.Context, id string) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}
	if !validID(id) {
		return Post{}, notFound(id)
	}

	src, err := fs.ReadFile(r.fsys, id+Ext)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Post{}, notFound(id)
		}
		return Post{}, &ParseError{ID: id, Err: err}
	}
	return r.parse(id, src)
}

// Tags returns every tag in use, sorted.
func (r *Repository) Tags(ctx context.Context) ([]string, error) {
	list, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	return CollectTags(list), nil
}

// ByTag returns the posts tagged exactly tag.
func (r *Repository) ByTag(ctx context.Context, tag string) ([]Post, error) {
	return r.query(ctx, func(list []Post) []Post { return FilterTag(list, tag) })
}

// Published returns the posts not marked "published: false".
func (r *Repository) Published(ctx context.Context) ([]Post, error) {
	return r.query(ctx, FilterPublished)
}

// ByAuthor returns the posts by author, ignoring case.
func (r *Repository) ByAuthor(ctx context.Context, author string) ([]Post, error) {
	return r.query(ctx, func(list []Post) []Post { return FilterAuthor(list, author) })
}

// Search returns the posts whose title, description or content contains
// query, ignoring case.
func (r *Repository) Search(ctx context.Context, query string) ([]Post, error) {
	return r.query(ctx, func(list []Post) []Post { return FilterQuery(list, query) })
}

// Related returns up to limit posts sharing tags with the post id, see
// RelatedTo. An unknown id yields an empty slice.
func (r *Repository) Related(ctx context.Context, id string, limit int) ([]Post, error) {
	return r.query(ctx, func(list []Post) []Post { return RelatedTo(list, id, limit) })
}

func (r *Repository) query(ctx context.Context, fn func([]Post) []Post) ([]Post, error) {
	list, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	return fn(list), nil
}

func (r *Repository) ids() ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("posts: list directory: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, Ext) {
			continue
		}
		// Names Get cannot address, such as ".md", are not posts.
		id := strings.TrimSuffix(name, Ext)
		if !validID(id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *Repository) parse(id string, src []byte) (Post, error) {
	var meta Metadata
	body, err := markdown.SplitFrontMatter(src, &meta)
	if err != nil {
		return Post{}, &ParseError{ID: id, Err: err}
	}
	html, err := r.renderer.Render(body)
	if err != nil {
		return Post{}, &ParseError{ID: id, Err: err}
	}
	return Post{
		ID:       id,
		Metadata: meta,
		Content:  string(body),
		HTML:     html,
	}, nil
}

// validID rejects ids that would reach outside the root directory.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && fs.ValidPath(id+Ext)
}
