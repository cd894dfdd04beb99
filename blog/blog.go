// Package blog shapes repository posts into the list and detail views the
// site renders, including chronological previous/next links.
package blog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/labstack/gommon/log"

	"github.com/arisclub/site/posts"
)

// ListItem is a post as shown in listings.
type ListItem struct {
	Slug        string
	Title       string
	Date        string
	Author      string
	Description string
	Excerpt     string
	ReadingTime int
	Tags        []string
	Published   bool
}

// Link points at a neighbouring post.
type Link struct {
	Slug  string
	Title string
}

// Post is a single post page.
type Post struct {
	Slug        string
	Title       string
	PublishedAt string
	Author      string
	AuthorBio   string
	Description string
	Excerpt     string
	Tags        []string
	ReadingTime int
	Content     string
	ContentHTML string
	Published   bool

	// Previous is the next older post, Next the next newer one.
	Previous *Link
	Next     *Link
}

// Repository is the part of posts.Repository the service reads from.
type Repository interface {
	All(ctx context.Context) ([]posts.Post, error)
}

// Logger receives lookup failures that Post swallows.
type Logger interface {
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Service exposes blog views over a Repository.
type Service struct {
	repo         Repository
	logger       Logger
	drafts       bool
	excerptWords int
}

// Option configures a Service.
type Option func(*Service)

// WithDrafts controls whether posts marked "published: false" are visible.
// They are by default.
func WithDrafts(include bool) Option {
	return func(s *Service) { s.drafts = include }
}

// WithLogger sets the logger used by Post.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithExcerptWords sets the length of derived excerpts.
func WithExcerptWords(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.excerptWords = n
		}
	}
}

// NewService returns a Service reading from repo.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		logger:       log.New("blog"),
		drafts:       true,
		excerptWords: posts.DefaultExcerptWords,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Slugs returns the slug of every visible post, newest first.
func (s *Service) Slugs(ctx context.Context) ([]string, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, len(list))
	for i, p := range list {
		slugs[i] = p.ID
	}
	return slugs, nil
}

// Posts lists every visible post, newest first.
func (s *Service) Posts(ctx context.Context) ([]ListItem, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.items(list), nil
}

// Filter narrows a listing. Empty fields match every post.
type Filter struct {
	Tag    string
	Author string
	Query  string
}

// List lists the visible posts matching every non-empty field of f,
// newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]ListItem, error) {
	return s.query(ctx, func(list []posts.Post) []posts.Post {
		if f.Tag != "" {
			list = posts.FilterTag(list, f.Tag)
		}
		if f.Author != "" {
			list = posts.FilterAuthor(list, f.Author)
		}
		if f.Query != "" {
			list = posts.FilterQuery(list, f.Query)
		}
		return list
	})
}

// PostsByTag lists the visible posts tagged exactly tag.
func (s *Service) PostsByTag(ctx context.Context, tag string) ([]ListItem, error) {
	return s.query(ctx, func(list []posts.Post) []posts.Post { return posts.FilterTag(list, tag) })
}

// PostsByAuthor lists the visible posts by author, ignoring case.
func (s *Service) PostsByAuthor(ctx context.Context, author string) ([]ListItem, error) {
	return s.query(ctx, func(list []posts.Post) []posts.Post { return posts.FilterAuthor(list, author) })
}

// PublishedPosts lists the posts not marked "published: false".
func (s *Service) PublishedPosts(ctx context.Context) ([]ListItem, error) {
	return s.query(ctx, posts.FilterPublished)
}

// Search lists the visible posts matching query in title, description or
// content.
func (s *Service) Search(ctx context.Context, query string) ([]ListItem, error) {
	return s.query(ctx, func(list []posts.Post) []posts.Post { return posts.FilterQuery(list, query) })
}

// Related lists up to limit visible posts sharing tags with slug.
func (s *Service) Related(ctx context.Context, slug string, limit int) ([]ListItem, error) {
	if limit <= 0 {
		limit = posts.DefaultRelatedLimit
	}
	list, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	related := posts.RelatedTo(list, slug, math.MaxInt)
	if !s.drafts {
		related = posts.FilterPublished(related)
	}
	if len(related) > limit {
		related = related[:limit]
	}
	return s.items(related), nil
}

// Tags returns the tags of the visible posts, sorted.
func (s *Service) Tags(ctx context.Context) ([]string, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return posts.CollectTags(list), nil
}

// Find returns the post page for slug. The error matches posts.ErrNotFound
// when there is no visible post with that slug and posts.ErrParse when the
// content could not be loaded.
func (s *Service) Find(ctx context.Context, slug string) (Post, error) {
	list, err := s.load(ctx)
	if err != nil {
		return Post{}, err
	}
	i := slices.IndexFunc(list, func(p posts.Post) bool { return p.ID == slug })
	if i < 0 {
		return Post{}, fmt.Errorf("blog: %w: %s", posts.ErrNotFound, slug)
	}

	p := list[i]
	view := Post{
		Slug:        p.ID,
		Title:       p.Metadata.Title,
		PublishedAt: p.Metadata.Date,
		Author:      p.Metadata.Author,
		AuthorBio:   p.Metadata.AuthorBio,
		Description: p.Metadata.Description,
		Excerpt:     cmp.Or(p.Metadata.Description, p.Metadata.Excerpt, posts.Excerpt(p.Content, s.excerptWords)),
		Tags:        p.Metadata.Tags,
		ReadingTime: posts.ReadingTime(p.Content),
		Content:     p.Content,
		ContentHTML: p.HTML,
		Published:   p.Metadata.IsPublished(),
	}
	// list is newest first: the older neighbour follows, the newer precedes.
	if i+1 < len(list) {
		view.Previous = linkTo(list[i+1])
	}
	if i > 0 {
		view.Next = linkTo(list[i-1])
	}
	return view, nil
}

// Post is Find for callers that only care whether a page exists. Failures
// are logged, not-found as a warning and anything else as an error, and
// reported as (Post{}, false).
func (s *Service) Post(ctx context.Context, slug string) (Post, bool) {
	view, err := s.Find(ctx, slug)
	switch {
	case err == nil:
		return view, true
	case errors.Is(err, posts.ErrNotFound):
		s.logger.Warnf("blog: post %q not found", slug)
	default:
		s.logger.Errorf("blog: load post %q: %v", slug, err)
	}
	return Post{}, false
}

func (s *Service) load(ctx context.Context) ([]posts.Post, error) {
	list, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	if !s.drafts {
		list = posts.FilterPublished(list)
	}
	return list, nil
}

func (s *Service) query(ctx context.Context, fn func([]posts.Post) []posts.Post) ([]ListItem, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.items(fn(list)), nil
}

func (s *Service) items(list []posts.Post) []ListItem {
	items := make([]ListItem, len(list))
	for i, p := range list {
		items[i] = ListItem{
			Slug:        p.ID,
			Title:       p.Metadata.Title,
			Date:        p.Metadata.Date,
			Author:      p.Metadata.Author,
			Description: p.Metadata.Description,
			Excerpt:     cmp.Or(p.Metadata.Excerpt, posts.Excerpt(p.Content, s.excerptWords)),
			ReadingTime: posts.ReadingTime(p.Content),
			Tags:        p.Metadata.Tags,
			Published:   p.Metadata.IsPublished(),
		}
	}
	return items
}

func linkTo(p posts.Post) *Link {
	return &Link{Slug: p.ID, Title: p.Metadata.Title}
}
