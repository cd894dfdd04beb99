package blog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arisclub/site/posts"
)

type recordingLogger struct {
	warnings []string
	errors   []string
}

func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func file(front, body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("---\n" + front + "---\n" + body)}
}

func scenario() fstest.MapFS {
	return fstest.MapFS{
		"a.md": file("title: Alpha\ndescription: First\nauthor: Jane\ndate: 2024-01-01\ntags: [x, y]\n", "alpha body"),
		"b.md": file("title: Bravo\nauthor: Jane\ndate: 2024-02-01\ntags: [y]\n", "bravo body"),
		"c.md": file("title: Charlie\nauthor: Sam\ndate: 2024-03-01\ntags: [z]\nexcerpt: Hand written.\n", "charlie body"),
	}
}

func newService(fsys fstest.MapFS, opts ...Option) *Service {
	return NewService(posts.New(fsys), opts...)
}

func slugs(items []ListItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Slug
	}
	return out
}

func TestSlugs(t *testing.T) {
	got, err := newService(scenario()).Slugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, got)
}

func TestPosts(t *testing.T) {
	items, err := newService(scenario()).Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	c := items[0]
	assert.Equal(t, "c", c.Slug)
	assert.Equal(t, "Charlie", c.Title)
	assert.Equal(t, "2024-03-01", c.Date)
	assert.Equal(t, "Sam", c.Author)
	assert.Equal(t, "Hand written.", c.Excerpt, "front matter excerpt wins")
	assert.Equal(t, 1, c.ReadingTime)
	assert.Equal(t, []string{"z"}, c.Tags)
	assert.True(t, c.Published)

	a := items[2]
	assert.Equal(t, "First", a.Description)
	assert.Equal(t, "alpha body", strings.TrimSpace(a.Excerpt), "derived excerpt")
}

func TestPostsEmptyDirectory(t *testing.T) {
	svc := NewService(posts.New(posts.Dir(filepath.Join(t.TempDir(), "posts"))))

	items, err := svc.Posts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFindNeighbours(t *testing.T) {
	svc := newService(scenario())

	b, err := svc.Find(context.Background(), "b")
	require.NoError(t, err)
	require.NotNil(t, b.Previous)
	require.NotNil(t, b.Next)
	assert.Equal(t, Link{Slug: "a", Title: "Alpha"}, *b.Previous)
	assert.Equal(t, Link{Slug: "c", Title: "Charlie"}, *b.Next)

	c, err := svc.Find(context.Background(), "c")
	require.NoError(t, err)
	assert.Nil(t, c.Next, "newest post has no newer neighbour")
	assert.Equal(t, "b", c.Previous.Slug)

	a, err := svc.Find(context.Background(), "a")
	require.NoError(t, err)
	assert.Nil(t, a.Previous, "oldest post has no older neighbour")
	assert.Equal(t, "b", a.Next.Slug)
}

func TestFindFields(t *testing.T) {
	fsys := scenario()
	fsys["d.md"] = file("title: Delta\nauthor: Jane\nauthorBio: Writes a lot.\ndate: 2024-04-01\n", "# Big\n\n"+strings.Repeat("word ", 250))
	svc := newService(fsys)

	d, err := svc.Find(context.Background(), "d")
	require.NoError(t, err)
	assert.Equal(t, "Delta", d.Title)
	assert.Equal(t, "2024-04-01", d.PublishedAt)
	assert.Equal(t, "Writes a lot.", d.AuthorBio)
	assert.Equal(t, 2, d.ReadingTime)
	assert.True(t, strings.HasSuffix(d.Excerpt, posts.ExcerptEllipsis))
	assert.Contains(t, d.ContentHTML, "Big</h1>")
	assert.Contains(t, d.Content, "# Big")

	a, err := svc.Find(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "First", a.Excerpt, "description wins over the derived excerpt")

	c, err := svc.Find(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, "Hand written.", c.Excerpt)
}

func TestFindNotFound(t *testing.T) {
	_, err := newService(scenario()).Find(context.Background(), "missing")
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestFindCorruptContent(t *testing.T) {
	fsys := scenario()
	fsys["bad.md"] = &fstest.MapFile{Data: []byte("---\ntags: {broken\n---\n")}

	_, err := newService(fsys).Find(context.Background(), "a")
	assert.ErrorIs(t, err, posts.ErrParse)
	assert.NotErrorIs(t, err, posts.ErrNotFound)
}

func TestPostFailsSoftly(t *testing.T) {
	logger := &recordingLogger{}
	fsys := scenario()
	svc := newService(fsys, WithLogger(logger))

	_, ok := svc.Post(context.Background(), "missing")
	assert.False(t, ok)
	assert.Len(t, logger.warnings, 1)
	assert.Empty(t, logger.errors)

	fsys["bad.md"] = &fstest.MapFile{Data: []byte("---\ntitle: [oops\n---\n")}
	_, ok = svc.Post(context.Background(), "a")
	assert.False(t, ok)
	assert.Len(t, logger.errors, 1, "corrupt content is reported separately from missing posts")

	delete(fsys, "bad.md")
	p, ok := svc.Post(context.Background(), "a")
	assert.True(t, ok)
	assert.Equal(t, "Alpha", p.Title)
}

func TestDraftVisibility(t *testing.T) {
	fsys := scenario()
	fsys["wip.md"] = file("title: Work in progress\nauthor: Jane\ndate: 2024-02-15\ntags: [y]\npublished: false\n", "draft")

	public := newService(fsys, WithDrafts(false))
	preview := newService(fsys)

	got, err := public.Slugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, got)

	got, err = preview.Slugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "wip", "b", "a"}, got)

	_, err = public.Find(context.Background(), "wip")
	assert.ErrorIs(t, err, posts.ErrNotFound)

	b, err := public.Find(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "c", b.Next.Slug, "drafts are skipped when linking neighbours")

	related, err := public.Related(context.Background(), "a", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, slugs(related))

	related, err = preview.Related(context.Background(), "a", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"wip", "b"}, slugs(related))

	published, err := preview.PublishedPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, slugs(published))
}

func TestQueries(t *testing.T) {
	svc := newService(scenario())
	ctx := context.Background()

	tagged, err := svc.PostsByTag(ctx, "y")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, slugs(tagged))

	byAuthor, err := svc.PostsByAuthor(ctx, "JANE")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, slugs(byAuthor))

	found, err := svc.Search(ctx, "charlie")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, slugs(found))

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, tags)

	related, err := svc.Related(ctx, "a", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, slugs(related))
}

func TestList(t *testing.T) {
	svc := newService(scenario())
	ctx := context.Background()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"c", "b", "a"}},
		{"tag", Filter{Tag: "y"}, []string{"b", "a"}},
		{"tag and author", Filter{Tag: "y", Author: "jane"}, []string{"b", "a"}},
		{"tag and query", Filter{Tag: "y", Query: "bravo"}, []string{"b"}},
		{"author and query", Filter{Author: "Sam", Query: "alpha"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slugs(got))
		})
	}
}

func TestWithExcerptWords(t *testing.T) {
	fsys := fstest.MapFS{
		"long.md": file("title: Long\ndate: 2024-01-01\n", "one two three four five"),
	}
	svc := newService(fsys, WithExcerptWords(3))

	items, err := svc.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "one two three...", items[0].Excerpt)

	p, err := svc.Find(context.Background(), "long")
	require.NoError(t, err)
	assert.Equal(t, "one two three...", p.Excerpt)

	items, err = newService(fsys, WithExcerptWords(0)).Posts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "one two three four five", items[0].Excerpt, "non-positive lengths keep the default")
}
