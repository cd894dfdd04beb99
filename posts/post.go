// Package posts loads Markdown blog posts from a directory and answers the
// queries the site needs: chronological listing, tags, authors, search and
// related posts.
//
// Nothing is cached. Every Repository call reads the source again, so edits
// to the directory show up on the next request.
package posts

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ext is the file extension of post sources.
const Ext = ".md"

// Metadata is the front matter of a post. Title, Description, Author and
// Date are expected on every post; keys without a dedicated field land in
// Extra.
type Metadata struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	// Date is kept as written; use ParseDate to interpret it.
	Date      string    `yaml:"date"`
	Tags      Tags      `yaml:"tags"`
	Published Published `yaml:"published"`
	Excerpt   string    `yaml:"excerpt"`
	AuthorBio string    `yaml:"authorBio"`

	Extra map[string]any `yaml:",inline"`
}

// IsPublished reports whether the post is visible. Only an explicit
// "published: false" hides a post.
func (m Metadata) IsPublished() bool {
	return !m.Published.draft
}

// Published is the "published" front matter key. Only the YAML boolean
// false marks a draft. A missing key or any other value, the quoted string
// "false" included, leaves the post published.
type Published struct {
	draft bool
}

// Draft reports whether the key was the boolean false.
func (p Published) Draft() bool { return p.draft }

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Published) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!bool" {
		return nil
	}
	var b bool
	if err := value.Decode(&b); err != nil {
		return err
	}
	p.draft = !b
	return nil
}

// Post is a parsed source file.
type Post struct {
	// ID is the file name without Ext.
	ID       string
	Metadata Metadata
	// Content is the raw Markdown body, front matter removed.
	Content string
	HTML    string
}

// Tags is an ordered tag list. In front matter it may be written either as a
// YAML sequence or as a single comma separated string.
type Tags []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Tags) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*t = list
		return nil
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*t = splitTags(s)
		return nil
	}
	return fmt.Errorf("tags: line %d: expected a list or a string", value.Line)
}

// Contains reports whether tag is present, compared exactly.
func (t Tags) Contains(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

// Shared counts the entries of other that also appear in t.
func (t Tags) Shared(other Tags) int {
	n := 0
	for _, v := range other {
		if t.Contains(v) {
			n++
		}
	}
	return n
}

func splitTags(s string) Tags {
	var out Tags
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
