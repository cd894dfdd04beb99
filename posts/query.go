package posts

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultRelatedLimit is the number of related posts returned when no
// positive limit is given.
const DefaultRelatedLimit = 3

// The functions below work on an already loaded list and keep its order.
// Repository methods are thin wrappers that load the list first.

// CollectTags returns every tag used in list, de-duplicated and sorted.
func CollectTags(list []Post) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, p := range list {
		for _, t := range p.Metadata.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	slices.Sort(tags)
	return tags
}

// FilterTag keeps posts tagged exactly tag.
func FilterTag(list []Post, tag string) []Post {
	return filter(list, func(p Post) bool { return p.Metadata.Tags.Contains(tag) })
}

// FilterPublished drops posts marked "published: false".
func FilterPublished(list []Post) []Post {
	return filter(list, func(p Post) bool { return p.Metadata.IsPublished() })
}

// FilterAuthor keeps posts whose author equals author, ignoring case.
func FilterAuthor(list []Post, author string) []Post {
	return filter(list, func(p Post) bool { return strings.EqualFold(p.Metadata.Author, author) })
}

// FilterQuery keeps posts whose title, description or content contains
// query, ignoring case.
func FilterQuery(list []Post, query string) []Post {
	q := strings.ToLower(query)
	return filter(list, func(p Post) bool {
		return strings.Contains(strings.ToLower(p.Metadata.Title), q) ||
			strings.Contains(strings.ToLower(p.Metadata.Description), q) ||
			strings.Contains(strings.ToLower(p.Content), q)
	})
}

// RelatedTo ranks the posts of list that share tags with the post id, most
// shared tags first. Ties keep list order. The post itself is never
// included and at most limit posts are returned.
func RelatedTo(list []Post, id string, limit int) []Post {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	i := slices.IndexFunc(list, func(p Post) bool { return p.ID == id })
	if i < 0 || len(list[i].Metadata.Tags) == 0 {
		return []Post{}
	}
	current := list[i].Metadata.Tags

	type scored struct {
		post   Post
		shared int
	}
	var candidates []scored
	for _, p := range list {
		if p.ID == id {
			continue
		}
		if n := current.Shared(p.Metadata.Tags); n > 0 {
			candidates = append(candidates, scored{post: p, shared: n})
		}
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		return cmp.Compare(b.shared, a.shared)
	})

	related := make([]Post, 0, min(limit, len(candidates)))
	for _, c := range candidates {
		if len(related) == limit {
			break
		}
		related = append(related, c.post)
	}
	return related
}

func filter(list []Post, keep func(Post) bool) []Post {
	out := []Post{}
	for _, p := range list {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
