package model

import (
	"sort"
	"strings"
)

// Catalog keeps records in file order.
type Catalog []MovieRecord

func (c Catalog) Clone() Catalog {
	if c == nil {
		return Catalog{}
	}
	out := make(Catalog, len(c))
	for i, r := range c {
		out[i] = r.Clone()
	}
	return out
}

// IndexesByTitle returns positions of all records whose title equals title exactly.
func (c Catalog) IndexesByTitle(title string) []int {
	var idx []int
	for i, r := range c {
		if r.Title == title {
			idx = append(idx, i)
		}
	}
	return idx
}

// Genres returns the deduplicated, lexicographically sorted set of genres across the catalog.
func (c Catalog) Genres() []string {
	seen := make(map[string]struct{})
	for _, r := range c {
		for _, g := range r.Genres {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}
			seen[g] = struct{}{}
		}
	}

	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}
