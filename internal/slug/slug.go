// Package slug turns display titles into URL-safe identifiers.
package slug

import (
	"strconv"
	"strings"

	gslug "github.com/gosimple/slug"
)

// Fallback is returned for titles that contain nothing sluggable.
const Fallback = "untitled"

type Generator struct {
	fallback string
}

func New() *Generator { return &Generator{fallback: Fallback} }

// Make is a pure function of title: lowercase, transliterated to ASCII,
// runs of anything that is not a letter or digit collapsed into a single
// hyphen, no leading or trailing hyphen. It never returns "".
func (g *Generator) Make(title string) string {
	// gosimple keeps underscores; routes here use hyphens only.
	s := gslug.Make(strings.ReplaceAll(title, "_", " "))
	if s == "" {
		return g.fallback
	}
	return s
}

// Unique returns Make(title), suffixed with -2, -3, ... until it is not in taken.
func (g *Generator) Unique(title string, taken map[string]struct{}) string {
	base := g.Make(title)
	if _, ok := taken[base]; !ok {
		return base
	}
	for n := 2; ; n++ {
		cand := base + "-" + strconv.Itoa(n)
		if _, ok := taken[cand]; !ok {
			return cand
		}
	}
}
