// Package anchor derives bookmark identifiers from part and chapter titles.
//
// The same Slug function names both the in-body bookmark and the table of
// contents link, so a TOC entry always resolves to its title.
package anchor

import (
	"regexp"
	"strings"
)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lower-cases title, collapses every run of characters outside [a-z0-9]
// into one hyphen and trims hyphens from both ends. Slug is idempotent.
func Slug(title string) string {
	s := nonAlnumRun.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// Collision reports two distinct titles that share an anchor.
type Collision struct {
	Anchor    string
	First     string
	Duplicate string
}

// Registry records claimed anchors and detects collisions.
// Anchors are never rewritten: the first title to claim an anchor keeps it
// and later titles with the same slug are reported.
type Registry struct {
	owners     map[string]string
	collisions []Collision
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{owners: make(map[string]string)}
}

// Resolve returns the anchor for title and whether this call claimed it.
// A repeated identical title resolves to the same anchor without being
// reported; a distinct title with the same slug is recorded as a Collision.
// An empty slug is never claimed.
func (r *Registry) Resolve(title string) (id string, first bool) {
	id = Slug(title)
	if id == "" {
		return "", false
	}

	owner, taken := r.owners[id]
	if !taken {
		r.owners[id] = title
		return id, true
	}
	if owner != title {
		r.collisions = append(r.collisions, Collision{Anchor: id, First: owner, Duplicate: title})
	}
	return id, false
}

// Collisions returns the collisions recorded so far.
func (r *Registry) Collisions() []Collision {
	return append([]Collision(nil), r.collisions...)
}
