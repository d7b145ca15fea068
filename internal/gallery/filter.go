package gallery

import "slices"

// All is the empty selection: no tag, the whole catalog.
const All = ""

// Filter returns the projects carrying tag, in catalog order. The All selection
// returns the full catalog. An unknown tag yields an empty, non-nil slice.
func (c *Catalog) Filter(tag string) []Project {
	out := make([]Project, 0, len(c.projects))
	for _, p := range c.projects {
		if tag == All || p.HasTag(tag) {
			out = append(out, p.clone())
		}
	}
	return out
}

// Tags returns the tag vocabulary: every distinct tag once, sorted.
func (c *Catalog) Tags() []string {
	return slices.Clone(c.tags)
}

// HasTag reports whether any project carries tag.
func (c *Catalog) HasTag(tag string) bool {
	_, found := slices.BinarySearch(c.tags, tag)
	return found
}

// Selection is the state of the tag bar. Selecting the active tag again keeps
// it active; only Clear returns to All.
type Selection struct {
	tag string
}

// Select makes tag the active selection.
func (s *Selection) Select(tag string) {
	s.tag = tag
}

// Clear returns to the All selection.
func (s *Selection) Clear() {
	s.tag = All
}

// Tag returns the active tag, All when none is selected.
func (s Selection) Tag() string {
	return s.tag
}

// IsActive reports whether tag is the active selection. IsActive(All) is true
// when nothing is selected.
func (s Selection) IsActive(tag string) bool {
	return s.tag == tag
}
