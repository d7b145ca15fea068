package gallery

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		tag  string
		want []string
	}{
		{tag: All, want: []string{"a", "b", "c", "d"}},
		{tag: "Go", want: []string{"a", "c"}},
		{tag: "React", want: []string{"b", "c"}},
		{tag: "Swift", want: []string{"d"}},
		{tag: "react", want: []string{}},
		{tag: "Rust", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got := c.Filter(tt.tag)
			require.NotNil(t, got)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Fatalf("Filter(%q) mismatch (-want +got):\n%s", tt.tag, diff)
			}
		})
	}
}

func TestFilterExactness(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	for _, tag := range c.Tags() {
		got := c.Filter(tag)
		var want []string
		for _, p := range c.All() {
			if p.HasTag(tag) {
				want = append(want, p.ID)
			}
		}
		assert.Equal(t, want, ids(got), "tag %q", tag)
	}

	assert.Equal(t, ids(c.All()), ids(c.Filter(All)))
	assert.Len(t, c.Filter(All), c.Len())
}

func TestTagsVocabulary(t *testing.T) {
	c := testCatalog(t)
	if diff := cmp.Diff([]string{"Go", "HTMX", "React", "Swift"}, c.Tags()); diff != "" {
		t.Fatalf("Tags() mismatch (-want +got):\n%s", diff)
	}

	def, err := DefaultCatalog()
	require.NoError(t, err)
	tags := def.Tags()
	seen := map[string]bool{}
	for i, tag := range tags {
		assert.False(t, seen[tag], "duplicate tag %q", tag)
		seen[tag] = true
		if i > 0 {
			assert.Less(t, tags[i-1], tag)
		}
	}
	assert.True(t, def.HasTag("React Native"))
	assert.False(t, def.HasTag("Haskell"))
}

func TestSelection(t *testing.T) {
	var s Selection
	assert.True(t, s.IsActive(All))

	s.Select("Go")
	assert.Equal(t, "Go", s.Tag())

	s.Select("Go")
	assert.True(t, s.IsActive("Go"), "re-selecting keeps the tag active")

	s.Clear()
	assert.Equal(t, All, s.Tag())
}
