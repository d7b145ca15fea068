// Package gallery holds the project catalog and the state behind the project grid:
// tag filtering, card interaction and the modal image carousel.
package gallery

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrInvalidCatalog is wrapped by every catalog validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Project is one entry of the portfolio.
type Project struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Image       string   `yaml:"image" json:"image"`
	Images      []string `yaml:"images,omitempty" json:"images,omitempty"`
	Tags        []string `yaml:"tags" json:"tags"`
	Link        string   `yaml:"link,omitempty" json:"link,omitempty"`
	Featured    bool     `yaml:"featured,omitempty" json:"featured,omitempty"`
	MobileApp   bool     `yaml:"mobile_app,omitempty" json:"mobile_app,omitempty"`
	DetailView  bool     `yaml:"detail_view,omitempty" json:"detail_view,omitempty"`
}

// HasTag reports whether tag is one of the project's tags.
func (p Project) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// CardTags returns the tags shown on the card face.
func (p Project) CardTags() []string {
	if len(p.Tags) <= 3 {
		return p.Tags
	}
	return p.Tags[:3]
}

func (p Project) clone() Project {
	p.Tags = slices.Clone(p.Tags)
	p.Images = slices.Clone(p.Images)
	return p
}

// Catalog is the ordered, immutable collection of projects.
type Catalog struct {
	projects []Project
	byID     map[string]int
	tags     []string
}

// NewCatalog validates projects and builds a catalog preserving their order.
func NewCatalog(projects []Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]Project, 0, len(projects)),
		byID:     make(map[string]int, len(projects)),
	}
	seen := make(map[string]struct{})
	for i, p := range projects {
		if err := validateProject(p); err != nil {
			return nil, fmt.Errorf("%w: project #%d: %w", ErrInvalidCatalog, i+1, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate project id %q", ErrInvalidCatalog, p.ID)
		}
		c.byID[p.ID] = len(c.projects)
		c.projects = append(c.projects, p.clone())
		for _, tag := range p.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			c.tags = append(c.tags, tag)
		}
	}
	slices.Sort(c.tags)
	return c, nil
}

// ParseCatalog decodes a YAML list of projects.
func ParseCatalog(data []byte) (*Catalog, error) {
	var projects []Project
	if err := yaml.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(projects)
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

func validateProject(p Project) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("missing id")
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("project %q: missing title", p.ID)
	}
	if len(p.Tags) == 0 {
		return fmt.Errorf("project %q: no tags", p.ID)
	}
	for _, tag := range p.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("project %q: empty tag", p.ID)
		}
	}
	if p.Link != "" {
		u, err := url.Parse(p.Link)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("project %q: link %q is not an absolute http(s) url", p.ID, p.Link)
		}
	}
	return nil
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.projects)
}

// All returns every project in catalog order.
func (c *Catalog) All() []Project {
	return c.Filter(All)
}

// Get looks a project up by id.
func (c *Catalog) Get(id string) (Project, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Project{}, false
	}
	return c.projects[i].clone(), true
}
