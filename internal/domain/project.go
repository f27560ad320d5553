package domain

import (
	"errors"
	"fmt"
)

// Project pairs one OS service with one filesystem root and display metadata.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Service     string `json:"service"` // service manager identifier, also the allow-list key
	URL         string `json:"url"`     // informational only
	Path        string `json:"path"`    // root of the browsable files
}

var (
	ErrEmptyCatalog     = errors.New("no projects configured")
	ErrDuplicateService = errors.New("duplicate service identifier")
)

// Catalog is the process-wide project list. It is built once at startup and
// never mutated, so it is safe to share across request handlers without locking.
type Catalog struct {
	projects  []Project
	byService map[string]int
}

// NewCatalog freezes the given projects in order.
func NewCatalog(projects []Project) (*Catalog, error) {
	if len(projects) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		projects:  make([]Project, len(projects)),
		byService: make(map[string]int, len(projects)),
	}
	copy(c.projects, projects)

	for i, p := range c.projects {
		if _, dup := c.byService[p.Service]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateService, p.Service)
		}
		c.byService[p.Service] = i
	}
	return c, nil
}

// Projects returns the projects in configured order. The returned slice is a copy.
func (c *Catalog) Projects() []Project {
	out := make([]Project, len(c.projects))
	copy(out, c.projects)
	return out
}

// Lookup resolves a service identifier to its project.
func (c *Catalog) Lookup(service string) (Project, bool) {
	i, ok := c.byService[service]
	if !ok {
		return Project{}, false
	}
	return c.projects[i], true
}

// Allows reports whether service is one of the configured identifiers.
func (c *Catalog) Allows(service string) bool {
	_, ok := c.byService[service]
	return ok
}

func (c *Catalog) Len() int { return len(c.projects) }
