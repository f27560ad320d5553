package projects

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/hostdash/internal/domain"
)

// serviceIDPattern matches unit names systemctl accepts without quoting.
// A leading '-' is excluded so an identifier can never be read as a flag.
var serviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9@._][A-Za-z0-9@._:-]*$`)

// Mapper converts file entries to domain.Project values
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapProjects validates entries and converts them, preserving order.
func (m *Mapper) MapProjects(f File) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(f.Projects))

	for i, e := range f.Projects {
		service := strings.TrimSpace(e.Service)
		if service == "" {
			return nil, fmt.Errorf("project #%d (%q): service is required", i+1, e.Name)
		}
		if !serviceIDPattern.MatchString(service) {
			return nil, fmt.Errorf("project #%d (%q): invalid service identifier %q", i+1, e.Name, service)
		}

		path := strings.TrimSpace(e.Path)
		if path == "" {
			return nil, fmt.Errorf("project %q: path is required", service)
		}
		if !filepath.IsAbs(path) {
			return nil, fmt.Errorf("project %q: path must be absolute, got %q", service, path)
		}

		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = service
		}

		out = append(out, domain.Project{
			Name:        name,
			Description: e.Description,
			Service:     service,
			URL:         e.URL,
			Path:        filepath.Clean(path),
		})
	}

	return out, nil
}
