package projects

import (
	"fmt"

	"github.com/MrSnakeDoc/hostdash/internal/domain"
)

// Builtin is the project list used when no projects file is configured.
var Builtin = []domain.Project{
	{
		Name:        "SignalEdge",
		Description: "Live trading signals — ETH, XRP, ADA, SOL, LTC, BCH, DOGE",
		Service:     "signaledge",
		URL:         "http://89.167.67.39",
		Path:        "/opt/signaledge",
	},
}

// LoadCatalog builds the catalog from path, or from Builtin when path is empty.
func LoadCatalog(path string) (*domain.Catalog, error) {
	if path == "" {
		return domain.NewCatalog(Builtin)
	}

	f, err := NewLoader(path).Load()
	if err != nil {
		return nil, err
	}

	list, err := NewMapper().MapProjects(f)
	if err != nil {
		return nil, fmt.Errorf("invalid projects file %s: %w", path, err)
	}

	catalog, err := domain.NewCatalog(list)
	if err != nil {
		return nil, fmt.Errorf("invalid projects file %s: %w", path, err)
	}
	return catalog, nil
}
