package projects

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/hostdash/internal/utils"
)

// Loader handles loading and parsing of projects.yaml
type Loader struct {
	filePath string
}

// NewLoader creates a new projects loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the projects file. Unknown keys are rejected.
func (l *Loader) Load() (File, error) {
	fh, err := os.Open(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read projects file: %w", err)
	}
	defer utils.Close(fh)

	var f File
	dec := yaml.NewDecoder(fh)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("failed to parse projects yaml: %w", err)
	}

	return f, nil
}
