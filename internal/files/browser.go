// Package files exposes read-only browsing of whitelisted files directly under
// a project's root directory.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/MrSnakeDoc/hostdash/internal/domain"
)

var (
	ErrUnknownProject = errors.New("unknown project")
	ErrNotAllowed     = errors.New("not allowed")
)

// AllowedExtensions is the whitelist of browsable suffixes. Matching is case-sensitive.
var AllowedExtensions = map[string]struct{}{
	".py":   {},
	".js":   {},
	".ts":   {},
	".json": {},
	".yaml": {},
	".yml":  {},
	".toml": {},
	".ini":  {},
	".cfg":  {},
	".conf": {},
	".md":   {},
	".txt":  {},
	".log":  {},
	".sh":   {},
	".html": {},
	".css":  {},
	".sql":  {},
}

// File is a browsable file and its decoded text.
type File struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Browser resolves service identifiers to project roots through the catalog.
type Browser struct {
	catalog *domain.Catalog
}

func NewBrowser(catalog *domain.Catalog) *Browser {
	return &Browser{catalog: catalog}
}

// List returns the whitelisted regular files directly under the project root,
// sorted by name. Directories and other files are omitted.
func (b *Browser) List(service string) ([]string, error) {
	p, ok := b.catalog.Lookup(service)
	if !ok {
		return nil, ErrUnknownProject
	}

	entries, err := os.ReadDir(p.Path)
	if err != nil {
		return []string{}, fmt.Errorf("failed to list %s: %w", p.Path, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !Allowed(name) {
			continue
		}
		// Stat follows symlinks, so a link to a regular file is listed.
		info, err := os.Stat(filepath.Join(p.Path, name))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// Read returns the content of name inside the project root. Only the last
// path segment of name is used, so "../../etc/passwd" reads "<root>/passwd".
func (b *Browser) Read(service, name string) (File, error) {
	p, ok := b.catalog.Lookup(service)
	if !ok {
		return File{}, ErrUnknownProject
	}

	base := Sanitize(name)
	if base == "" || base == "." || base == ".." || !Allowed(base) {
		return File{}, ErrNotAllowed
	}

	path := filepath.Join(p.Path, base)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return File{}, ErrNotAllowed
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return File{Filename: base, Content: DecodeText(data)}, nil
}

// Sanitize discards every directory component of name.
func Sanitize(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Allowed reports whether the extension of name is whitelisted.
func Allowed(name string) bool {
	_, ok := AllowedExtensions[extension(name)]
	return ok
}

// extension mirrors POSIX splitext: leading dots never start an extension,
// so ".txt" has none while "..notes.txt" has ".txt".
func extension(name string) string {
	stem := strings.TrimLeft(name, ".")
	if stem == "" {
		return ""
	}
	return filepath.Ext(stem)
}

// DecodeText decodes data as UTF-8, replacing each invalid byte with U+FFFD.
func DecodeText(data []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "�")
	}
	return string(out)
}
