package projects

// File is the top-level structure of projects.yaml.
type File struct {
	Projects []Entry `yaml:"projects"`
}

// Entry is one project as written in projects.yaml.
type Entry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Service     string `yaml:"service"`
	URL         string `yaml:"url,omitempty"`
	Path        string `yaml:"path"`
}
