package entities

import "path/filepath"

// Repository identifies a local Git working copy to analyze.
type Repository struct {
	Name string `yaml:"name" hcl:"name,label"`
	Path string `yaml:"path" hcl:"path"`
}

// Identifier returns the name used in the dataset, defaulting to the path.
func (r Repository) Identifier() string {
	if r.Name != "" {
		return r.Name
	}
	return filepath.ToSlash(r.Path)
}
