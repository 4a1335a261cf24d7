package repository

// Repository represents version controlled or package managed source tree
type Repository struct {
	Kind   string   `yaml:"kind"`
	Root   string   `yaml:"root"`
	Origin string   `yaml:"origin,omitempty"`
	Info   *Project `yaml:"info,omitempty"`
}

// Project represents information about a detected PHP project
type Project struct {
	RootPath     string `yaml:"rootPath"`              // Absolute path to the project root directory
	Type         string `yaml:"type"`                  // Type of project (composer, git or unknown)
	Name         string `yaml:"name,omitempty"`        // Name of the project (composer package name or directory)
	RelativePath string `yaml:"relativePath"`          // Path from project root to the specified file
	Description  string `yaml:"description,omitempty"` // Composer package description
}
