package seed

// File is the top-level structure of the seed services.yaml.
type File struct {
	Services []ServiceProps `yaml:"services"`
}

// ServiceProps contains the declared properties of one seeded service.
type ServiceProps struct {
	Name           string   `yaml:"name"`
	URL            string   `yaml:"url"`
	Type           string   `yaml:"type,omitempty"`
	Description    string   `yaml:"description,omitempty"`
	Tags           []string `yaml:"tags,omitempty"`
	AlertThreshold int      `yaml:"alertThreshold,omitempty"`
	CheckInterval  int      `yaml:"checkInterval,omitempty"`
	Enabled        *bool    `yaml:"enabled,omitempty"`
}
