package config

// File represents the structure of the grove.yaml configuration file.
type File struct {
	Graph GraphDTO `yaml:"graph"`
	Cache CacheDTO `yaml:"cache"`
	Log   LogDTO   `yaml:"log"`
}

// GraphDTO configures the Microsoft Graph connection.
type GraphDTO struct {
	BaseURL  string `yaml:"baseURL"`
	TokenEnv string `yaml:"tokenEnv"`
}

// CacheDTO configures the lookup cache and its backing file.
type CacheDTO struct {
	Path     string            `yaml:"path"`
	MaxBytes int               `yaml:"maxBytes"`
	TTL      map[string]string `yaml:"ttl"`
}

// LogDTO configures log output.
type LogDTO struct {
	JSON bool `yaml:"json"`
}
