// Package config provides YAML-based application configuration for the
// parlor platform: where game progress is persisted, where content packs
// live, and how recognized-speech input is delivered.
package config

// Config is the application-level configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Content Content `yaml:"content"`
	Voice   Voice   `yaml:"voice"`
	Server  Server  `yaml:"server"`
}

// Storage configures progress persistence.
type Storage struct {
	// Path to the SQLite database file. "~" expands to the user's home.
	Path string `yaml:"path"`
}

// Content configures level-pack loading.
type Content struct {
	// Dir overrides the content pack search path. When empty the packs
	// embedded in the binary are used.
	Dir string `yaml:"dir"`
}

// Voice configures the recognized-speech input stream.
type Voice struct {
	// Source is either "stdin" or a path to a FIFO/file of
	// newline-delimited recognized text.
	Source string `yaml:"source"`
}

// Server configures the SSH front end.
type Server struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}
