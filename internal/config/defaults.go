package config

import _ "embed"

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in configuration used when no config file
// is found anywhere on the search path.
func Default() Config {
	return Config{
		Storage: Storage{Path: "~/.parlor/parlor.db"},
		Content: Content{Dir: ""},
		Voice:   Voice{Source: "stdin"},
		Server: Server{
			Host:        "localhost",
			Port:        23235,
			HostKeyPath: ".ssh/parlor_ed25519",
		},
	}
}
