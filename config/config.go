// Package config holds server configuration, layered from defaults, an
// optional YAML file, and TARIFF_-prefixed environment variables.
package config

// Config is the complete server configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database path. ":memory:" for in-memory.
	DBPath string `koanf:"db_path"`

	// AllowedOrigins is the CORS allowlist for the frontend.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Addr:   ":8080",
		DBPath: "tariff.db",
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:8080",
		},
	}
}
