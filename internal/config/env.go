package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by the HTTP server
const (
	EnvAddr    = "VCPGO_ADDR"
	EnvTables  = "VCPGO_TABLES"
	EnvOrigins = "VCPGO_ALLOWED_ORIGINS"
)

// DefaultAddr is used when VCPGO_ADDR is unset
const DefaultAddr = ":8080"

// ServerConfig holds the settings of the HTTP server
type ServerConfig struct {
	Addr           string
	TablesPath     string
	AllowedOrigins []string
}

// LoadServerConfig reads the server settings from the environment after
// loading the given dotenv files. Missing files are skipped; variables
// already set in the environment win over the files.
func LoadServerConfig(envFiles ...string) (*ServerConfig, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	cfg := &ServerConfig{
		Addr:           DefaultAddr,
		TablesPath:     os.Getenv(EnvTables),
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Addr = addr
	}
	if origins := os.Getenv(EnvOrigins); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
