package gateway

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config drives the REST gateway.
type Config struct {
	// Endpoint to listen on.
	Endpoint string `yaml:"endpoint"`

	// ConfigFS is the mount point of the kernel configfs tree.
	ConfigFS string `yaml:"configfs"`

	// OriginsAllowed restricts CORS origins; empty allows all.
	OriginsAllowed []string `yaml:"originsAllowed"`
}

// DefaultConfig returns the gateway defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint: "127.0.0.1:6789",
		ConfigFS: "/sys/kernel/config",
	}
}

// LoadConfig reads a yaml gateway configuration, applying defaults for
// absent fields.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return conf, errors.WithMessagef(err, "Failed to read config file %v", path)
	}

	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, errors.WithMessagef(err, "Failed to parse config file %v", path)
	}

	return conf, nil
}
