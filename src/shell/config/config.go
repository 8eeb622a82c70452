// Package config reads the YAML file used by the host-side shell tools.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Prompt        string       `yaml:"prompt"`
	ReadTimeoutMs int          `yaml:"read_timeout_ms"`
	EchoPath      *bool        `yaml:"echo_path"`
	LogLevel      string       `yaml:"log_level"`
	Serial        SerialConfig `yaml:"serial"`
}

// ---- SERIAL ----

// SerialConfig names the board link. An empty Device means the local terminal.
type SerialConfig struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

// Load reads and decodes path. Unknown keys are an error.
// The result is not normalized or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes an in-memory document, same rules as Load. An empty
// document yields the zero Config.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// PathEcho reports whether the shell should print "path: <name>" before
// dispatching. Unset means yes.
func (c *Config) PathEcho() bool {
	if c.EchoPath == nil {
		return true
	}
	return *c.EchoPath
}
