package driver

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read by the CLI when no -config flag is given and
// the file exists.
const DefaultConfigFile = ".tsparse.yaml"

// Config holds the settings that can be kept in a YAML file.
type Config struct {
	Locations bool   `yaml:"locations"`
	Format    Format `yaml:"format"`
	Color     bool   `yaml:"color"`
	Debug     bool   `yaml:"debug"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{Format: FormatJSON, Color: true}
}

// LoadConfig reads a YAML config file over the defaults. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes YAML from r over the defaults.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if _, err := ParseFormat(string(c.Format)); err != nil {
		return err
	}
	return nil
}
