package integration

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultScheme is the proving scheme used when none is configured. Its
// verifier takes proofs of ProofElements elements.
const DefaultScheme = "gm17"

type Config struct {
	// Binary is the path of the toolchain executable.
	Binary string `yaml:"binary"`
	Scheme string `yaml:"scheme"`
	// OutputDir holds the work directories, the verifier contracts and the
	// shared library.
	OutputDir string `yaml:"output_dir"`
	// Light skips writing the human readable circuit when compiling.
	Light bool `yaml:"light"`
	// Concurrency bounds the number of simultaneous builds of BuildAll.
	Concurrency int `yaml:"concurrency"`
	// Library optionally points to the shared library block the toolchain
	// embeds in its verifiers. The built-in block is used when empty.
	Library string `yaml:"library"`
}

func DefaultConfig() Config {
	return Config{
		Scheme:      DefaultScheme,
		OutputDir:   ".",
		Light:       true,
		Concurrency: 4,
	}
}

// ReadConfig reads a YAML configuration without validating it. Missing keys
// keep their defaults.
func ReadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfig reads and validates a YAML configuration.
func LoadConfig(path string) (Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Binary == "" {
		return errors.New("config: binary is required")
	}
	if c.Scheme == "" {
		return errors.New("config: scheme is required")
	}
	if c.OutputDir == "" {
		return errors.New("config: output_dir is required")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("config: concurrency must be positive, got %d", c.Concurrency)
	}
	return nil
}
