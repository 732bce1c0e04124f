package configparser

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// LoadDotEnv loads .env files when they exist. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("could not load %s: %w", p, err)
		}
	}
	return nil
}

// LoadAndParseYaml loads .env and the YAML file into the environment, then
// fills cfg from it using envconfig tags. A missing YAML file is tolerated so
// the service can run on environment and defaults alone.
func LoadAndParseYaml(filepath string, cfg any) error {
	if err := LoadDotEnv(); err != nil {
		return err
	}

	if err := LoadYamlFile(filepath); err != nil && !errors.Is(err, ErrNoFilePath) && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return Parse(cfg)
}

// Parse fills cfg from the environment.
func Parse(cfg any) error {
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("could not parse environment: %w", err)
	}
	return nil
}
