package configparser

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadYamlFile reads a YAML file and loads every scalar into the environment.
// Nested keys are joined with "_" and upper-cased: database.max_conns becomes
// DATABASE_MAX_CONNS. Values may reference the environment as ${VAR:-default}.
// Variables that are already set are left untouched.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}

	vars, err := Flatten(data)
	if err != nil {
		return err
	}

	for key, value := range vars {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("could not set env var %s: %w", key, err)
		}
	}
	return nil
}

// Flatten parses YAML into SECTION_KEY variables with ${VAR:-default} expanded.
func Flatten(data []byte) (map[string]string, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("error reading YAML file: %w", err)
	}

	vars := make(map[string]string)
	flatten("", root, vars)
	return vars, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		fullKey := strings.ToUpper(key)
		if prefix != "" {
			fullKey = prefix + "_" + fullKey
		}

		switch v := value.(type) {
		case map[string]any:
			flatten(fullKey, v, out)
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				items = append(items, expand(scalar(item)))
			}
			out[fullKey] = strings.Join(items, ",")
		case nil:
			// Skip empty values, they don't represent environment variables
		default:
			out[fullKey] = expand(scalar(v))
		}
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// expand replaces ${VAR} and ${VAR:-default} with the environment value or the default
func expand(value string) string {
	return envRef.ReplaceAllStringFunc(value, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		if env := os.Getenv(m[1]); env != "" {
			return env
		}
		return strings.TrimSpace(m[2])
	})
}
