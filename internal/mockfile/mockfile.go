// Package mockfile provides parsing of declarative mock-server definitions.
package mockfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition describes a whole mock server in YAML form.
type Definition struct {
	Name   string     `yaml:"name"`
	Port   int        `yaml:"port,omitempty"`
	Prefix string     `yaml:"prefix,omitempty"`
	Delay  string     `yaml:"delay,omitempty"`
	Auth   *AuthDef   `yaml:"auth,omitempty"`
	Routes []RouteDef `yaml:"routes"`
}

// AuthDef describes the shared-secret auth gate.
type AuthDef struct {
	Token  string `yaml:"token"`
	Header string `yaml:"header,omitempty"`
}

// RouteDef describes one route binding, or a CRUD bundle when Crud is set.
// Body carries a static JSON value; Generate maps field names to named
// generators (uuid, timestamp, lorem, counter). The two are mutually
// exclusive.
type RouteDef struct {
	Method     string            `yaml:"method,omitempty"`
	Path       string            `yaml:"path,omitempty"`
	Crud       string            `yaml:"crud,omitempty"`
	MaxResults int               `yaml:"max_results,omitempty"`
	Delay      string            `yaml:"delay,omitempty"`
	Body       any               `yaml:"body,omitempty"`
	Generate   map[string]string `yaml:"generate,omitempty"`
}

// ParseFile parses a mock definition from a YAML file.
func ParseFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Parse(data)
}

// Parse parses a mock definition from YAML bytes.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &def, nil
}

// ToYAML converts a definition back to YAML bytes.
func ToYAML(def *Definition) ([]byte, error) {
	return yaml.Marshal(def)
}
