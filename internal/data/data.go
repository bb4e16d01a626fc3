// Package data ships the static reference datasets.
package data

import (
	_ "embed"
	"fmt"
	"os"

	"agrisense-be/internal/entity"

	"gopkg.in/yaml.v3"
)

//go:embed schemes.yaml
var embeddedSchemes []byte

// LoadSchemes reads the scheme dataset from path, or the embedded copy when path is empty.
// JSON files are accepted too since JSON is valid YAML.
func LoadSchemes(path string) ([]entity.Scheme, error) {
	raw := embeddedSchemes
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schemes file %s: %w", path, err)
		}
		raw = b
	}
	return ParseSchemes(raw)
}

func ParseSchemes(raw []byte) ([]entity.Scheme, error) {
	var schemes []entity.Scheme
	if err := yaml.Unmarshal(raw, &schemes); err != nil {
		return nil, fmt.Errorf("parse schemes: %w", err)
	}
	for i, s := range schemes {
		if s.Name == "" {
			return nil, fmt.Errorf("parse schemes: record %d has no name", i)
		}
	}
	return schemes, nil
}
