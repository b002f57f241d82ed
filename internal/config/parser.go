package config

import (
	"gopkg.in/yaml.v3"
)

// YAML implements koanf.Parser for YAML config files.
type YAML struct{}

// Parser returns a YAML parser for koanf.
func Parser() *YAML {
	return &YAML{}
}

// Unmarshal parses YAML bytes into a nested map. An empty document yields an
// empty map.
func (p *YAML) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal encodes a nested map as YAML.
func (p *YAML) Marshal(o map[string]interface{}) ([]byte, error) {
	return yaml.Marshal(o)
}
