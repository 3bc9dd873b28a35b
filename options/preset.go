package options

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// SavePreset writes the current option values as a YAML id-to-value map,
// so a generation run can be repeated with the same settings.
func SavePreset(w io.Writer, s *Set) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Values()); err != nil {
		return fmt.Errorf("encoding option preset: %w", err)
	}
	return enc.Close()
}

// LoadPreset reads a YAML id-to-value map previously written by SavePreset.
func LoadPreset(r io.Reader) (map[string]string, error) {
	values := map[string]string{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("decoding option preset: %w", err)
	}
	return values, nil
}
