package config

import (
	"fmt"
	"regexp"
)

var defineNamePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// validateManifest checks that every step names its files and every define is
// a usable identifier with a scalar value.
func validateManifest(file string, m *Manifest) error {
	for name, value := range m.Defines {
		field := fmt.Sprintf("defines.%s", name)
		if !defineNamePattern.MatchString(name) {
			return NewConfigErrorWithField(ConfigValidationFailed, file, field, "define name is not an identifier")
		}
		switch value.(type) {
		case nil, bool, string, float64, int, int64:
		default:
			return NewConfigErrorWithField(ConfigValidationFailed, file, field,
				fmt.Sprintf("define value must be a boolean, string or number (got %T)", value))
		}
	}

	for i, c := range m.Copy {
		if err := validateMapping(file, fmt.Sprintf("copy[%d]", i), c); err != nil {
			return err
		}
	}
	for i, p := range m.Preprocess {
		if err := validateMapping(file, fmt.Sprintf("preprocess[%d]", i), p); err != nil {
			return err
		}
	}
	for i, c := range m.PreprocessCSS {
		field := fmt.Sprintf("preprocessCSS[%d]", i)
		if c.Mode == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, file, field+".mode", "mode cannot be empty")
		}
		if err := validateMapping(file, field, FileMapping{Source: c.Source, Destination: c.Destination}); err != nil {
			return err
		}
	}
	return nil
}

func validateMapping(file, field string, m FileMapping) error {
	if m.Source == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, file, field+".source", "source cannot be empty")
	}
	if m.Destination == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, file, field+".destination", "destination cannot be empty")
	}
	return nil
}
