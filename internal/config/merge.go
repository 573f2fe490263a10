package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyAPI        = "api"
	keySession    = "session"
	keyLogging    = "logging"
	keyPagination = "pagination"
	keyOutput     = "output"
	keyCache      = "cache"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyAPI:        true,
	keySession:    true,
	keyLogging:    true,
	keyPagination: true,
	keyOutput:     true,
	keyCache:      true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// the target Config. Fields set in a section override the target; fields and
// sections absent from the file are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	// Discover which top-level keys are present in the overlay.
	var overlay map[string]interface{}
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		// Re-marshal the single section so we can unmarshal it onto the
		// strongly-typed target field.
		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes raw YAML bytes onto the field of target named by key.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyAPI:
		return mergeSection(data, &target.API)
	case keySession:
		return mergeSection(data, &target.Session)
	case keyLogging:
		return mergeSection(data, &target.Logging)
	case keyPagination:
		return mergeSection(data, &target.Pagination)
	case keyOutput:
		return mergeSection(data, &target.Output)
	case keyCache:
		return mergeSection(data, &target.Cache)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// mergeSection decodes data over a copy of *dst and stores the result only
// when decoding succeeds.
func mergeSection[T any](data []byte, dst *T) error {
	v := *dst
	if err := yaml.Unmarshal(data, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}
