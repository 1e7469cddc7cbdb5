package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/v2"

	"github.com/pyrelease/relgate/internal/fsutil"
)

// SetConfigValue sets a key in a JSON config file, creating the file if
// needed. The key and value are validated against KnownKeys first; other keys
// already in the file are kept.
func SetConfigValue(filePath, key, value string) error {
	parsed, err := ValidateValue(key, value)
	if err != nil {
		return fmt.Errorf("validating value: %w", err)
	}

	k := koanf.New(".")
	if err := loadFileIfExists(k, filePath); err != nil {
		return err
	}
	if err := k.Set(key, parsed.Parsed); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	content, err := k.Marshal(json.Parser())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	mode, err := fsutil.FileMode(filePath, 0o644)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(filePath, append(content, '\n'), mode); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
