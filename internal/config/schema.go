package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ConfigValueType is the type a config value is parsed into by 'config set'.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
	TypeEnum
)

// String names the type for 'config keys'.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema describes one settable key.
type ConfigKeySchema struct {
	Path          string
	Type          ConfigValueType
	AllowedValues []string // enum only
	Min, Max      int      // inclusive; both zero means unbounded
	Description   string
}

// KnownKeys lists every key relgate reads from its config files.
var KnownKeys = map[string]ConfigKeySchema{
	"state_file": {
		Path:        "state_file",
		Type:        TypeString,
		Description: "Release state file written by 'state init' and read by 'check'",
	},
	"state_dir": {
		Path:        "state_dir",
		Type:        TypeString,
		Description: "Directory holding the check history",
	},
	"docs_glob": {
		Path:        "docs_glob",
		Type:        TypeString,
		Description: "Doublestar pattern of files scanned by 'docs bump'",
	},
	"docs_member": {
		Path:        "docs_member",
		Type:        TypeString,
		Description: "Docs archive member scanned for (unreleased) markers",
	},
	"confirm_mode": {
		Path:          "confirm_mode",
		Type:          TypeEnum,
		AllowedValues: []string{ConfirmPrompt, ConfirmDeny},
		Description:   "How check questions are answered: prompt the operator, or deny",
	},
	"show_progress": {
		Path:        "show_progress",
		Type:        TypeBool,
		Description: "Show per-check progress lines and the spinner",
	},
	"max_history": {
		Path:        "max_history",
		Type:        TypeInt,
		Min:         1,
		Max:         10000,
		Description: "Maximum number of history entries kept",
	},
}

// KeyNames returns the known keys in sorted order.
func KeyNames() []string {
	return slices.Sorted(maps.Keys(KnownKeys))
}

// ErrUnknownKey names a key missing from KnownKeys.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema looks up path in KnownKeys.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue is a command-line value converted to its key's type.
type ParsedValue struct {
	Raw    string
	Parsed interface{}
	Type   ConfigValueType
}

// ValidateValue parses value as the type registered for key.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return parseValue(schema, value)
}

func parseValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeInt:
		return parseIntValue(schema, value)
	case TypeEnum:
		return parseEnumValue(schema, value)
	case TypeString:
		if strings.TrimSpace(value) == "" {
			return ParsedValue{}, fmt.Errorf("%s must not be empty", schema.Path)
		}
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

func parseBoolValue(value string) (ParsedValue, error) {
	lower := strings.ToLower(value)
	if lower != "true" && lower != "false" {
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
	return ParsedValue{Raw: value, Parsed: lower == "true", Type: TypeBool}, nil
}

func parseIntValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
	}
	if (schema.Min != 0 || schema.Max != 0) && (n < schema.Min || n > schema.Max) {
		return ParsedValue{}, fmt.Errorf("%s must be between %d and %d, got %d", schema.Path, schema.Min, schema.Max, n)
	}
	return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
}

func parseEnumValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	if !slices.Contains(schema.AllowedValues, value) {
		return ParsedValue{}, fmt.Errorf("invalid value: %q (valid options: %s)", value, strings.Join(schema.AllowedValues, ", "))
	}
	return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
}
