package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/replaysync/replaysync/constant"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a single configuration key with its default value.
type Field struct {
	Key         string
	Value       any
	Description string

	rule rule
}

// Allowed describes the accepted values, empty when anything of the right type goes.
func (f Field) Allowed() string {
	return f.rule.hint
}

// Pretty renders the field for `config info`.
func (f Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the environment variable overriding the field.
func (f Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Allowed     string `json:"allowed,omitempty"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Allowed:     f.Allowed(),
	})
}

func (f Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Parse converts command line values into the field's type and validates the result.
func (f Field) Parse(raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, errors.New("value is required")
	}

	var value any
	switch f.Value.(type) {
	case string:
		value = raw[0]
	case int:
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw[0])
		}
		value = n
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw[0])
		}
		value = b
	case []string:
		value = raw
	default:
		return nil, fmt.Errorf("unsupported type %s", f.typeName())
	}

	if err := f.Validate(value); err != nil {
		return nil, err
	}
	return value, nil
}

// Validate reports whether value is acceptable for the field.
func (f Field) Validate(value any) error {
	if f.rule.check == nil {
		return nil
	}
	if err := f.rule.check(value); err != nil {
		return fmt.Errorf("%s: %w", f.Key, err)
	}
	return nil
}
