// Package config loads Captain's run configuration (config.yaml).
//
// The configuration names the converter modules to load and the commands
// to publish, in order:
//
//	version: "2.1"
//	modules:
//	  - parser_requirements
//	  - parser_pyproject
//	commands:
//	  - req
//	  - pyproject
//
// Unlike the manifest, the configuration is validated strictly: a modules
// or commands entry of the wrong shape aborts the run with a structural
// error (ErrCodeInvalidConfig, exit code 2), while an unreadable or
// unparseable file maps to ErrCodeUnreadableConfig (exit code 1).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/captain/pkg/errors"
)

// DefaultFile is the configuration filename used in examples and docs.
const DefaultFile = "config.yaml"

// DefaultVersion is the banner version used when config.yaml has none.
const DefaultVersion = "1.0-Beta"

// Config describes a single Captain run. Commands execute in slice order;
// duplicates are permitted and re-executed. The struct is read once per
// run and treated as immutable afterwards.
type Config struct {
	Version  string
	Modules  []string
	Commands []string
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnreadableConfig, err, "read %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnreadableConfig, err, "parse configuration")
	}
	if doc == nil {
		doc = map[string]any{}
	}
	mapping, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "configuration must be a YAML mapping")
	}

	cfg := &Config{Version: DefaultVersion}
	if v, present := mapping["version"]; present && v != nil {
		cfg.Version = fmt.Sprintf("%v", v)
	}

	var err error
	if cfg.Modules, err = stringList(mapping, "modules", "module"); err != nil {
		return nil, err
	}
	if cfg.Commands, err = stringList(mapping, "commands", "command"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// stringList extracts an optional list-of-strings key. An absent or null
// key yields nil; any other shape is a structural error.
func stringList(mapping map[string]any, key, item string) ([]string, error) {
	v, present := mapping[key]
	if !present || v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "'%s' must be a list", key)
	}
	list := make([]string, 0, len(raw))
	for _, entry := range raw {
		s, ok := entry.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "each %s in '%s' must be a string", item, key)
		}
		list = append(list, s)
	}
	return list, nil
}
