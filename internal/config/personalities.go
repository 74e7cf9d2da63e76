package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"firepit/internal/firepit"
)

type personalityFile struct {
	Personalities []firepit.Personality `koanf:"personalities"`
}

// LoadRoster builds the personality roster: the built-in profiles,
// overridden or extended by an optional YAML file.
func LoadRoster(path string) (*firepit.Roster, error) {
	profiles := firepit.BuiltinRoster()
	if path == "" {
		return firepit.NewRoster(profiles), nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load personality file %s: %w", path, err)
	}
	var pf personalityFile
	if err := k.Unmarshal("", &pf); err != nil {
		return nil, fmt.Errorf("parse personality file %s: %w", path, err)
	}

	// File entries win over built-ins with the same name.
	return firepit.NewRoster(append(profiles, pf.Personalities...)), nil
}
