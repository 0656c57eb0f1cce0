// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial content of the stores
type Seed struct {
	Proposals []SeedProposal `yaml:"proposals"`
	Reports   []SeedReport   `yaml:"reports"`
}

type SeedProposal struct {
	Title     string         `yaml:"title"`
	Author    string         `yaml:"author"`
	Target    string         `yaml:"target"`
	Category  string         `yaml:"category"`
	Problem   string         `yaml:"problem"`
	Details   string         `yaml:"details"`
	Effect    string         `yaml:"effect"`
	Cost1     int            `yaml:"cost_1"`
	Cost2     int            `yaml:"cost_2"`
	Cost3     int            `yaml:"cost_3"`
	CreatorID string         `yaml:"creator_id"`
	Votes     map[string]int `yaml:"votes"`
}

type SeedReport struct {
	Type     string `yaml:"type"`
	Env      string `yaml:"env"`
	Details  string `yaml:"details"`
	Archived bool   `yaml:"archived"`
}

// DefaultSeed returns the built-in sample data
func DefaultSeed() Seed {
	seed, err := ParseSeed(defaultSeed)
	if err != nil {
		panic("embedded seed is invalid: " + err.Error())
	}
	return seed
}

// LoadSeed reads seed data from a YAML file; an empty path means the
// built-in sample data.
func LoadSeed(path string) (Seed, error) {
	if path == "" {
		return DefaultSeed(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("reading seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("parsing seed: %w", err)
	}
	return seed, nil
}
