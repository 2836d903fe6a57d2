package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is one evaluation described in a config file: the environment
// snapshot, the organism's adaptation profile and the blend strategy.
type Scenario struct {
	Environment ScenarioEnvironment  `json:"environment" yaml:"environment"`
	Blend       string               `json:"blend" yaml:"blend"`
	Profile     []ScenarioAdaptation `json:"profile" yaml:"profile"`
}

type ScenarioEnvironment struct {
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description" yaml:"description"`
	Factors     map[string]float64 `json:"factors" yaml:"factors"`
}

type ScenarioAdaptation struct {
	Factor string  `json:"factor" yaml:"factor"`
	Shape  string  `json:"shape" yaml:"shape"`
	Trait  float64 `json:"trait" yaml:"trait"`
}

// loadScenario reads a scenario from a JSON or YAML file, chosen by
// extension (.yaml/.yml is YAML, anything else JSON).
func loadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}

	var scenario Scenario
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &scenario); err != nil {
			return Scenario{}, fmt.Errorf("parse yaml scenario %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &scenario); err != nil {
			return Scenario{}, fmt.Errorf("parse json scenario %s: %w", path, err)
		}
	}

	if err := validateScenario(scenario); err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return scenario, nil
}

func validateScenario(scenario Scenario) error {
	if scenario.Environment.Name == "" {
		return fmt.Errorf("environment name is required")
	}
	if len(scenario.Environment.Factors) == 0 {
		return fmt.Errorf("environment %s has no factors", scenario.Environment.Name)
	}
	if len(scenario.Profile) == 0 {
		return fmt.Errorf("profile is empty")
	}
	for i, entry := range scenario.Profile {
		if entry.Factor == "" {
			return fmt.Errorf("profile entry %d: factor is required", i)
		}
		if entry.Shape == "" {
			return fmt.Errorf("profile entry %d: shape is required", i)
		}
	}
	return nil
}
