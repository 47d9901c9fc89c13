package keyword

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed weights.yaml
var defaultWeightsYAML []byte

// Component indexes into a WeightVector.
const (
	ComponentExperience = iota
	ComponentKeywordMatch
	ComponentCertifications
	ComponentCommunication
	ComponentProjectRelevance
	componentCount
)

// WeightVector holds the five sub-score coefficients of a role, in Component order.
type WeightVector [componentCount]float64

// Sum returns the total of the coefficients.
func (w WeightVector) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// WeightTable is the closed mapping from job role to weight vector.
// It is immutable after construction.
type WeightTable struct {
	roles map[string]WeightVector
	order []string
}

type weightFile struct {
	Roles []struct {
		Name    string    `yaml:"name"`
		Weights []float64 `yaml:"weights"`
	} `yaml:"roles"`
}

// DefaultWeightTable returns the built-in role table.
func DefaultWeightTable() *WeightTable {
	table, err := ParseWeightTable(defaultWeightsYAML)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded weights.yaml: %v", err))
	}
	return table
}

// LoadWeightTable reads a role table from a YAML file.
func LoadWeightTable(path string) (*WeightTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights file %s: %w", path, err)
	}
	table, err := ParseWeightTable(data)
	if err != nil {
		return nil, fmt.Errorf("weights file %s: %w", path, err)
	}
	return table, nil
}

// ParseWeightTable parses a YAML role table. Every role needs exactly five
// non-negative weights and role names must be unique.
func ParseWeightTable(data []byte) (*WeightTable, error) {
	var file weightFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse weights YAML: %w", err)
	}
	if len(file.Roles) == 0 {
		return nil, fmt.Errorf("weights table defines no roles")
	}

	table := &WeightTable{roles: make(map[string]WeightVector, len(file.Roles))}
	for _, role := range file.Roles {
		name := strings.TrimSpace(role.Name)
		if name == "" {
			return nil, fmt.Errorf("role with empty name")
		}
		if _, dup := table.roles[name]; dup {
			return nil, fmt.Errorf("duplicate role %q", name)
		}
		if len(role.Weights) != componentCount {
			return nil, fmt.Errorf("role %q has %d weights, want %d", name, len(role.Weights), componentCount)
		}
		var vector WeightVector
		for i, w := range role.Weights {
			if w < 0 {
				return nil, fmt.Errorf("role %q has negative weight at position %d", name, i)
			}
			vector[i] = w
		}
		table.roles[name] = vector
		table.order = append(table.order, name)
	}
	return table, nil
}

// Lookup returns the weight vector of role, or *UnknownRoleError.
func (t *WeightTable) Lookup(role string) (WeightVector, error) {
	vector, ok := t.roles[role]
	if !ok {
		return WeightVector{}, &UnknownRoleError{Role: role, Known: t.Roles()}
	}
	return vector, nil
}

// Roles returns the role names in declaration order.
func (t *WeightTable) Roles() []string {
	return append([]string(nil), t.order...)
}
