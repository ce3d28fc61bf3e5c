package main

import (
	"fmt"
	"iter"
	"os"

	"github.com/poiesic/materia/core"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML layout accepted by the seeder.
type Fixture struct {
	Libraries []LibraryFixture `yaml:"libraries"`
}

type LibraryFixture struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	SourcePath  string            `yaml:"source_path"`
	Materials   []MaterialFixture `yaml:"materials"`
}

type MaterialFixture struct {
	Filename   string             `yaml:"filename"`
	FilePath   string             `yaml:"file_path"`
	ShaderPath string             `yaml:"shader_path"`
	Samplers   []SamplerFixture   `yaml:"samplers"`
	Parameters []ParameterFixture `yaml:"parameters"`
}

type SamplerFixture struct {
	Type   string `yaml:"type"`
	Path   string `yaml:"path"`
	Key    int    `yaml:"key"`
	ExtraX int    `yaml:"extra_x"`
	ExtraY int    `yaml:"extra_y"`
}

type ParameterFixture struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
}

func parseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

func loadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return parseFixture(data)
}

// materials yields the core records of a library fixture, bound to lib.
func (lf LibraryFixture) materials(lib core.LibraryID) iter.Seq2[*core.Material, error] {
	return func(yield func(*core.Material, error) bool) {
		for _, mf := range lf.Materials {
			m, err := mf.toMaterial(lib)
			if !yield(m, err) || err != nil {
				return
			}
		}
	}
}

func (mf MaterialFixture) toMaterial(lib core.LibraryID) (*core.Material, error) {
	m := &core.Material{
		LibraryId:  lib,
		Filename:   mf.Filename,
		FilePath:   mf.FilePath,
		ShaderPath: mf.ShaderPath,
		Samplers:   make([]core.Sampler, 0, len(mf.Samplers)),
		Parameters: make([]core.Parameter, 0, len(mf.Parameters)),
	}
	for _, sf := range mf.Samplers {
		m.Samplers = append(m.Samplers, core.Sampler{
			Type:   sf.Type,
			Path:   sf.Path,
			Key:    sf.Key,
			ExtraX: sf.ExtraX,
			ExtraY: sf.ExtraY,
		})
	}
	for i, pf := range mf.Parameters {
		v, err := toValue(pf.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: parameter %q: %w", mf.Filename, pf.Name, err)
		}
		m.Parameters = append(m.Parameters, core.Parameter{Name: pf.Name, Type: pf.Type, Value: v, Key: i})
	}
	return m, nil
}

// toValue maps a decoded YAML scalar or sequence to a parameter value.
// Booleans become 1 or 0; sequences must be numeric.
func toValue(raw any) (core.Value, error) {
	switch v := raw.(type) {
	case nil:
		return core.Value{}, nil
	case bool:
		if v {
			return core.NumberValue(1), nil
		}
		return core.NumberValue(0), nil
	case int:
		return core.NumberValue(float64(v)), nil
	case float64:
		return core.NumberValue(v), nil
	case string:
		return core.StringValue(v), nil
	case []any:
		arr := make([]float64, 0, len(v))
		for _, elem := range v {
			n, err := toValue(elem)
			if err != nil {
				return core.Value{}, err
			}
			if n.Kind != core.ValueNumber {
				return core.Value{}, fmt.Errorf("array element %v is not a number", elem)
			}
			arr = append(arr, n.Number)
		}
		return core.ArrayValue(arr...), nil
	}
	return core.Value{}, fmt.Errorf("unsupported value %v (%T)", raw, raw)
}
