package match

import (
	"fmt"
	"strings"
)

// Feature identifies one of the six scored characteristics of a material.
type Feature int

const (
	SamplerTypes Feature = iota
	ShaderPath
	SamplerCount
	Parameters
	MaterialKeywords
	SamplerPaths

	// NumFeatures is the number of Feature variants.
	NumFeatures = 6
)

var featureNames = [NumFeatures]string{
	SamplerTypes:     "sampler_types",
	ShaderPath:       "shader_path",
	SamplerCount:     "sampler_count",
	Parameters:       "parameters",
	MaterialKeywords: "material_keywords",
	SamplerPaths:     "sampler_paths",
}

// Features lists every Feature in enumeration order.
func Features() [NumFeatures]Feature {
	return [NumFeatures]Feature{SamplerTypes, ShaderPath, SamplerCount, Parameters, MaterialKeywords, SamplerPaths}
}

// String returns the snake_case identifier of f.
func (f Feature) String() string {
	if f < 0 || int(f) >= NumFeatures {
		return fmt.Sprintf("feature(%d)", int(f))
	}
	return featureNames[f]
}

// Valid reports whether f is one of the six defined features.
func (f Feature) Valid() bool {
	return f >= 0 && int(f) < NumFeatures
}

// ParseFeature resolves a snake_case identifier, case-insensitively.
func ParseFeature(s string) (Feature, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range featureNames {
		if n == name {
			return Feature(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFeature, s)
}

// Relation links a priority item to the one after it.
type Relation int

const (
	// RelationNone marks the last item of an ordering.
	RelationNone Relation = iota
	// GreaterThan means the item matters more than the next one.
	GreaterThan
	// EqualTo means the item matters as much as the next one.
	EqualTo
)

func (r Relation) String() string {
	switch r {
	case GreaterThan:
		return ">"
	case EqualTo:
		return "="
	}
	return ""
}

// PriorityItem is one entry of an operator's feature ordering.
type PriorityItem struct {
	Feature  Feature
	Relation Relation
}

// DefaultPriority is the ordering used when the operator gives none.
func DefaultPriority() []PriorityItem {
	return []PriorityItem{
		{SamplerTypes, GreaterThan},
		{ShaderPath, GreaterThan},
		{MaterialKeywords, GreaterThan},
		{SamplerCount, GreaterThan},
		{Parameters, GreaterThan},
		{SamplerPaths, RelationNone},
	}
}

// ParsePriority parses an ordering expression such as
// "sampler_types>shader_path=material_keywords". Items are separated by
// '>' (more important than the next) or '=' (as important as the next).
// An empty expression yields an empty ordering.
func ParsePriority(expr string) ([]PriorityItem, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	var items []PriorityItem
	start := 0
	for i := 0; i <= len(expr); i++ {
		if i < len(expr) && expr[i] != '>' && expr[i] != '=' {
			continue
		}
		f, err := ParseFeature(expr[start:i])
		if err != nil {
			return nil, err
		}
		rel := RelationNone
		if i < len(expr) {
			rel = GreaterThan
			if expr[i] == '=' {
				rel = EqualTo
			}
		}
		items = append(items, PriorityItem{Feature: f, Relation: rel})
		start = i + 1
	}
	return items, nil
}

// FormatPriority renders an ordering in the form accepted by ParsePriority.
func FormatPriority(items []PriorityItem) string {
	var sb strings.Builder
	for i, it := range items {
		sb.WriteString(it.Feature.String())
		if i < len(items)-1 {
			if it.Relation == EqualTo {
				sb.WriteByte('=')
			} else {
				sb.WriteByte('>')
			}
		}
	}
	return sb.String()
}
