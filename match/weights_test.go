package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveWeights_Empty(t *testing.T) {
	w := ResolveWeights(nil)
	assert.Equal(t, BaseWeights, w)
	assert.InDelta(t, 1.0, w.Sum(), 1e-6)
	assert.Equal(t, SamplerTypes, w.Primary())
}

func TestResolveWeights_Linear(t *testing.T) {
	w := ResolveWeights(DefaultPriority())
	assert.InDelta(t, 1.0, w.Sum(), 1e-6)

	// Base weights plus (n-i)*0.1, normalized by the boosted total of 3.1
	assert.InDelta(t, 0.90/3.1, w[SamplerTypes], 1e-9)
	assert.InDelta(t, 0.75/3.1, w[ShaderPath], 1e-9)
	assert.InDelta(t, 0.50/3.1, w[MaterialKeywords], 1e-9)
	assert.InDelta(t, 0.45/3.1, w[SamplerCount], 1e-9)
	assert.InDelta(t, 0.35/3.1, w[Parameters], 1e-9)
	assert.InDelta(t, 0.15/3.1, w[SamplerPaths], 1e-9)

	t.Run("earlier features weigh more", func(t *testing.T) {
		order := DefaultPriority()
		for i := 1; i < len(order); i++ {
			assert.Greater(t, w[order[i-1].Feature], w[order[i].Feature])
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, w, ResolveWeights(DefaultPriority()))
	})
}

func TestResolveWeights_Grouped(t *testing.T) {
	w := ResolveWeights([]PriorityItem{
		{SamplerTypes, GreaterThan},
		{ShaderPath, EqualTo},
		{MaterialKeywords, RelationNone},
	})
	assert.InDelta(t, 1.0, w.Sum(), 1e-6)

	// Halved base weights; group 0 of 2 gets 0.6, group 1 splits 0.3
	const total = 1.4
	assert.InDelta(t, 0.75/total, w[SamplerTypes], 1e-9)
	assert.InDelta(t, 0.275/total, w[ShaderPath], 1e-9)
	assert.InDelta(t, 0.20/total, w[MaterialKeywords], 1e-9)
	assert.InDelta(t, 0.075/total, w[SamplerCount], 1e-9)
	assert.InDelta(t, 0.075/total, w[Parameters], 1e-9)
	assert.InDelta(t, 0.025/total, w[SamplerPaths], 1e-9)
	assert.Equal(t, SamplerTypes, w.Primary())
}

func TestResolveWeights_IgnoresDuplicatesAndInvalid(t *testing.T) {
	clean := ResolveWeights([]PriorityItem{
		{ShaderPath, GreaterThan},
		{Parameters, RelationNone},
	})
	noisy := ResolveWeights([]PriorityItem{
		{ShaderPath, GreaterThan},
		{Feature(42), GreaterThan},
		{Parameters, GreaterThan},
		{ShaderPath, RelationNone},
	})
	assert.Equal(t, clean, noisy)
	assert.Equal(t, ShaderPath, clean.Primary())
}

func TestResolveWeights_SumsToOne(t *testing.T) {
	exprs := []string{
		"parameters",
		"sampler_paths>parameters",
		"sampler_count=parameters=sampler_paths",
		"material_keywords>sampler_types=shader_path>sampler_count=parameters>sampler_paths",
	}
	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			items, err := ParsePriority(expr)
			if err != nil {
				t.Fatal(err)
			}
			w := ResolveWeights(items)
			assert.InDelta(t, 1.0, w.Sum(), 1e-6)
			for _, v := range w {
				assert.GreaterOrEqual(t, v, 0.0)
			}
		})
	}
}

func TestWeightVectorPrimary_Ties(t *testing.T) {
	var w WeightVector
	w[Parameters] = 0.5
	w[ShaderPath] = 0.5
	assert.Equal(t, ShaderPath, w.Primary())
}

func TestWeightVector_String(t *testing.T) {
	assert.Equal(t,
		"sampler_types=0.30 shader_path=0.25 sampler_count=0.15 parameters=0.15 material_keywords=0.10 sampler_paths=0.05",
		BaseWeights.String())
}

func TestResolveWeights_RepeatedFeatureKeepsOrdering(t *testing.T) {
	tests := []struct {
		name     string
		priority []PriorityItem
		want     []PriorityItem
	}{
		{
			name:     "dropped item ends a group",
			priority: []PriorityItem{{SamplerTypes, GreaterThan}, {ShaderPath, EqualTo}, {SamplerTypes, GreaterThan}, {Parameters, RelationNone}},
			want:     []PriorityItem{{SamplerTypes, GreaterThan}, {ShaderPath, GreaterThan}, {Parameters, RelationNone}},
		},
		{
			name:     "group survives a dropped member",
			priority: []PriorityItem{{SamplerTypes, GreaterThan}, {ShaderPath, EqualTo}, {SamplerTypes, EqualTo}, {Parameters, RelationNone}},
			want:     []PriorityItem{{SamplerTypes, GreaterThan}, {ShaderPath, EqualTo}, {Parameters, RelationNone}},
		},
		{
			name:     "trailing duplicate",
			priority: []PriorityItem{{ShaderPath, GreaterThan}, {Parameters, EqualTo}, {ShaderPath, RelationNone}},
			want:     []PriorityItem{{ShaderPath, GreaterThan}, {Parameters, RelationNone}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dedupe(tt.priority))
			assert.Equal(t, ResolveWeights(tt.want), ResolveWeights(tt.priority))
		})
	}

	t.Run("shader path stays ahead of parameters", func(t *testing.T) {
		w := ResolveWeights([]PriorityItem{{SamplerTypes, GreaterThan}, {ShaderPath, EqualTo}, {SamplerTypes, GreaterThan}, {Parameters, RelationNone}})
		assert.Greater(t, w[ShaderPath], w[Parameters])
	})
}
