package match

import (
	"testing"

	"github.com/poiesic/materia/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameKeywords(t *testing.T) {
	tests := []struct {
		filename string
		want     []string
	}{
		{"AEG301_221_C[c2030]_BD_Fabric.matxml", []string{"AEG301", "221", "C[c2030]", "BD", "Fabric"}},
		{"c5000_body.mtd", []string{"c5000", "body"}},
		{"a_bb_BB.mtd.xml", []string{"bb"}},
		{"M_Stone_.MATBIN", []string{"Stone"}},
		{"", nil},
		{"x", nil},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, FilenameKeywords(tt.filename))
		})
	}
}

func TestExtract(t *testing.T) {
	m := &core.Material{
		Id:         1,
		Filename:   "m_stone_wall.matxml",
		ShaderPath: `N:\Shaders\Stone\Wall.spx`,
		Samplers: []core.Sampler{
			{Type: "SAT_Albedo", Path: "tex/stone_a.dds"},
			{Type: "SAT_Normal", Path: ""},
			{Type: "g_Albedo", Path: "tex/stone_b.dds"},
			{Type: ""},
		},
		Parameters: []core.Parameter{
			{Name: "Roughness", Value: core.NumberValue(0.5)},
			{Name: "", Value: core.NumberValue(1)},
			{Name: "Tint", Value: core.ArrayValue(1, 0, 0)},
			{Name: "Roughness", Value: core.NumberValue(0.7)},
		},
	}

	fs := Extract(m)
	assert.Equal(t, "m_stone_wall.matxml", fs.Filename)
	assert.Equal(t, []string{"stone", "wall"}, fs.Keywords)
	assert.Equal(t, map[string]struct{}{"n:": {}, "shaders": {}, "stone": {}, "wall.spx": {}}, fs.ShaderTokens)

	require.Equal(t, 4, fs.SamplerCount())
	assert.Equal(t, map[string]int{"Albedo": 2, "Normal": 1}, fs.Buckets)
	assert.Equal(t, []string{"sat", "albedo"}, fs.Samplers[0].Tokens)
	assert.Equal(t, "", fs.Samplers[3].Bucket)
	assert.Equal(t, []string{"tex/stone_a.dds", "tex/stone_b.dds"}, fs.SamplerPaths)

	assert.Equal(t, []string{"Roughness", "Tint"}, fs.ParamNames)
	assert.Equal(t, 2, fs.ParamCount())
	assert.Equal(t, core.NumberValue(0.7), fs.Params["Roughness"])
}

func TestExtract_Empty(t *testing.T) {
	for name, m := range map[string]*core.Material{
		"nil":   nil,
		"blank": {},
	} {
		t.Run(name, func(t *testing.T) {
			fs := Extract(m)
			require.NotNil(t, fs)
			assert.Empty(t, fs.Keywords)
			assert.NotNil(t, fs.ShaderTokens)
			assert.NotNil(t, fs.Buckets)
			assert.NotNil(t, fs.Params)
			assert.Zero(t, fs.SamplerCount())
			assert.Zero(t, fs.ParamCount())
		})
	}
}

func TestExtract_DoesNotModifyMaterial(t *testing.T) {
	m := &core.Material{
		Filename: "a_b_c.xml",
		Samplers: []core.Sampler{{Type: "SAT_X", Path: "p"}},
	}
	before := *m
	_ = Extract(m)
	assert.Equal(t, before.Filename, m.Filename)
	assert.Equal(t, before.Samplers, m.Samplers)
}
