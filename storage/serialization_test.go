package storage

import (
	"testing"

	"github.com/poiesic/materia/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalMaterial(t *testing.T) {
	m := &core.Material{
		Id:         7,
		LibraryId:  2,
		Filename:   "m_stone_wall_01.matxml",
		FilePath:   "materials/stone/m_stone_wall_01.matxml",
		ShaderPath: "N:/shader/fxr/stone[Aeg].spx",
		Samplers: []core.Sampler{
			{Type: "g_DiffuseTexture", Path: "stone_a.tif", Key: 1, ExtraX: 4, ExtraY: -2},
			{Type: "g_NormalTexture"},
		},
		Parameters: []core.Parameter{
			{Name: "Roughness", Type: "float", Value: core.NumberValue(0.75)},
			{Name: "Tint", Type: "float4", Value: core.ArrayValue(1, 0.5, 0.25, 1), Key: 3},
			{Name: "Mode", Type: "string", Value: core.StringValue("clamp")},
			{Name: "Unset", Type: "float"},
		},
	}

	data := MarshalMaterial(m)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalMaterial(data)
	require.NoError(t, err)
	assert.Equal(t, m.Id, decoded.Id)
	assert.Equal(t, m.LibraryId, decoded.LibraryId)
	assert.Equal(t, m.Filename, decoded.Filename)
	assert.Equal(t, m.FilePath, decoded.FilePath)
	assert.Equal(t, m.ShaderPath, decoded.ShaderPath)
	assert.Equal(t, m.Samplers, decoded.Samplers)
	require.Len(t, decoded.Parameters, len(m.Parameters))
	for i := range m.Parameters {
		assert.Equal(t, m.Parameters[i].Name, decoded.Parameters[i].Name)
		assert.Equal(t, m.Parameters[i].Value.Kind, decoded.Parameters[i].Value.Kind)
		assert.Equal(t, m.Parameters[i].Value.String(), decoded.Parameters[i].Value.String())
	}
}

func TestUnmarshalMaterial_Truncated(t *testing.T) {
	m := &core.Material{Id: 1, Filename: "m_wall.matxml", Samplers: []core.Sampler{{Type: "g_Diffuse"}}}
	data := MarshalMaterial(m)

	_, err := UnmarshalMaterial(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalLibrary(t *testing.T) {
	lib := &core.Library{Id: 3, Name: "Base Game", Description: "vanilla", SourcePath: "/data/mtd"}

	decoded, err := UnmarshalLibrary(MarshalLibrary(lib))
	require.NoError(t, err)
	assert.Equal(t, lib, decoded)
}
