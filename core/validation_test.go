package core

import (
	"errors"
	"testing"
)

func TestValidateMaterial(t *testing.T) {
	tests := []struct {
		name    string
		m       *Material
		wantErr error
	}{
		{
			name:    "valid material",
			m:       &Material{Filename: "m_wall.matxml", ShaderPath: "a/b.spx"},
			wantErr: nil,
		},
		{
			name:    "valid material without shader",
			m:       &Material{Filename: "m_wall.matxml"},
			wantErr: nil,
		},
		{
			name:    "nil material",
			m:       nil,
			wantErr: ErrInvalidMaterial,
		},
		{
			name:    "empty filename",
			m:       &Material{},
			wantErr: ErrEmptyFilename,
		},
		{
			name: "unnamed parameter",
			m: &Material{
				Filename:   "m_wall.matxml",
				Parameters: []Parameter{{Value: NumberValue(1)}},
			},
			wantErr: ErrEmptyParameterName,
		},
		{
			name: "bad value kind",
			m: &Material{
				Filename:   "m_wall.matxml",
				Parameters: []Parameter{{Name: "x", Value: Value{Kind: ValueKind(9)}}},
			},
			wantErr: ErrInvalidValueKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMaterial(tt.m)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMaterial() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMaterial() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidMaterial) {
				t.Errorf("ValidateMaterial() error = %v, want wrapped %v", err, ErrInvalidMaterial)
			}
		})
	}
}

func TestValidateLibrary(t *testing.T) {
	if err := ValidateLibrary(&Library{Id: 1, Name: "Base"}); err != nil {
		t.Errorf("ValidateLibrary() unexpected error = %v", err)
	}
	if err := ValidateLibrary(&Library{Id: 1}); !errors.Is(err, ErrEmptyLibraryName) {
		t.Errorf("ValidateLibrary() error = %v, want %v", err, ErrEmptyLibraryName)
	}
	if err := ValidateLibrary(nil); !errors.Is(err, ErrInvalidLibrary) {
		t.Errorf("ValidateLibrary() error = %v, want %v", err, ErrInvalidLibrary)
	}
}
