// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
)

// ValidateMaterial validates a Material according to domain rules.
//
// Validation rules:
//   - Filename must not be empty
//   - Every parameter must have a name
//   - Every parameter value must have a known kind
//
// NOT validated:
//   - ShaderPath (records without a shader are legal)
//   - Sampler paths (empty slots are legal)
//   - ID (0 is valid until the store assigns one)
func ValidateMaterial(m *Material) error {
	if m == nil {
		return fmt.Errorf("%w: material is nil", ErrInvalidMaterial)
	}

	if m.Filename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMaterial, ErrEmptyFilename)
	}

	for i, p := range m.Parameters {
		if p.Name == "" {
			return fmt.Errorf("%w: parameter %d: %w", ErrInvalidMaterial, i, ErrEmptyParameterName)
		}
		if err := ValidateValueKind(p.Value.Kind); err != nil {
			return fmt.Errorf("%w: parameter %q: %w", ErrInvalidMaterial, p.Name, err)
		}
	}

	return nil
}

// ValidateLibrary validates a Library according to domain rules.
//
// Validation rules:
//   - Name must not be empty
func ValidateLibrary(lib *Library) error {
	if lib == nil {
		return fmt.Errorf("%w: library is nil", ErrInvalidLibrary)
	}

	if lib.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLibrary, ErrEmptyLibraryName)
	}

	return nil
}

// ValidateValueKind validates that a ValueKind has a valid value.
func ValidateValueKind(kind ValueKind) error {
	if kind < ValueNone || kind > ValueArray {
		return fmt.Errorf("%w: value %d", ErrInvalidValueKind, kind)
	}
	return nil
}
