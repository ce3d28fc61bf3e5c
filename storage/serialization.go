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


package storage

import (
	"fmt"

	"github.com/poiesic/materia/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalMaterial serializes a Material, including samplers and parameters.
func MarshalMaterial(m *core.Material) []byte {
	buf := make([]byte, core.MaterialMUS.Size(*m))
	core.MaterialMUS.Marshal(*m, buf)
	return buf
}

// UnmarshalMaterial deserializes a Material from bytes.
func UnmarshalMaterial(data []byte) (*core.Material, error) {
	m, _, err := core.MaterialMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &m, nil
}

// MarshalLibrary serializes a Library to bytes.
func MarshalLibrary(lib *core.Library) []byte {
	buf := make([]byte, core.LibraryMUS.Size(*lib))
	core.LibraryMUS.Marshal(*lib, buf)
	return buf
}

// UnmarshalLibrary deserializes a Library from bytes.
func UnmarshalLibrary(data []byte) (*core.Library, error) {
	lib, _, err := core.LibraryMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &lib, nil
}
