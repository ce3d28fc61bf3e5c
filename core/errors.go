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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMaterial indicates a Material failed validation.
	ErrInvalidMaterial = errors.New("invalid material")

	// ErrInvalidLibrary indicates a Library failed validation.
	ErrInvalidLibrary = errors.New("invalid library")

	// ErrEmptyFilename indicates the material Filename field is empty.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrEmptyLibraryName indicates the library Name field is empty.
	ErrEmptyLibraryName = errors.New("library name cannot be empty")

	// ErrEmptyParameterName indicates a parameter has no name.
	ErrEmptyParameterName = errors.New("parameter name cannot be empty")

	// ErrInvalidValueKind indicates an unknown ValueKind.
	ErrInvalidValueKind = errors.New("invalid value kind")

	// ErrCorruptEncoding indicates encoded record bytes are malformed.
	ErrCorruptEncoding = errors.New("corrupt record encoding")
)
