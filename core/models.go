package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is assigned by the backing store or derived from content.
type ID uint64

// LibraryID identifies a material library.
type LibraryID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Library is a named collection of materials.
type Library struct {
	Id          LibraryID
	Name        string
	Description string
	SourcePath  string // Where the library was imported from, if known
}

// Material is a single catalog record describing a surface material.
// Samplers and Parameters may be nil when the record came from a listing;
// callers hydrate them from the repository on demand.
type Material struct {
	Id         ID
	LibraryId  LibraryID
	Filename   string
	FilePath   string
	ShaderPath string
	Samplers   []Sampler
	Parameters []Parameter
}

// Hydrated reports whether both sampler and parameter lists are populated.
func (m *Material) Hydrated() bool {
	return m.Samplers != nil && m.Parameters != nil
}

// Fingerprint returns a stable textual summary of the record's content.
// It is used to derive an identity for records that have no ID yet.
func (m *Material) Fingerprint() string {
	var sb strings.Builder
	sb.WriteString(m.Filename)
	sb.WriteByte('|')
	sb.WriteString(m.ShaderPath)
	for _, s := range m.Samplers {
		sb.WriteString("|s:")
		sb.WriteString(s.Type)
		sb.WriteByte('=')
		sb.WriteString(s.Path)
	}
	for _, p := range m.Parameters {
		sb.WriteString("|p:")
		sb.WriteString(p.Name)
		sb.WriteByte('=')
		sb.WriteString(p.Value.String())
	}
	return sb.String()
}

// Sampler is a texture slot on a material.
type Sampler struct {
	Type   string // e.g. "g_DiffuseTexture" or "SAT_Mask_1"
	Path   string // Texture file the slot points to; may be empty
	Key    int
	ExtraX int
	ExtraY int
}

// Parameter is a named shader value on a material.
type Parameter struct {
	Name  string
	Type  string // Declared type name, e.g. "float", "float4", "bool"
	Value Value
	Key   int
}

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	// ValueNone is an absent value.
	ValueNone ValueKind = iota
	// ValueNumber is a scalar numeric value.
	ValueNumber
	// ValueString is a textual value.
	ValueString
	// ValueArray is a fixed-length numeric vector.
	ValueArray
)

// Value is a parameter value: none, a number, a string, or a numeric array.
type Value struct {
	Kind   ValueKind
	Number float64
	Text   string
	Array  []float64
}

// NumberValue returns a numeric Value.
func NumberValue(n float64) Value {
	return Value{Kind: ValueNumber, Number: n}
}

// StringValue returns a textual Value.
func StringValue(s string) Value {
	return Value{Kind: ValueString, Text: s}
}

// ArrayValue returns an array Value. The slice is copied.
func ArrayValue(a ...float64) Value {
	arr := make([]float64, len(a))
	copy(arr, a)
	return Value{Kind: ValueArray, Array: arr}
}

// IsNone reports whether the value is absent.
func (v Value) IsNone() bool {
	return v.Kind == ValueNone
}

// AsNumber returns the value as a float64 if it is a number, a bool-like
// or numeric string, or a single-element array.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case ValueNumber:
		return v.Number, true
	case ValueString:
		s := strings.TrimSpace(v.Text)
		switch strings.ToLower(s) {
		case "true":
			return 1, true
		case "false":
			return 0, true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case ValueArray:
		if len(v.Array) == 1 {
			return v.Array[0], true
		}
	}
	return 0, false
}

// String renders the value the way it is stored in text columns.
func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case ValueString:
		return v.Text
	case ValueArray:
		parts := make([]string, len(v.Array))
		for i, n := range v.Array {
			parts[i] = strconv.FormatFloat(n, 'g', -1, 64)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

// ParseValue interprets stored text as a Value. Bracketed comma-separated
// numbers become arrays, plain numbers become numbers, empty text is none,
// and anything else stays a string.
func ParseValue(text string) Value {
	s := strings.TrimSpace(text)
	if s == "" {
		return Value{}
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if inner == "" {
			return ArrayValue()
		}
		fields := strings.Split(inner, ",")
		arr := make([]float64, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return StringValue(text)
			}
			arr = append(arr, n)
		}
		return Value{Kind: ValueArray, Array: arr}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return NumberValue(n)
	}
	return StringValue(text)
}
