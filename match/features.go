package match

import (
	"strings"

	"github.com/poiesic/materia/core"
)

// filenameSuffixes are stripped from filenames before keyword extraction.
var filenameSuffixes = []string{".matbin", ".matxml", ".xml", ".mtd"}

// samplerFeature is the derived view of a single sampler.
type samplerFeature struct {
	Bucket string   // last '_' token of the type; empty when the type is empty
	Tokens []string // lower-cased, non-empty '_' tokens of the type
}

// FeatureSet is the canonical, matchable view of a material.
// It is immutable once built and safe to share between goroutines.
type FeatureSet struct {
	Filename     string
	Keywords     []string
	ShaderPath   string
	ShaderTokens map[string]struct{}
	Samplers     []samplerFeature
	Buckets      map[string]int
	SamplerPaths []string
	ParamNames   []string
	Params       map[string]core.Value
}

// SamplerCount returns the number of samplers on the material.
func (fs *FeatureSet) SamplerCount() int {
	return len(fs.Samplers)
}

// ParamCount returns the number of distinct named parameters.
func (fs *FeatureSet) ParamCount() int {
	return len(fs.ParamNames)
}

// Extract builds the FeatureSet of m. It never fails: missing fields
// produce empty collections. A nil material yields an empty set.
func Extract(m *core.Material) *FeatureSet {
	fs := &FeatureSet{
		ShaderTokens: map[string]struct{}{},
		Buckets:      map[string]int{},
		Params:       map[string]core.Value{},
	}
	if m == nil {
		return fs
	}

	fs.Filename = m.Filename
	fs.Keywords = FilenameKeywords(m.Filename)
	fs.ShaderPath = m.ShaderPath
	for _, tok := range shaderTokens(m.ShaderPath) {
		fs.ShaderTokens[tok] = struct{}{}
	}

	fs.Samplers = make([]samplerFeature, 0, len(m.Samplers))
	for _, s := range m.Samplers {
		sf := samplerFeature{Bucket: samplerBucket(s.Type)}
		for _, tok := range strings.Split(s.Type, "_") {
			if tok != "" {
				sf.Tokens = append(sf.Tokens, strings.ToLower(tok))
			}
		}
		if sf.Bucket != "" {
			fs.Buckets[sf.Bucket]++
		}
		fs.Samplers = append(fs.Samplers, sf)
		if s.Path != "" {
			fs.SamplerPaths = append(fs.SamplerPaths, s.Path)
		}
	}

	for _, p := range m.Parameters {
		if p.Name == "" {
			continue
		}
		if _, dup := fs.Params[p.Name]; !dup {
			fs.ParamNames = append(fs.ParamNames, p.Name)
		}
		// Later duplicates win, as a name→value map would have it
		fs.Params[p.Name] = p.Value
	}
	return fs
}

// FilenameKeywords splits a filename into its keyword tokens: known
// extensions are stripped, the rest is split on '_', and tokens shorter
// than two characters are dropped. Order is preserved and repeats are
// removed case-insensitively.
func FilenameKeywords(filename string) []string {
	name := stripSuffixes(strings.TrimSpace(filename))
	var keywords []string
	seen := map[string]bool{}
	for _, tok := range strings.Split(name, "_") {
		tok = strings.TrimSpace(tok)
		if len([]rune(tok)) < 2 {
			continue
		}
		key := strings.ToLower(tok)
		if seen[key] {
			continue
		}
		seen[key] = true
		keywords = append(keywords, tok)
	}
	return keywords
}

func stripSuffixes(name string) string {
	for {
		lower := strings.ToLower(name)
		stripped := false
		for _, suffix := range filenameSuffixes {
			if strings.HasSuffix(lower, suffix) {
				name = name[:len(name)-len(suffix)]
				stripped = true
				break
			}
		}
		if !stripped {
			return name
		}
	}
}

// shaderTokens splits a shader path on either separator and lower-cases it.
func shaderTokens(path string) []string {
	fields := strings.FieldsFunc(strings.ToLower(path), func(r rune) bool {
		return r == '/' || r == '\\'
	})
	tokens := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// samplerBucket returns the last '_' token of a sampler type.
func samplerBucket(samplerType string) string {
	if samplerType == "" {
		return ""
	}
	idx := strings.LastIndexByte(samplerType, '_')
	return samplerType[idx+1:]
}
