package match

import (
	"log/slog"
	"math"
	"strings"

	"github.com/poiesic/materia/core"
)

const (
	prefilterNameWeight   = 0.4
	prefilterShaderWeight = 0.6
	prefilterFloor        = 0.15
	prefilterScale        = 0.2
)

// PrefilterCutoff returns the composite score a candidate must reach to pass
// the prefilter at the given 0-100 threshold.
func PrefilterCutoff(threshold float64) float64 {
	return math.Max(prefilterFloor, threshold/100*prefilterScale)
}

// Passes reports whether cand is similar enough to the source, by filename
// and shader path alone, to be worth full scoring. Only the listing fields of
// cand are read. The gate fails open: a candidate that cannot be inspected passes.
func Passes(src *FeatureSet, cand *core.Material, threshold float64) (pass bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("prefilter recovered, passing candidate", "panic", r)
			pass = true
		}
	}()
	return prefilterScore(src, cand) >= PrefilterCutoff(threshold)
}

func prefilterScore(src *FeatureSet, cand *core.Material) float64 {
	var nameSim float64
	a := strings.ToLower(src.Filename)
	b := strings.ToLower(cand.Filename)
	if a != "" && b != "" {
		nameSim = Ratio(a, b)
	}

	candTokens := make(map[string]struct{})
	for _, tok := range shaderTokens(cand.ShaderPath) {
		candTokens[tok] = struct{}{}
	}
	shaderSim := jaccard(src.ShaderTokens, candTokens)

	return nameSim*prefilterNameWeight + shaderSim*prefilterShaderWeight
}
