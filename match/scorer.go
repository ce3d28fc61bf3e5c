package match

import (
	"math"
	"strings"

	"github.com/poiesic/materia/core"
)

const (
	typeCoverageWeight = 0.80
	typeChainWeight    = 0.20

	shaderRatioCutoff  = 0.9
	shaderTokenWeight  = 0.3
	shaderRatioWeight  = 0.7
	countExcessPenalty = 30.0
	countExcessFloor   = 50.0

	paramNameWeight  = 0.4
	paramValueWeight = 0.6

	severePenaltyBelow   = 30.0
	severePenaltyFloor   = 0.2
	moderatePenaltyBelow = 50.0
	moderatePenaltyFloor = 0.5
)

// ScoreBreakdown is the result of comparing one candidate to the source.
type ScoreBreakdown struct {
	Scores  [NumFeatures]float64 // per-feature scores in [0,100]
	Primary Feature              // highest-weighted feature, subject to the penalty
	Penalty float64              // factor in (0,1] applied to the weighted sum
	Total   float64              // final score in [0,100]
}

// Score returns the sub-score of f.
func (b ScoreBreakdown) Score(f Feature) float64 {
	return b.Scores[f]
}

// Score compares a candidate to the source under the given weights.
// The weighted total is reduced when the highest-weighted feature scores
// poorly: below 30 it is multiplied by max(0.2, s/100), below 50 by
// max(0.5, s/100).
func Score(src, cand *FeatureSet, w WeightVector) ScoreBreakdown {
	var b ScoreBreakdown
	b.Scores[SamplerTypes] = scoreSamplerTypes(src, cand)
	b.Scores[ShaderPath] = scoreShaderPath(src.ShaderPath, cand.ShaderPath, src.ShaderTokens, cand.ShaderTokens)
	b.Scores[SamplerCount] = scoreSamplerCount(src.SamplerCount(), cand.SamplerCount())
	b.Scores[Parameters] = scoreParameters(src, cand)
	b.Scores[MaterialKeywords] = scoreKeywords(src.Keywords, cand.Keywords)
	b.Scores[SamplerPaths] = scoreSamplerPaths(src.SamplerPaths, cand.SamplerPaths)

	var total float64
	for f := range b.Scores {
		total += b.Scores[f] * w[f]
	}

	b.Primary = w.Primary()
	b.Penalty = penaltyFactor(b.Scores[b.Primary])
	b.Total = clamp(total*b.Penalty, 0, 100)
	return b
}

func penaltyFactor(primary float64) float64 {
	switch {
	case primary < severePenaltyBelow:
		return math.Max(severePenaltyFloor, primary/100)
	case primary < moderatePenaltyBelow:
		return math.Max(moderatePenaltyFloor, primary/100)
	}
	return 1.0
}

func scoreSamplerTypes(src, cand *FeatureSet) float64 {
	switch {
	case len(src.Samplers) == 0 && len(cand.Samplers) == 0:
		return 100
	case len(src.Samplers) == 0 || len(cand.Samplers) == 0:
		return 0
	case len(src.Buckets) == 0:
		if len(cand.Buckets) == 0 {
			return 100
		}
		return 50
	}

	var coverage float64
	for bucket, n := range src.Buckets {
		coverage += math.Min(float64(cand.Buckets[bucket])/float64(n), 1.0)
	}
	coverage = coverage / float64(len(src.Buckets)) * 100

	return coverage*typeCoverageWeight + tokenChainSimilarity(src, cand)*typeChainWeight
}

// tokenChainSimilarity averages, over source samplers with a bucket, the best
// fraction of the sampler's type tokens found in a same-bucket candidate.
func tokenChainSimilarity(src, cand *FeatureSet) float64 {
	var total float64
	counted := 0
	for _, s := range src.Samplers {
		if s.Bucket == "" {
			continue
		}
		best := 0.0
		for _, c := range cand.Samplers {
			if c.Bucket != s.Bucket {
				continue
			}
			best = math.Max(best, tokenOverlap(s.Tokens, c.Tokens))
		}
		total += best
		counted++
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted) * 100
}

func tokenOverlap(src, cand []string) float64 {
	if len(src) == 0 {
		return 1
	}
	matched := 0
	for _, t := range src {
		for _, c := range cand {
			if t == c {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(src))
}

func scoreShaderPath(src, cand string, srcTokens, candTokens map[string]struct{}) float64 {
	switch {
	case src == "" && cand == "":
		return 100
	case src == "" || cand == "":
		return 0
	}
	a := strings.ToLower(strings.TrimSpace(src))
	b := strings.ToLower(strings.TrimSpace(cand))
	if a == b {
		return 100
	}

	ratio := Ratio(a, b)
	if ratio > shaderRatioCutoff {
		return ratio * 100
	}

	tokenSim := ratio
	if len(srcTokens) > 0 || len(candTokens) > 0 {
		tokenSim = jaccard(srcTokens, candTokens)
	}
	return (tokenSim*shaderTokenWeight + ratio*shaderRatioWeight) * 100
}

func scoreSamplerCount(src, cand int) float64 {
	switch {
	case src == 0 && cand == 0:
		return 100
	case src == 0:
		return 50
	case cand >= src:
		excess := float64(cand-src) / float64(src)
		return 100 - math.Min(countExcessFloor, excess*countExcessPenalty)
	}
	missing := float64(src-cand) / float64(src)
	return math.Max(0, 100-missing*100)
}

func scoreParameters(src, cand *FeatureSet) float64 {
	switch {
	case len(src.Params) == 0 && len(cand.Params) == 0:
		return 100
	case len(src.Params) == 0 || len(cand.Params) == 0:
		return 0
	}

	common := 0
	var valueSim float64
	for _, name := range src.ParamNames {
		cv, ok := cand.Params[name]
		if !ok {
			continue
		}
		common++
		valueSim += ValueSimilarity(src.Params[name], cv)
	}
	union := len(src.Params) + len(cand.Params) - common
	nameRatio := float64(common) / float64(union)
	if common == 0 {
		return nameRatio * 100
	}
	avg := valueSim / float64(common)
	return (nameRatio*paramNameWeight + avg*paramValueWeight) * 100
}

// ValueSimilarity compares two parameter values in [0,1]. Numbers compare by
// relative difference, equal-length arrays element-wise, and anything else by
// case-insensitive string similarity.
func ValueSimilarity(a, b core.Value) float64 {
	switch {
	case a.IsNone() && b.IsNone():
		return 1
	case a.IsNone() || b.IsNone():
		return 0
	}

	if an, ok := a.AsNumber(); ok {
		if bn, ok := b.AsNumber(); ok {
			return numberSimilarity(an, bn)
		}
	}

	if a.Kind == core.ValueArray && b.Kind == core.ValueArray && len(a.Array) == len(b.Array) {
		if len(a.Array) == 0 {
			return 1
		}
		var total float64
		for i := range a.Array {
			total += numberSimilarity(a.Array[i], b.Array[i])
		}
		return total / float64(len(a.Array))
	}

	as := strings.ToLower(strings.TrimSpace(a.String()))
	bs := strings.ToLower(strings.TrimSpace(b.String()))
	if as == bs {
		return 1
	}
	return Ratio(as, bs)
}

func numberSimilarity(a, b float64) float64 {
	switch {
	case a == b:
		return 1
	case a == 0 || b == 0:
		return 0.1
	}
	diff := math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b))
	if math.IsNaN(diff) {
		return 0
	}
	return clamp(1-diff, 0, 1)
}

func scoreKeywords(src, cand []string) float64 {
	switch {
	case len(src) == 0:
		return 100
	case len(cand) == 0:
		return 0
	}

	candLower := make([]string, len(cand))
	for i, k := range cand {
		candLower[i] = strings.ToLower(k)
	}

	matched := 0
	for _, k := range src {
		kl := strings.ToLower(k)
		for _, c := range candLower {
			if kl == c || strings.Contains(c, kl) || strings.Contains(kl, c) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(src)) * 100
}

// scoreSamplerPaths averages the similarity of every source path to every
// candidate path. Records with several distinct paths therefore score below
// 100 against themselves.
func scoreSamplerPaths(src, cand []string) float64 {
	switch {
	case len(src) == 0 && len(cand) == 0:
		return 100
	case len(src) == 0 || len(cand) == 0:
		return 0
	}

	candLower := make([]string, len(cand))
	for i, p := range cand {
		candLower[i] = strings.ToLower(p)
	}

	var total float64
	for _, p := range src {
		pl := strings.ToLower(p)
		for _, c := range candLower {
			total += Ratio(pl, c)
		}
	}
	return total / float64(len(src)*len(cand)) * 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
