package match

import "github.com/poiesic/materia/core"

// ParameterDiff describes one parameter present on both materials.
type ParameterDiff struct {
	Name       string
	Source     core.Value
	Candidate  core.Value
	Similarity float64 // value similarity in [0,1]
}

// ParameterComparison breaks a parameter score down by name.
type ParameterComparison struct {
	Common        []ParameterDiff
	SourceOnly    []string
	CandidateOnly []string
}

// NameRatio returns |common| / |union| of parameter names, or 1 when
// neither side has parameters.
func (pc ParameterComparison) NameRatio() float64 {
	union := len(pc.Common) + len(pc.SourceOnly) + len(pc.CandidateOnly)
	if union == 0 {
		return 1
	}
	return float64(len(pc.Common)) / float64(union)
}

// CompareParameters lists the parameters shared by and unique to each side,
// in declaration order, with the value similarity of every shared one.
func CompareParameters(src, cand *FeatureSet) ParameterComparison {
	var pc ParameterComparison
	for _, name := range src.ParamNames {
		cv, ok := cand.Params[name]
		if !ok {
			pc.SourceOnly = append(pc.SourceOnly, name)
			continue
		}
		sv := src.Params[name]
		pc.Common = append(pc.Common, ParameterDiff{
			Name:       name,
			Source:     sv,
			Candidate:  cv,
			Similarity: ValueSimilarity(sv, cv),
		})
	}
	for _, name := range cand.ParamNames {
		if _, ok := src.Params[name]; !ok {
			pc.CandidateOnly = append(pc.CandidateOnly, name)
		}
	}
	return pc
}
