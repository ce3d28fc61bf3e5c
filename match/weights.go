package match

import (
	"fmt"
	"math"
	"strings"
)

// WeightVector holds one non-negative weight per Feature. Resolved vectors sum to 1.
type WeightVector [NumFeatures]float64

// BaseWeights are the weights used when no priority is given.
var BaseWeights = WeightVector{
	SamplerTypes:     0.30,
	ShaderPath:       0.25,
	SamplerCount:     0.15,
	Parameters:       0.15,
	MaterialKeywords: 0.10,
	SamplerPaths:     0.05,
}

const (
	linearBoostStep  = 0.1
	groupBoostStep   = 0.3
	groupBaseDamping = 0.5
)

// Sum returns the total of all weights.
func (w WeightVector) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// String renders the weights as "feature=0.30 ..." in enumeration order.
func (w WeightVector) String() string {
	parts := make([]string, 0, NumFeatures)
	for i, v := range w {
		parts = append(parts, fmt.Sprintf("%s=%.2f", Feature(i), v))
	}
	return strings.Join(parts, " ")
}

// Primary returns the feature with the largest weight.
// Ties go to the feature that comes first in enumeration order.
func (w WeightVector) Primary() Feature {
	best := Feature(0)
	for i := 1; i < NumFeatures; i++ {
		if w[i] > w[best] {
			best = Feature(i)
		}
	}
	return best
}

// ResolveWeights turns an operator's feature ordering into a normalized
// weight vector. Orderings with any EqualTo relation use grouped weighting,
// all others use linear boosting. Unknown features and repeated features
// after their first occurrence are ignored.
func ResolveWeights(priority []PriorityItem) WeightVector {
	items := dedupe(priority)
	if len(items) == 0 {
		return BaseWeights
	}

	for _, it := range items {
		if it.Relation == EqualTo {
			return groupedWeights(items)
		}
	}
	return linearWeights(items)
}

// dedupe drops unknown and repeated features. The relation of a dropped
// item is folded into the kept item before it, so "a>b=a>c" keeps b ahead
// of c instead of grouping them.
func dedupe(priority []PriorityItem) []PriorityItem {
	var seen [NumFeatures]bool
	items := make([]PriorityItem, 0, len(priority))
	for _, it := range priority {
		if !it.Feature.Valid() || seen[it.Feature] {
			if n := len(items); n > 0 {
				items[n-1].Relation = foldRelation(items[n-1].Relation, it.Relation)
			}
			continue
		}
		seen[it.Feature] = true
		items = append(items, it)
	}
	return items
}

// foldRelation joins the links prev->dropped and dropped->next into one.
// Items stay grouped only if both links were EqualTo.
func foldRelation(prev, dropped Relation) Relation {
	switch {
	case dropped == RelationNone:
		return RelationNone
	case prev == EqualTo && dropped == EqualTo:
		return EqualTo
	}
	return GreaterThan
}

func linearWeights(items []PriorityItem) WeightVector {
	w := BaseWeights
	n := len(items)
	for i, it := range items {
		boost := float64(n-i) * linearBoostStep
		w[it.Feature] = math.Min(1.0, w[it.Feature]+boost)
	}
	return normalize(w)
}

// groupedWeights splits the ordering at GreaterThan boundaries. Group g of G
// receives (G-g)*0.3, shared evenly by its members, on top of half the base weight.
func groupedWeights(items []PriorityItem) WeightVector {
	var groups [][]Feature
	var current []Feature
	for _, it := range items {
		current = append(current, it.Feature)
		if it.Relation != EqualTo {
			groups = append(groups, current)
			current = nil
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	var w WeightVector
	for i := range w {
		w[i] = BaseWeights[i] * groupBaseDamping
	}
	total := len(groups)
	for g, members := range groups {
		share := float64(total-g) * groupBoostStep / float64(len(members))
		for _, f := range members {
			w[f] += share
		}
	}
	return normalize(w)
}

func normalize(w WeightVector) WeightVector {
	total := w.Sum()
	if total <= 0 {
		return BaseWeights
	}
	for i := range w {
		w[i] /= total
	}
	return w
}
