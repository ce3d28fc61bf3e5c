package match

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Ratio returns the sequence similarity of a and b in [0,1]: twice the
// number of runes the two strings share in a minimal diff, divided by their
// combined length. Two empty strings are identical.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMain(a, b, false)

	common := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			common += utf8.RuneCountInString(d.Text)
		}
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	return 2.0 * float64(common) / float64(total)
}

// jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
