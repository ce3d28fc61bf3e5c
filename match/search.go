package match

import (
	"fmt"
	"strings"

	"github.com/poiesic/materia/core"
)

// Status is the state of a search.
type Status int

const (
	StatusIdle Status = iota
	StatusTier1Running
	StatusTier1Done
	StatusTier1Empty
	StatusTier2Running
	StatusDone
	StatusCancelled
	StatusFailed
)

var statusNames = [...]string{
	StatusIdle:         "idle",
	StatusTier1Running: "tier1_running",
	StatusTier1Done:    "tier1_done",
	StatusTier1Empty:   "tier1_empty",
	StatusTier2Running: "tier2_running",
	StatusDone:         "done",
	StatusCancelled:    "cancelled",
	StatusFailed:       "failed",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// Terminal reports whether s ends a search.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCancelled || s == StatusFailed
}

// Mode selects the search strategy.
type Mode int

const (
	// ModeTiered prefilters candidates and falls back to a relaxed full
	// scan when nothing reaches the threshold.
	ModeTiered Mode = iota
	// ModeExhaustive scores every candidate once, with no prefilter.
	ModeExhaustive
)

func (m Mode) String() string {
	switch m {
	case ModeTiered:
		return "tiered"
	case ModeExhaustive:
		return "exhaustive"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode parses "tiered" or "exhaustive". The empty string is ModeTiered.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tiered":
		return ModeTiered, nil
	case "exhaustive", "exact":
		return ModeExhaustive, nil
	}
	return ModeTiered, fmt.Errorf("unknown search mode %q", s)
}

// Request describes one search.
type Request struct {
	Source        *core.Material
	TargetLibrary core.LibraryID
	// Priority orders the features by importance. Empty means BaseWeights.
	Priority []PriorityItem
	// Threshold is the minimum total score, 0-100.
	Threshold float64
	Mode      Mode
	// Limit caps the number of ranked results. Zero or less means
	// DefaultResultLimit.
	Limit int
	// Progress receives snapshots if non-nil. Sends never block, so a
	// buffered channel is recommended.
	Progress chan<- Progress
	Monitor  SearchMonitor
}

// MatchResult is one ranked candidate.
type MatchResult struct {
	Material    *core.Material
	LibraryName string
	Breakdown   ScoreBreakdown
	Rank        int

	SourceSamplerCount    int
	CandidateSamplerCount int
	SourceParamCount      int
	CandidateParamCount   int

	index int
}

// Score returns the total score of the match.
func (r MatchResult) Score() float64 {
	return r.Breakdown.Total
}

// Skip records a candidate that could not be evaluated.
type Skip struct {
	Material *core.Material
	Reason   error

	index int
}

// Outcome is the result of a search.
type Outcome struct {
	Status  Status
	Results []MatchResult
	// Tier is the pass that produced Results: 1, or 2 after a fallback.
	Tier    int
	Skipped []Skip
	// Scanned is the number of candidates considered, source excluded.
	Scanned int
	Weights WeightVector
}
