package match

import "github.com/poiesic/materia/core"

// SearchMonitor provides hooks to observe a search.
// Hooks run on the goroutine that called Search.
type SearchMonitor interface {
	Start(source *core.Material, library core.LibraryID)
	StatusChanged(status Status)
	AfterListing(candidates int)
	AfterPrefilter(passed int)
	Skipped(skip Skip)
	Finish(outcome *Outcome)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Material, _ core.LibraryID) {}
func (n *noopMonitor) StatusChanged(_ Status)                   {}
func (n *noopMonitor) AfterListing(_ int)                       {}
func (n *noopMonitor) AfterPrefilter(_ int)                     {}
func (n *noopMonitor) Skipped(_ Skip)                           {}
func (n *noopMonitor) Finish(_ *Outcome)                        {}
