package search

import "github.com/tastegraph/recipechat/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query core.RecipeQuery)
	AfterFilterPhase(candidates []core.ID)
	RelaxationApplied(step RelaxationStep, candidates []core.ID)
	Exhausted()
	Finish(results []*core.RankedRecipe)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.RecipeQuery)                          {}
func (n *noopMonitor) AfterFilterPhase(_ []core.ID)                      {}
func (n *noopMonitor) RelaxationApplied(_ RelaxationStep, _ []core.ID)   {}
func (n *noopMonitor) Exhausted()                                        {}
func (n *noopMonitor) Finish(_ []*core.RankedRecipe)                     {}
