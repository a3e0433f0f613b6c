// Package search defines the web search boundary used during tool
// resolution. The default implementation fabricates plausible results
// locally; a real search backend can be swapped in behind the same
// interface.
package search

import (
	"context"
	"fmt"
	"time"
)

// Provider resolves a web search query into a text block the model can
// consume as a tool result.
type Provider interface {
	// Search returns result text for the query. Implementations must not
	// return an empty string on success.
	Search(ctx context.Context, query string) (string, error)
}

// SimulatedProvider fabricates search results from the query itself.
// It never fails, keeping the answer flow deterministic when no real
// search backend is configured.
type SimulatedProvider struct {
	// now allows tests to pin the date stamped into results.
	now func() time.Time
}

// NewSimulatedProvider creates a SimulatedProvider.
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{now: time.Now}
}

// Ensure SimulatedProvider implements Provider
var _ Provider = (*SimulatedProvider)(nil)

// Search implements Provider.Search
func (p *SimulatedProvider) Search(ctx context.Context, query string) (string, error) {
	date := p.now().Format("1/2/2006")
	results := fmt.Sprintf(`Web search results for %q:
1. %s is a topic that has recent developments as of %s.
2. According to recent sources, %s is commonly discussed in relation to technology and education.
3. Many experts suggest that %s will continue to evolve in coming years.`,
		query, query, date, query, query)
	return results, nil
}

// StaticProvider returns a fixed result for every query. Used in tests.
type StaticProvider struct {
	Result string
	Err    error
}

// Ensure StaticProvider implements Provider
var _ Provider = (*StaticProvider)(nil)

// Search implements Provider.Search
func (p *StaticProvider) Search(ctx context.Context, query string) (string, error) {
	return p.Result, p.Err
}
