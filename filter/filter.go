package filter

import (
	"context"

	"github.com/s0up4200/sonarr-sweep/sonarr"
)

// Default compiler instance with caching
var defaultCompiler = NewExprCompiler(WithCache(100))

// CompileFilter compiles a filter expression using the default compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the episodes matching filter, in their original order
func Apply(ctx context.Context, filter Filter, episodes []sonarr.EpisodeDetails) ([]sonarr.EpisodeDetails, error) {
	matches := make([]sonarr.EpisodeDetails, 0, len(episodes))
	for _, ep := range episodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if filter.Evaluate(ep) {
			matches = append(matches, ep)
		}
	}
	return matches, nil
}
