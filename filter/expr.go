package filter

import (
	"maps"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/sonarr-sweep/sonarr"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter. Expressions are
// type checked against the episode environment and must yield a boolean.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// The environment seen at compile time carries zero values so the
	// checker knows every name and type.
	compileEnv := createRuntimeEnvironment(c.helperFuncs, sonarr.EpisodeDetails{})

	program, err := expr.Compile(expression,
		expr.Env(compileEnv),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   -1,
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate reports whether the episode matches. An episode the expression
// fails on does not match.
func (f *exprFilter) Evaluate(episode sonarr.EpisodeDetails) bool {
	matched, err := f.Run(episode)
	return err == nil && matched
}

// Run evaluates the filter and reports evaluation failures
func (f *exprFilter) Run(episode sonarr.EpisodeDetails) (bool, error) {
	env := createRuntimeEnvironment(f.helpers, episode)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Episode:    episodeName(episode),
			Reason:     "expression failed",
			Err:        err,
		}
	}

	// AsBool guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// IsThreadSafe indicates that expr filters are thread-safe
func (f *exprFilter) IsThreadSafe() bool {
	return true
}

// createHelperFunctions creates the helpers that do not depend on the episode.
// contains, startsWith and endsWith are expr operators and lower, upper,
// hasPrefix and hasSuffix are builtins; these add case-insensitive forms.
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 3)

	funcs["containsFold"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["hasPrefixFold"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["hasSuffixFold"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}

	return funcs
}

// createRuntimeEnvironment creates the environment for one evaluation
func createRuntimeEnvironment(helpers map[string]any, details sonarr.EpisodeDetails) map[string]any {
	env := make(map[string]any, len(helpers)+16)
	maps.Copy(env, helpers)

	ep := details.Episode
	var fileID int64
	if ep.HasFile() {
		fileID = *ep.EpisodeFileID
	}
	tags := details.TagNames
	if tags == nil {
		tags = []string{}
	}

	env["Title"] = ep.Title
	env["SeasonNumber"] = ep.SeasonNumber
	env["EpisodeNumber"] = ep.EpisodeNumber
	env["Monitored"] = ep.Monitored
	env["HasFile"] = ep.HasFile()
	env["EpisodeFileID"] = fileID
	env["EpisodeID"] = ep.ID
	env["SeriesTitle"] = details.SeriesTitle
	env["SeriesID"] = ep.SeriesID
	env["Tags"] = tags

	env["hasTag"] = createHasTagFunc(tags)
	env["season"] = createSeasonFunc(ep.SeasonNumber)
	env["inSeasons"] = createInSeasonsFunc(ep.SeasonNumber)
	env["episodeBetween"] = createEpisodeBetweenFunc(ep.EpisodeNumber)

	return env
}

func createHasTagFunc(tags []string) func(string) bool {
	lowerTags := make([]string, len(tags))
	for i, tag := range tags {
		lowerTags[i] = strings.ToLower(tag)
	}
	return func(tag string) bool {
		return slices.Contains(lowerTags, strings.ToLower(tag))
	}
}

func createSeasonFunc(seasonNumber int) func(int) bool {
	return func(n int) bool {
		return seasonNumber == n
	}
}

func createInSeasonsFunc(seasonNumber int) func(...int) bool {
	return func(seasons ...int) bool {
		return slices.Contains(seasons, seasonNumber)
	}
}

// createEpisodeBetweenFunc matches episode numbers in [first, last]
func createEpisodeBetweenFunc(episodeNumber int) func(int, int) bool {
	return func(first, last int) bool {
		return episodeNumber >= first && episodeNumber <= last
	}
}

func episodeName(details sonarr.EpisodeDetails) string {
	if details.SeriesTitle == "" {
		return details.Episode.Label()
	}
	return details.SeriesTitle + " " + details.Episode.Label()
}
