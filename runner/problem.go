package runner

import (
	"fmt"

	"github.com/domino14/wordcover/alphabet"
	"github.com/domino14/wordcover/cache"
	"github.com/domino14/wordcover/config"
	"github.com/domino14/wordcover/cover"
	"github.com/domino14/wordcover/lexicon"
)

// ParamsFromConfig reads the solution shape from cfg.
func ParamsFromConfig(cfg *config.Config) cover.Params {
	return cover.Params{
		WordLength: cfg.GetInt(config.ConfigWordLength),
		WordCount:  cfg.GetInt(config.ConfigWordCount),
	}
}

// ProblemFromWords builds a problem from an in-memory word list using the
// alphabet and shape in cfg.
func ProblemFromWords(cfg *config.Config, words []string) (*cover.Problem, error) {
	alph, err := alphabet.New(cfg.GetString(config.ConfigAlphabet))
	if err != nil {
		return nil, err
	}
	return cover.NewProblem(words, alph, ParamsFromConfig(cfg))
}

// LoadProblem reads the word list at path and builds a problem from it.
func LoadProblem(cfg *config.Config, path string) (*cover.Problem, error) {
	words, err := lexicon.LoadFile(path, cfg.GetString(config.ConfigInputEncoding))
	if err != nil {
		return nil, err
	}
	return ProblemFromWords(cfg, words)
}

// ProblemKey identifies a problem by its word list and every setting that
// shapes the search tables.
func ProblemKey(cfg *config.Config, path string) string {
	p := ParamsFromConfig(cfg)
	return fmt.Sprintf("problem:%s:%s:%s:%dx%d", path,
		cfg.GetString(config.ConfigInputEncoding), cfg.GetString(config.ConfigAlphabet),
		p.WordCount, p.WordLength)
}

// CachedProblem is LoadProblem through the global object cache.
func CachedProblem(cfg *config.Config, path string) (*cover.Problem, error) {
	return cache.Load(cfg, ProblemKey(cfg, path), func(cfg *config.Config, _ string) (*cover.Problem, error) {
		return LoadProblem(cfg, path)
	})
}
