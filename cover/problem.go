package cover

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordcover/alphabet"
	"github.com/domino14/wordcover/anagrammer"
	"github.com/domino14/wordcover/lexicon"
)

var (
	ErrBadWordLength  = errors.New("word length must be positive")
	ErrBadWordCount   = errors.New("word count must be positive")
	ErrTooManySymbols = errors.New("word count times word length exceeds the alphabet size")
)

// Params are the shape of a solution.
type Params struct {
	WordLength int
	WordCount  int
}

// DefaultParams are five five-symbol words.
var DefaultParams = Params{WordLength: 5, WordCount: 5}

// Problem holds the tables a search reads: the qualifying words collapsed to
// one representative per anagram class, the symbol ranking over those
// representatives, each representative's rank mask, and the candidate index.
// A Problem is never modified after NewProblem returns, so any number of
// solvers may share one.
type Problem struct {
	params   Params
	maxSkips int

	alph    *alphabet.Alphabet
	groups  *anagrammer.Groups
	ranking *alphabet.Ranking
	index   *Index

	words []string
	masks []uint64

	numInput      int
	numQualifying int
}

// NewProblem filters words, groups anagrams and builds the search tables.
// Words that do not qualify are dropped, never reported as errors.
func NewProblem(words []string, alph *alphabet.Alphabet, params Params) (*Problem, error) {
	if params.WordLength <= 0 {
		return nil, ErrBadWordLength
	}
	if params.WordCount <= 0 {
		return nil, ErrBadWordCount
	}
	maxSkips := alph.Size() - params.WordLength*params.WordCount
	if maxSkips < 0 {
		return nil, fmt.Errorf("%w: %d*%d > %d", ErrTooManySymbols,
			params.WordCount, params.WordLength, alph.Size())
	}

	qualifying := lexicon.Qualify(words, alph, params.WordLength)
	groups := anagrammer.Group(qualifying)
	reps := groups.Representatives()
	ranking := alphabet.Rank(alph, reps)

	p := &Problem{
		params:   params,
		maxSkips: maxSkips,
		alph:     alph,
		groups:   groups,
		ranking:  ranking,
		words:    reps,
		masks:    make([]uint64, len(reps)),

		numInput:      len(words),
		numQualifying: len(qualifying),
	}
	for id, w := range reps {
		p.masks[id], _ = ranking.Mask(w)
	}
	p.index = buildIndex(reps, ranking)

	log.Debug().Int("qualifying", len(qualifying)).Int("representatives", len(reps)).
		Str("rarest-first", ranking.String()).Int("max-skips", maxSkips).
		Msg("built-problem")
	return p, nil
}

func (p *Problem) Params() Params {
	return p.params
}

// MaxSkips is how many alphabet symbols a solution may leave unused.
func (p *Problem) MaxSkips() int {
	return p.maxSkips
}

func (p *Problem) Alphabet() *alphabet.Alphabet {
	return p.alph
}

func (p *Problem) Groups() *anagrammer.Groups {
	return p.groups
}

func (p *Problem) Ranking() *alphabet.Ranking {
	return p.ranking
}

func (p *Problem) Index() *Index {
	return p.index
}

// Words returns the searchable words, one per anagram class.
func (p *Problem) Words() []string {
	return p.words
}

// NumWords is the number of searchable words.
func (p *Problem) NumWords() int {
	return len(p.words)
}

// NumInput and NumQualifying count the words given to NewProblem and those
// that passed the filter.
func (p *Problem) NumInput() int {
	return p.numInput
}

func (p *Problem) NumQualifying() int {
	return p.numQualifying
}
