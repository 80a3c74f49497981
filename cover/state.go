package cover

import (
	"fmt"
	"math/bits"
)

// state is one node of the search. A child is always a fresh copy of its
// parent; the only in-place change a state sees is words being added to its
// tried set while its own candidates are proposed.
type state struct {
	p *Problem

	// words are word ids in the order they were chosen.
	words []int
	// used has a bit per rank position, set once the symbol is covered by a
	// chosen word or skipped.
	used uint64
	// skipped holds the rank positions skipped on this path.
	skipped []int
	// tried holds the words already proposed at this node.
	tried wordSet
}

func newRootState(p *Problem) *state {
	return &state{
		p:     p,
		words: make([]int, 0, p.params.WordCount),
		tried: newWordSet(len(p.words)),
	}
}

func (s *state) clone() *state {
	words := make([]int, len(s.words), s.p.params.WordCount)
	copy(words, s.words)
	var skipped []int
	if len(s.skipped) > 0 {
		skipped = make([]int, len(s.skipped))
		copy(skipped, s.skipped)
	}
	return &state{
		p:       s.p,
		words:   words,
		used:    s.used,
		skipped: skipped,
		tried:   s.tried.clone(),
	}
}

func (s *state) isComplete() bool {
	return len(s.words) == s.p.params.WordCount
}

func (s *state) isWordCompatible(id int) bool {
	return s.p.masks[id]&s.used == 0
}

// tryAddWord proposes word id at this node. A word is only ever proposed once
// per node: the first proposal records it in tried whether or not it fits.
func (s *state) tryAddWord(id int) (bool, *state) {
	if s.tried.has(id) {
		return false, s
	}
	s.tried.set(id)
	if !s.isWordCompatible(id) {
		return false, s
	}
	child := s.clone()
	child.words = append(child.words, id)
	child.used |= s.p.masks[id]
	return true, child
}

// firstUnusedRank is the rarest symbol not yet covered or skipped. The search
// never asks when every rank is used.
func (s *state) firstUnusedRank() int {
	return bits.TrailingZeros64(^s.used)
}

// trySkipRarestUnused gives up on covering the rarest remaining symbol, as
// long as the path has skips left.
func (s *state) trySkipRarestUnused() (bool, *state) {
	if len(s.skipped) >= s.p.maxSkips {
		return false, s
	}
	pos := s.firstUnusedRank()
	child := s.clone()
	child.used |= 1 << pos
	child.skipped = append(child.skipped, pos)
	return true, child
}

func (s *state) solution() Solution {
	sol := Solution{
		Words:   make([]string, len(s.words)),
		Skipped: make([]rune, len(s.skipped)),
	}
	for i, id := range s.words {
		sol.Words[i] = s.p.words[id]
	}
	for i, pos := range s.skipped {
		sol.Skipped[i] = s.p.ranking.SymbolAt(pos)
	}
	return sol
}

func (s *state) String() string {
	sol := s.solution()
	return fmt.Sprintf("%v (skip: %q, tried: %d)", sol.Words, string(sol.Skipped), s.tried.count())
}
