// Package anagrammer groups words by their sorted-symbol key (their
// alphagram) so a search only has to consider one word per class, and
// expands found combinations back out to every literal word.
package anagrammer

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat/combin"
)

// Alphagram returns the symbols of word in sorted order.
func Alphagram(word string) string {
	rs := []rune(word)
	slices.Sort(rs)
	return string(rs)
}

// Groups maps alphagrams to the words that share them. It is immutable once
// built.
type Groups struct {
	members map[string][]string
	reps    []string
}

// Group builds anagram groups over words. Members keep input order, and the
// first word of each class is its representative.
func Group(words []string) *Groups {
	g := &Groups{members: make(map[string][]string)}
	for _, w := range words {
		key := Alphagram(w)
		if _, ok := g.members[key]; !ok {
			g.reps = append(g.reps, w)
		}
		g.members[key] = append(g.members[key], w)
	}
	return g
}

// Representatives returns one word per anagram class, in input order.
func (g *Groups) Representatives() []string {
	return g.reps
}

// NumClasses is the number of distinct alphagrams.
func (g *Groups) NumClasses() int {
	return len(g.reps)
}

// Members returns every word sharing word's alphagram, or nil if there are
// none.
func (g *Groups) Members(word string) []string {
	return g.members[Alphagram(word)]
}

// Count is the number of literal tuples Expand would produce for words.
func (g *Groups) Count(words []string) int {
	n := 1
	for _, w := range words {
		n *= len(g.Members(w))
	}
	return n
}

// Expand returns every literal tuple for a combination of representatives.
// Slot i ranges over the members of words[i] in stored order; the last slot
// varies fastest.
func (g *Groups) Expand(words []string) ([][]string, error) {
	if len(words) == 0 {
		return nil, nil
	}
	lens := make([]int, len(words))
	slots := make([][]string, len(words))
	for i, w := range words {
		slots[i] = g.Members(w)
		if len(slots[i]) == 0 {
			return nil, fmt.Errorf("no anagram group for %q", w)
		}
		lens[i] = len(slots[i])
	}
	idxs := combin.Cartesian(lens)
	tuples := make([][]string, len(idxs))
	for t, idx := range idxs {
		tuple := make([]string, len(idx))
		for i, j := range idx {
			tuple[i] = slots[i][j]
		}
		tuples[t] = tuple
	}
	return tuples, nil
}
