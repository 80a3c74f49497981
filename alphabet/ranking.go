package alphabet

import (
	"cmp"
	"slices"
	"strings"
)

// Ranking orders an alphabet's symbols from rarest to most common over a
// word list. It is a bijection between symbols and positions 0..Size()-1.
type Ranking struct {
	alph *Alphabet
	// freq and rank are indexed by alphabet position.
	freq []int
	rank []int
	// symbolAt is indexed by rank position.
	symbolAt []rune
}

// Rank counts the occurrences of every symbol across words and stable-sorts
// the alphabet ascending by that count. Runes outside the alphabet are
// ignored. Symbols that never occur take the lowest ranks.
func Rank(alph *Alphabet, words []string) *Ranking {
	n := alph.Size()
	r := &Ranking{
		alph:     alph,
		freq:     make([]int, n),
		rank:     make([]int, n),
		symbolAt: make([]rune, n),
	}
	for _, w := range words {
		for _, c := range w {
			if v, ok := alph.vals[c]; ok {
				r.freq[v]++
			}
		}
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(r.freq[a], r.freq[b])
	})
	for pos, v := range order {
		r.rank[v] = pos
		r.symbolAt[pos] = alph.symbols[v]
	}
	return r
}

func (r *Ranking) Alphabet() *Alphabet {
	return r.alph
}

// Size is the number of ranked symbols.
func (r *Ranking) Size() int {
	return len(r.symbolAt)
}

// Rank returns the rank position of symbol c; ok is false if c is not in the
// alphabet.
func (r *Ranking) Rank(c rune) (pos int, ok bool) {
	v, ok := r.alph.vals[c]
	if !ok {
		return 0, false
	}
	return r.rank[v], true
}

// SymbolAt is the inverse of Rank.
func (r *Ranking) SymbolAt(pos int) rune {
	return r.symbolAt[pos]
}

// Frequency returns how many times c occurred in the ranked words.
func (r *Ranking) Frequency(c rune) int {
	v, ok := r.alph.vals[c]
	if !ok {
		return 0
	}
	return r.freq[v]
}

// FrequencyAt returns the frequency of the symbol at rank pos.
func (r *Ranking) FrequencyAt(pos int) int {
	return r.Frequency(r.symbolAt[pos])
}

// Mask returns the set of rank positions used by word. ok is false if the
// word has a symbol outside the alphabet.
func (r *Ranking) Mask(word string) (mask uint64, ok bool) {
	for _, c := range word {
		pos, ok := r.Rank(c)
		if !ok {
			return 0, false
		}
		mask |= 1 << pos
	}
	return mask, true
}

// String lists the symbols rarest first, e.g. "qjxz...".
func (r *Ranking) String() string {
	var sb strings.Builder
	for _, c := range r.symbolAt {
		sb.WriteRune(c)
	}
	return sb.String()
}
