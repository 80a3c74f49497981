package cover

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/wordcover/alphabet"
)

// Index lists, for every symbol, the words that contain it. Each list is
// sorted ascending by the word's rarity score (the sum of its symbols'
// frequencies) so words made of rare symbols are tried first. Ties keep
// insertion order.
type Index struct {
	ranking *alphabet.Ranking
	words   []string
	ids     map[string]int
	scores  []int
	// byRank is indexed by the rank position of the symbol.
	byRank [][]int
}

func buildIndex(words []string, ranking *alphabet.Ranking) *Index {
	ix := &Index{
		ranking: ranking,
		words:   words,
		ids:     make(map[string]int, len(words)),
		scores:  make([]int, len(words)),
		byRank:  make([][]int, ranking.Size()),
	}
	for id, w := range words {
		ix.ids[w] = id
		for _, c := range w {
			pos, _ := ranking.Rank(c)
			ix.byRank[pos] = append(ix.byRank[pos], id)
		}
		ix.scores[id] = lo.SumBy([]rune(w), ranking.Frequency)
	}
	for _, list := range ix.byRank {
		slices.SortStableFunc(list, func(a, b int) int {
			return cmp.Compare(ix.scores[a], ix.scores[b])
		})
	}
	return ix
}

// Candidates returns the words containing symbol c, most constraining first.
func (ix *Index) Candidates(c rune) []string {
	pos, ok := ix.ranking.Rank(c)
	if !ok {
		return nil
	}
	return lo.Map(ix.byRank[pos], func(id int, _ int) string {
		return ix.words[id]
	})
}

// Score returns the rarity score of a word in the index, or -1.
func (ix *Index) Score(word string) int {
	id, ok := ix.ids[word]
	if !ok {
		return -1
	}
	return ix.scores[id]
}

// ListLengths returns the candidate list length per symbol, rarest symbol
// first.
func (ix *Index) ListLengths() []int {
	return lo.Map(ix.byRank, func(l []int, _ int) int { return len(l) })
}

func (ix *Index) candidatesAt(pos int) []int {
	return ix.byRank[pos]
}
