package cover

import "math/bits"

// wordSet is a fixed-size bit vector over word ids.
type wordSet []uint64

func newWordSet(size int) wordSet {
	return make(wordSet, (size+63)/64)
}

func (ws wordSet) set(id int) {
	ws[id/64] |= 1 << (id % 64)
}

func (ws wordSet) has(id int) bool {
	return ws[id/64]&(1<<(id%64)) != 0
}

func (ws wordSet) clone() wordSet {
	c := make(wordSet, len(ws))
	copy(c, ws)
	return c
}

func (ws wordSet) count() int {
	n := 0
	for _, w := range ws {
		n += bits.OnesCount64(w)
	}
	return n
}
