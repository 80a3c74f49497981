// Package testhelpers holds dictionaries and fixtures shared by tests.
package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lukechampine.com/frand"
)

// ToyWords cover every letter but z.
var ToyWords = []string{"abcde", "fghij", "klmno", "pqrst", "uvwxy"}

// NoCoverWords share letters so no five of them are disjoint.
var NoCoverWords = []string{"abcde", "aefgh", "bijkl", "cmnop", "dqrst", "euvwx", "fghyl"}

// RandomDictionary returns a shuffled word list over alph holding `planted`
// guaranteed covers (each a random partition of the alphabet into count
// words of length symbols) plus `noise` random words with distinct symbols.
func RandomDictionary(alph string, length, count, planted, noise int) []string {
	symbols := []rune(alph)
	words := []string{}
	for range planted {
		perm := frand.Perm(len(symbols))
		for w := range count {
			words = append(words, wordFrom(symbols, perm[w*length:(w+1)*length]))
		}
	}
	for range noise {
		perm := frand.Perm(len(symbols))
		words = append(words, wordFrom(symbols, perm[:length]))
	}
	frand.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	return words
}

func wordFrom(symbols []rune, idxs []int) string {
	rs := make([]rune, len(idxs))
	for i, idx := range idxs {
		rs[i] = symbols[idx]
	}
	return string(rs)
}

// WriteWordList writes words one per line to a file in a temp dir and
// returns its path.
func WriteWordList(t testing.TB, words []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	err := os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}
