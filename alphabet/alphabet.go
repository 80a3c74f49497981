package alphabet

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	// MaxAlphabetSize is the largest alphabet we support. A set of rank
	// positions must fit in one 64-bit word.
	MaxAlphabetSize = 64
)

var (
	ErrEmptyAlphabet       = errors.New("alphabet has no symbols")
	ErrAlphabetTooLarge    = fmt.Errorf("alphabet has more than %d symbols", MaxAlphabetSize)
	ErrDuplicateSymbol     = errors.New("alphabet repeats a symbol")
	ErrSymbolNotInAlphabet = errors.New("symbol not in alphabet")
)

// Alphabet is an ordered set of symbols. The order is the tie-breaker when
// ranking symbols of equal frequency.
type Alphabet struct {
	symbols []rune
	vals    map[rune]int
}

// New builds an alphabet from the symbols of s, in order.
func New(s string) (*Alphabet, error) {
	if s == "" {
		return nil, ErrEmptyAlphabet
	}
	if utf8.RuneCountInString(s) > MaxAlphabetSize {
		return nil, ErrAlphabetTooLarge
	}
	a := &Alphabet{vals: make(map[rune]int)}
	for _, r := range s {
		if _, ok := a.vals[r]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, r)
		}
		a.vals[r] = len(a.symbols)
		a.symbols = append(a.symbols, r)
	}
	return a, nil
}

// Size returns the number of symbols in this alphabet.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Val returns the position of r in the alphabet's own order.
func (a *Alphabet) Val(r rune) (int, error) {
	v, ok := a.Pos(r)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrSymbolNotInAlphabet, r)
	}
	return v, nil
}

// Pos is Val for hot loops: it reports a missing symbol with ok = false
// instead of building an error.
func (a *Alphabet) Pos(r rune) (pos int, ok bool) {
	pos, ok = a.vals[r]
	return
}

// Contains reports whether r is one of this alphabet's symbols.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.vals[r]
	return ok
}

// Symbol returns the symbol at position i of the alphabet's own order.
func (a *Alphabet) Symbol(i int) rune {
	return a.symbols[i]
}

func (a *Alphabet) String() string {
	return string(a.symbols)
}
