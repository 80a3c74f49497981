// Package lexicon reads word lists and filters them down to the words a
// cover search can use.
package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/domino14/wordcover/alphabet"
)

var ErrUnknownEncoding = errors.New("unknown input encoding")

func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
}

// Load reads one word per line from r. Lines are decoded from the named
// encoding, trimmed and lower-cased; blank lines are dropped.
func Load(r io.Reader, enc string) ([]string, error) {
	dec, err := decoderFor(enc)
	if err != nil {
		return nil, err
	}
	if dec != nil {
		r = transform.NewReader(r, dec)
	}
	words := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadFile is Load on the file at path.
func LoadFile(path, enc string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	words, err := Load(f, enc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("words", len(words)).Msg("loaded-word-list")
	return words, nil
}

// Qualifies reports whether word has exactly length symbols, all of them in
// alph and no two the same.
func Qualifies(word string, alph *alphabet.Alphabet, length int) bool {
	if utf8.RuneCountInString(word) != length {
		return false
	}
	var seen uint64
	for _, c := range word {
		v, ok := alph.Pos(c)
		if !ok {
			return false
		}
		if seen&(1<<v) != 0 {
			return false
		}
		seen |= 1 << v
	}
	return true
}

// Qualify keeps the words that qualify, in input order. Repeated words are
// kept once.
func Qualify(words []string, alph *alphabet.Alphabet, length int) []string {
	qualifying := lo.Uniq(lo.Filter(words, func(w string, _ int) bool {
		return Qualifies(w, alph, length)
	}))
	log.Debug().Int("input", len(words)).Int("qualifying", len(qualifying)).
		Int("length", length).Msg("qualified-words")
	return qualifying
}
