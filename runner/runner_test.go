package runner

import (
	"bytes"
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/domino14/wordcover/config"
	"github.com/domino14/wordcover/sink"
	"github.com/domino14/wordcover/testhelpers"
)

func runWords(t *testing.T, cfg *config.Config, words []string) (*Report, []string) {
	t.Helper()
	p, err := ProblemFromWords(cfg, words)
	if err != nil {
		t.Fatal(err)
	}
	out := &sink.Collector{}
	report, err := Run(context.Background(), OptionsFromConfig(cfg), p, out)
	if err != nil {
		t.Fatal(err)
	}
	return report, out.Lines()
}

func TestRunToy(t *testing.T) {
	is := is.New(t)
	report, lines := runWords(t, config.DefaultConfig(), testhelpers.ToyWords)
	is.Equal(lines, []string{"abcde,fghij,klmno,pqrst,uvwxy"})
	is.Equal(report.Solutions, 1)
	is.Equal(report.Tuples, 1)
	is.Equal(report.Skipped, map[string]int{"z": 1})
	is.Equal(report.MaxSkips, 1)
	is.Equal(report.RarestFirst[0], byte('z'))
}

func TestRunNoCover(t *testing.T) {
	is := is.New(t)
	report, lines := runWords(t, config.DefaultConfig(), testhelpers.NoCoverWords)
	is.Equal(len(lines), 0)
	is.Equal(report.Solutions, 0)
	is.True(report.Nodes > 0)
}

func TestRunExpandsAnagrams(t *testing.T) {
	is := is.New(t)
	words := append(slices.Clone(testhelpers.ToyWords), "bcdea", "onmlk", "ABCDE", "abcdd")
	report, lines := runWords(t, config.DefaultConfig(), words)
	// Only lower-case distinct-letter words qualify; abcde and bcdea, klmno
	// and onmlk are anagrams.
	is.Equal(report.QualifyingWords, 7)
	is.Equal(report.Representatives, 5)
	is.Equal(report.Solutions, 1)
	is.Equal(report.Tuples, 4)
	is.Equal(lines, []string{
		"abcde,fghij,klmno,pqrst,uvwxy",
		"abcde,fghij,onmlk,pqrst,uvwxy",
		"bcdea,fghij,klmno,pqrst,uvwxy",
		"bcdea,fghij,onmlk,pqrst,uvwxy",
	})
}

func TestRunIdempotentAcrossThreads(t *testing.T) {
	words := testhelpers.RandomDictionary(config.DefaultAlphabet, 5, 5, 4, 120)
	cfg := config.DefaultConfig()
	first, firstLines := runWords(t, cfg, words)
	second, secondLines := runWords(t, cfg, words)
	assert.Equal(t, firstLines, secondLines)
	assert.Equal(t, first.Digest, second.Digest)

	cfg.Set(config.ConfigThreads, 4)
	parallel, parallelLines := runWords(t, cfg, words)
	assert.Equal(t, firstLines, parallelLines)
	assert.Equal(t, first.Digest, parallel.Digest)
	assert.Equal(t, first.Nodes, parallel.Nodes)
	assert.Equal(t, 4, parallel.Threads)
	assert.GreaterOrEqual(t, first.Solutions, 1)
}

func TestRunToSQLite(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	cfg := config.DefaultConfig()
	dbPath := filepath.Join(t.TempDir(), "out.db")
	cfg.Set(config.ConfigOutputFormat, "sqlite")
	cfg.Set(config.ConfigOutputPath, dbPath)

	p, err := LoadProblem(cfg, testhelpers.WriteWordList(t, testhelpers.ToyWords))
	is.NoErr(err)
	out, err := OpenSink(ctx, cfg)
	is.NoErr(err)
	_, err = Run(ctx, OptionsFromConfig(cfg), p, out)
	is.NoErr(err)
	is.NoErr(out.Close())

	lines, err := sink.ReadSQLite(ctx, dbPath)
	is.NoErr(err)
	is.Equal(lines, []string{"abcde,fghij,klmno,pqrst,uvwxy"})
}

func TestOpenSinkUnknown(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigOutputFormat, "parquet")
	_, err := OpenSink(context.Background(), cfg)
	is.True(err != nil)
}

func TestCachedProblem(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	path := testhelpers.WriteWordList(t, testhelpers.ToyWords)
	p1, err := CachedProblem(cfg, path)
	is.NoErr(err)
	p2, err := CachedProblem(cfg, path)
	is.NoErr(err)
	is.True(p1 == p2)

	// A different shape is a different problem.
	cfg.Set(config.ConfigWordCount, 4)
	p3, err := CachedProblem(cfg, path)
	is.NoErr(err)
	is.True(p3 != p1)
	is.Equal(p3.MaxSkips(), 6)
}

func TestReportYAML(t *testing.T) {
	is := is.New(t)
	report, _ := runWords(t, config.DefaultConfig(), testhelpers.ToyWords)
	var buf bytes.Buffer
	is.NoErr(report.WriteYAML(&buf))
	is.True(strings.Contains(buf.String(), "solutions: 1\n"))

	var decoded Report
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &decoded))
	is.Equal(decoded.Digest, report.Digest)
	is.Equal(decoded.Skipped, report.Skipped)
}
