package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordcover/config"
	"github.com/domino14/wordcover/sink"
	"github.com/domino14/wordcover/testhelpers"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"solve -out /path/to/out.csv",
			&shellcmd{"solve", nil, CmdOptions{"out": {"/path/to/out.csv"}}},
			nil},
		{"histogram tasks",
			&shellcmd{"histogram", []string{"tasks"}, CmdOptions{}},
			nil},
		{"load 'my words.txt' -n 3 ",
			&shellcmd{"load",
				[]string{"my words.txt"},
				CmdOptions{"n": {"3"}}},
			nil,
		},
		{"solve -threads 2 -threads 4",
			&shellcmd{"solve", nil, CmdOptions{"threads": {"2", "4"}}},
			nil},
		{"solve -threads",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newTestShell(t *testing.T, words []string) (*ShellController, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigWordList, testhelpers.WriteWordList(t, words))
	var buf bytes.Buffer
	return newHeadlessController(cfg, &buf), &buf
}

func run(t *testing.T, sc *ShellController, line string) string {
	t.Helper()
	resp, err := sc.standardModeSwitch(line, nil)
	if err != nil {
		t.Fatalf("%s: %v", line, err)
	}
	return resp.message
}

func TestNeedsLoad(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell(t, testhelpers.ToyWords)
	for _, line := range []string{"info", "rank", "candidates a", "anagrams abcde", "solve", "histogram"} {
		_, err := sc.standardModeSwitch(line, nil)
		is.Equal(err, errNoProblem)
	}
}

func TestLoadAndInspect(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell(t, append([]string{"bcdea"}, testhelpers.ToyWords...))

	out := run(t, sc, "load")
	is.True(strings.Contains(out, "representatives: 5"))
	is.True(strings.Contains(out, "qualifying:      6"))
	is.True(strings.Contains(out, "rarest first:    z"))

	out = run(t, sc, "rank")
	lines := strings.Split(out, "\n")
	is.Equal(len(lines), 27)
	is.Equal(strings.Fields(lines[1]), []string{"0", "z", "0"})

	out = run(t, sc, "candidates a")
	is.True(strings.HasPrefix(out, "1 words contain a\n"))
	is.True(strings.Contains(out, "bcdea"))

	is.Equal(run(t, sc, "anagrams edcba"), "bcdea abcde")

	_, err := sc.standardModeSwitch("candidates ab", nil)
	is.True(err != nil)
	_, err = sc.standardModeSwitch("candidates 9", nil)
	is.True(err != nil)
}

func TestSolve(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell(t, append(testhelpers.ToyWords, "onmlk"))
	run(t, sc, "load")

	out := run(t, sc, "solve -threads 2")
	is.True(strings.HasPrefix(out,
		"abcde,fghij,klmno,pqrst,uvwxy\nabcde,fghij,onmlk,pqrst,uvwxy\n1 solutions, 2 tuples"))

	out = run(t, sc, "solve -show 1")
	is.True(strings.Contains(out, "... and 1 more\n"))

	out = run(t, sc, "report")
	is.True(strings.Contains(out, "tuples: 2"))

	is.Equal(run(t, sc, "histogram tasks"), "all 1 values are 6")
	is.True(len(run(t, sc, "histogram -bins 2")) > 0)
}

func TestHistogramBadBins(t *testing.T) {
	is := is.New(t)
	sc, buf := newTestShell(t, testhelpers.ToyWords)
	run(t, sc, "load")
	for _, line := range []string{"histogram -bins -3", "histogram -bins 0", "histogram tasks -bins 0"} {
		_, err := sc.standardModeSwitch(line, nil)
		is.True(err != nil)
	}
	buf.Reset()
	sc.Execute(nil, "histogram -bins -3")
	is.True(strings.HasPrefix(buf.String(), "Error: "))
}

func TestLoadReload(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell(t, testhelpers.ToyWords)
	is.True(strings.Contains(run(t, sc, "load"), "representatives: 5"))

	path := sc.config.GetString(config.ConfigWordList)
	words := append([]string{"bcdea", "zyxwv"}, testhelpers.ToyWords...)
	is.NoErr(os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0644))

	// Still the cached tables until asked to reread.
	is.True(strings.Contains(run(t, sc, "load"), "input words:     5"))
	out := run(t, sc, "load -reload true")
	is.True(strings.Contains(out, "input words:     7"))
	is.True(strings.Contains(out, "representatives: 6"))
}

func TestSolveProgressOption(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell(t, testhelpers.ToyWords)
	sc.config.Set(config.ConfigProgress, true)
	run(t, sc, "load")
	out := run(t, sc, "solve -progress false")
	is.True(strings.HasPrefix(out, "abcde,fghij,klmno,pqrst,uvwxy\n1 solutions"))
}

func TestSolveToFile(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell(t, testhelpers.ToyWords)
	run(t, sc, "load")
	dbPath := filepath.Join(t.TempDir(), "out.db")
	run(t, sc, "solve -format sqlite -out "+dbPath)

	lines, err := sink.ReadSQLite(context.Background(), dbPath)
	is.NoErr(err)
	is.Equal(lines, []string{"abcde,fghij,klmno,pqrst,uvwxy"})
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell(t, testhelpers.ToyWords)
	is.True(strings.Contains(run(t, sc, "set"), "word-count: 5"))
	is.Equal(run(t, sc, "set word-count 4"), "set word-count to 4")
	is.Equal(run(t, sc, "set word-count"), "4")

	out := run(t, sc, "load")
	is.True(strings.Contains(out, "max skips:       6"))

	_, err := sc.standardModeSwitch("set word-count many", nil)
	is.True(err != nil)
	_, err = sc.standardModeSwitch("set output-format xml", nil)
	is.True(err != nil)
	_, err = sc.standardModeSwitch("set nats-url nats://elsewhere", nil)
	is.True(err != nil)
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell(t, nil)
	is.True(strings.Contains(run(t, sc, "help"), "solve [-threads n]"))
	is.True(strings.HasPrefix(run(t, sc, "help load"), "load [path]"))
	_, err := sc.standardModeSwitch("help endgame", nil)
	is.True(err != nil)
}

func TestExecuteAndExit(t *testing.T) {
	is := is.New(t)
	sc, buf := newTestShell(t, testhelpers.ToyWords)
	sc.Execute(nil, "frobnicate")
	is.True(strings.HasPrefix(buf.String(), "Error: command \"frobnicate\" not found"))

	_, err := sc.standardModeSwitch("exit", nil)
	is.Equal(err, errQuit)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	c := NewShellCompleter(nil)
	matches, n := c.Do([]rune("so"), 2)
	is.Equal(n, 2)
	is.Equal(matches, [][]rune{[]rune("lve")})

	line := []rune("solve -format sq")
	matches, _ = c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("lite")})

	line = []rune("load -reload t")
	matches, _ = c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("rue")})

	line = []rune("set word-")
	matches, _ = c.Do(line, len(line))
	is.Equal(len(matches), 3)
}
