package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordcover/cache"
	"github.com/domino14/wordcover/config"
	"github.com/domino14/wordcover/runner"
	"github.com/domino14/wordcover/sink"
	"github.com/domino14/wordcover/stats"
)

const (
	defaultShowSolutions  = 20
	defaultShowCandidates = 15
	histogramBins         = 10
	histogramWidth        = 60
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

// settableKeys are the settings `set` may show or change.
var settableKeys = []string{
	config.ConfigWordList, config.ConfigAlphabet, config.ConfigWordLength,
	config.ConfigWordCount, config.ConfigInputEncoding, config.ConfigThreads,
	config.ConfigOutputFormat, config.ConfigOutputPath, config.ConfigProgress,
}

func (sc *ShellController) settingsText() string {
	out := strings.Builder{}
	out.WriteString("Settings:\n")
	for _, key := range settableKeys {
		fmt.Fprintf(&out, "  %s: %v\n", key, sc.config.Get(key))
	}
	return out.String()
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(sc.settingsText()), nil
	}
	opt := cmd.args[0]
	if !sc.isSettable(opt) {
		return nil, errors.New("no such option: " + opt)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%v", sc.config.Get(opt))), nil
	}
	val := strings.Join(cmd.args[1:], " ")
	switch opt {
	case config.ConfigWordLength, config.ConfigWordCount, config.ConfigThreads:
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, errors.New(opt + " must not be negative")
		}
		sc.config.Set(opt, n)
	case config.ConfigProgress:
		sc.config.Set(opt, strings.ToLower(val) == "true")
	case config.ConfigOutputFormat:
		switch val {
		case "csv", "sqlite", "nats":
		default:
			return nil, errors.New("output-format must be one of csv, sqlite, nats")
		}
		sc.config.Set(opt, val)
	default:
		sc.config.Set(opt, val)
	}
	return msg("set " + opt + " to " + val), nil
}

func (sc *ShellController) isSettable(key string) bool {
	for _, k := range settableKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	path := sc.config.GetString(config.ConfigWordList)
	if len(cmd.args) > 0 {
		path = cmd.args[0]
	}
	if cmd.options.Bool("reload") {
		cache.Evict(runner.ProblemKey(sc.config, path))
	}
	p, err := runner.CachedProblem(sc.config, path)
	if err != nil {
		return nil, err
	}
	sc.problem = p
	sc.problemPath = path
	sc.lastReport = nil
	sc.lastLines = nil
	log.Debug().Str("path", path).Int("words", p.NumWords()).Msg("loaded-problem")
	return sc.info(cmd)
}

func (sc *ShellController) info(cmd *shellcmd) (*Response, error) {
	if sc.problem == nil {
		return nil, errNoProblem
	}
	p := sc.problem
	params := p.Params()
	var b strings.Builder
	fmt.Fprintf(&b, "word list:       %s\n", sc.problemPath)
	fmt.Fprintf(&b, "shape:           %d words of %d symbols\n", params.WordCount, params.WordLength)
	fmt.Fprintf(&b, "input words:     %d\n", p.NumInput())
	fmt.Fprintf(&b, "qualifying:      %d\n", p.NumQualifying())
	fmt.Fprintf(&b, "representatives: %d\n", p.NumWords())
	fmt.Fprintf(&b, "max skips:       %d\n", p.MaxSkips())
	fmt.Fprintf(&b, "rarest first:    %s", p.Ranking().String())
	return msg(b.String()), nil
}

func (sc *ShellController) rank(cmd *shellcmd) (*Response, error) {
	if sc.problem == nil {
		return nil, errNoProblem
	}
	r := sc.problem.Ranking()
	var b strings.Builder
	b.WriteString("Rank Symbol Frequency\n")
	for pos := 0; pos < r.Size(); pos++ {
		fmt.Fprintf(&b, "%4d %6c %9d\n", pos, r.SymbolAt(pos), r.FrequencyAt(pos))
	}
	return msg(strings.TrimRight(b.String(), "\n")), nil
}

func (sc *ShellController) candidates(cmd *shellcmd) (*Response, error) {
	if sc.problem == nil {
		return nil, errNoProblem
	}
	if len(cmd.args) != 1 || utf8.RuneCountInString(cmd.args[0]) != 1 {
		return nil, errors.New("usage: candidates <symbol> [-n count]")
	}
	n, err := cmd.options.IntDefault("n", defaultShowCandidates)
	if err != nil {
		return nil, err
	}
	c, _ := utf8.DecodeRuneInString(cmd.args[0])
	if !sc.problem.Alphabet().Contains(c) {
		return nil, fmt.Errorf("symbol %q is not in the alphabet", c)
	}
	ix := sc.problem.Index()
	words := ix.Candidates(c)
	var b strings.Builder
	fmt.Fprintf(&b, "%d words contain %c\n", len(words), c)
	for i, w := range words {
		if i == n {
			fmt.Fprintf(&b, "  ... and %d more\n", len(words)-n)
			break
		}
		fmt.Fprintf(&b, "%3d: %s %5d\n", i+1, w, ix.Score(w))
	}
	return msg(strings.TrimRight(b.String(), "\n")), nil
}

func (sc *ShellController) anagrams(cmd *shellcmd) (*Response, error) {
	if sc.problem == nil {
		return nil, errNoProblem
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: anagrams <word>")
	}
	members := sc.problem.Groups().Members(strings.ToLower(cmd.args[0]))
	if len(members) == 0 {
		return msg("no qualifying anagrams of " + cmd.args[0]), nil
	}
	return msg(strings.Join(members, " ")), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if sc.problem == nil {
		return nil, errNoProblem
	}
	ropts := runner.OptionsFromConfig(sc.config)
	threads, err := cmd.options.IntDefault("threads", ropts.Threads)
	if err != nil {
		return nil, err
	}
	ropts.Threads = threads
	if _, ok := cmd.options["progress"]; ok {
		ropts.Progress = cmd.options.Bool("progress")
	}
	show, err := cmd.options.IntDefault("show", defaultShowSolutions)
	if err != nil {
		return nil, err
	}

	ctx := log.Logger.WithContext(context.Background())
	collector := &sink.Collector{}
	var out sink.Sink = collector
	var fileSink sink.Sink
	if path := cmd.options.String("out"); path != "" {
		format := cmd.options.String("format")
		if format == "" {
			format = sc.config.GetString(config.ConfigOutputFormat)
		}
		fileSink, err = runner.OpenSinkAt(ctx, sc.config, format, path)
		if err != nil {
			return nil, err
		}
		out = sink.Tee(collector, fileSink)
	}

	report, err := runner.Run(ctx, ropts, sc.problem, out)
	if fileSink != nil {
		err = sink.Finish(fileSink, err)
	}
	if err != nil {
		return nil, err
	}
	sc.lastReport = report
	sc.lastLines = collector.Lines()

	var b strings.Builder
	for i, line := range sc.lastLines {
		if i == show {
			fmt.Fprintf(&b, "... and %d more\n", len(sc.lastLines)-show)
			break
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "%d solutions, %d tuples, %d nodes in %s (digest %s)",
		report.Solutions, report.Tuples, report.Nodes, report.Elapsed, report.Digest)
	return msg(b.String()), nil
}

func (sc *ShellController) report(cmd *shellcmd) (*Response, error) {
	if sc.lastReport == nil {
		return nil, errors.New("please run `solve` first")
	}
	if len(cmd.args) > 0 {
		if err := sc.lastReport.WriteYAMLFile(cmd.args[0]); err != nil {
			return nil, err
		}
		return msg("wrote report to " + cmd.args[0]), nil
	}
	var b strings.Builder
	if err := sc.lastReport.WriteYAML(&b); err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(b.String(), "\n")), nil
}

func (sc *ShellController) histogram(cmd *shellcmd) (*Response, error) {
	what := "candidates"
	if len(cmd.args) > 0 {
		what = cmd.args[0]
	}
	bins, err := cmd.options.IntDefault("bins", histogramBins)
	if err != nil {
		return nil, err
	}
	if bins < 1 {
		return nil, errors.New("-bins must be at least 1")
	}
	var b strings.Builder
	switch what {
	case "candidates":
		if sc.problem == nil {
			return nil, errNoProblem
		}
		err = stats.Histogram(&b, sc.problem.Index().ListLengths(), bins, histogramWidth)
	case "tasks":
		if sc.lastReport == nil {
			return nil, errors.New("please run `solve` first")
		}
		err = stats.Histogram(&b, sc.lastReport.TaskNodeCounts, bins, histogramWidth)
	default:
		return nil, errors.New("usage: histogram [candidates|tasks]")
	}
	if err != nil {
		return nil, err
	}
	if b.Len() == 0 {
		return msg("nothing to plot"), nil
	}
	return msg(strings.TrimRight(b.String(), "\n")), nil
}
