// Package runner wires a prepared problem to a solver and a sink, and
// reports on the run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"

	"github.com/domino14/wordcover/config"
	"github.com/domino14/wordcover/cover"
	"github.com/domino14/wordcover/sink"
	"github.com/domino14/wordcover/stats"
)

const natsConnectAttempts = 5

// Report describes one run.
type Report struct {
	InputWords      int            `yaml:"input_words"`
	QualifyingWords int            `yaml:"qualifying_words"`
	Representatives int            `yaml:"representatives"`
	RarestFirst     string         `yaml:"rarest_first"`
	MaxSkips        int            `yaml:"max_skips"`
	Threads         int            `yaml:"threads"`
	Solutions       int            `yaml:"solutions"`
	Tuples          int            `yaml:"tuples"`
	Skipped         map[string]int `yaml:"skipped"`
	Nodes           uint64         `yaml:"nodes"`
	TaskNodes       stats.Summary  `yaml:"task_nodes"`
	CandidateLists  stats.Summary  `yaml:"candidate_lists"`
	Elapsed         string         `yaml:"elapsed"`
	// Digest is an xxhash of every output line in order. Two runs over the
	// same input have the same digest.
	Digest string `yaml:"digest"`

	TaskNodeCounts []uint64 `yaml:"-"`
}

func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// WriteYAMLFile writes the report to path.
func (r *Report) WriteYAMLFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// OpenSink opens the sink selected by output-format and output-path.
func OpenSink(ctx context.Context, cfg *config.Config) (sink.Sink, error) {
	return OpenSinkAt(ctx, cfg, cfg.GetString(config.ConfigOutputFormat),
		cfg.GetString(config.ConfigOutputPath))
}

// OpenSinkAt opens a sink of the given format. path is ignored for nats,
// which takes its server and subject from cfg.
func OpenSinkAt(ctx context.Context, cfg *config.Config, format, path string) (sink.Sink, error) {
	switch format {
	case "csv":
		return sink.CreateCSV(path)
	case "sqlite":
		return sink.OpenSQLite(ctx, path)
	case "nats":
		return sink.ConnectNATS(ctx, cfg.GetString(config.ConfigNatsURL),
			cfg.GetString(config.ConfigNatsSubject), natsConnectAttempts)
	}
	return nil, errors.New("unknown output format " + format)
}

// Options control a single run.
type Options struct {
	Threads  int
	Progress bool
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Threads:  cfg.Threads(),
		Progress: cfg.GetBool(config.ConfigProgress),
	}
}

// Run searches p and writes every anagram-expanded tuple to out, in search
// order. out is not closed.
func Run(ctx context.Context, ropts Options, p *cover.Problem, out sink.Sink) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	threads := ropts.Threads

	var bar *progressbar.ProgressBar
	opts := cover.Options{Threads: threads}
	if ropts.Progress {
		opts.OnTasks = func(n int) { bar = progressbar.Default(int64(n), "searching") }
		opts.OnTaskDone = func() { bar.Add(1) }
	}

	report := &Report{
		InputWords:      p.NumInput(),
		QualifyingWords: p.NumQualifying(),
		Representatives: p.NumWords(),
		RarestFirst:     p.Ranking().String(),
		MaxSkips:        p.MaxSkips(),
		Threads:         threads,
		Skipped:         map[string]int{},
		CandidateLists:  stats.Summarize(p.Index().ListLengths()),
	}
	digest := xxhash.New()
	groups := p.Groups()

	tstart := time.Now()
	solver := cover.NewSolver(p, opts)
	err := solver.Solve(ctx, func(sol cover.Solution) error {
		tuples, err := groups.Expand(sol.Words)
		if err != nil {
			return err
		}
		skipped := string(sol.Skipped)
		report.Solutions++
		report.Skipped[skipped]++
		for _, t := range tuples {
			rec := sink.Record{Words: t, Skipped: skipped}
			if err := out.Write(rec); err != nil {
				return fmt.Errorf("writing solution: %w", err)
			}
			io.WriteString(digest, rec.Line()+"\n")
			report.Tuples++
		}
		logger.Debug().Strs("words", sol.Words).Str("skipped", skipped).
			Int("tuples", len(tuples)).Msg("solution")
		return nil
	})
	if bar != nil {
		bar.Finish()
	}
	report.Nodes = solver.Nodes()
	report.TaskNodeCounts = solver.TaskNodes()
	report.TaskNodes = stats.Summarize(report.TaskNodeCounts)
	report.Elapsed = time.Since(tstart).String()
	report.Digest = fmt.Sprintf("%016x", digest.Sum64())
	if err != nil {
		return report, err
	}

	logger.Info().Int("solutions", report.Solutions).Int("tuples", report.Tuples).
		Interface("skipped", report.Skipped).Str("digest", report.Digest).
		Msg("run-finished")
	return report, nil
}
