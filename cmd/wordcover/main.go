package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordcover/config"
	"github.com/domino14/wordcover/runner"
	"github.com/domino14/wordcover/sink"
)

var (
	GitVersion string
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	args, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		return 2
	}
	if len(args) > 0 {
		cfg.Set(config.ConfigWordList, args[0])
	}
	if _, err := os.Stat(cfg.GetString(config.ConfigWordList)); err != nil {
		cfg.AdjustRelativePaths(exPath)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
	log.Info().Str("version", GitVersion).Interface("config", cfg.SanitizedSettings()).
		Msg("loaded-config")
	log.Info().Int("cpus", runtime.NumCPU()).
		Uint64("total-memory-mb", memory.TotalMemory()/(1024*1024)).
		Uint64("free-memory-mb", memory.FreeMemory()/(1024*1024)).Msg("system")

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("run-failed")
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config) error {
	tstart := time.Now()
	p, err := runner.LoadProblem(cfg, cfg.GetString(config.ConfigWordList))
	if err != nil {
		return err
	}
	log.Info().Int("input", p.NumInput()).Int("qualifying", p.NumQualifying()).
		Int("representatives", p.NumWords()).Str("rarest-first", p.Ranking().String()).
		Dur("elapsed", time.Since(tstart)).Msg("loaded-problem")

	out, err := runner.OpenSink(ctx, cfg)
	if err != nil {
		return err
	}
	report, err := runner.Run(ctx, runner.OptionsFromConfig(cfg), p, out)
	if err := sink.Finish(out, err); err != nil {
		return err
	}

	if path := cfg.GetString(config.ConfigReportPath); path != "" {
		if err := report.WriteYAMLFile(path); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("wrote-report")
	}
	log.Info().Int("solutions", report.Solutions).Int("tuples", report.Tuples).
		Dur("total", time.Since(tstart)).Msg("done")
	return nil
}
