package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigWordList      = "word-list"
	ConfigAlphabet      = "alphabet"
	ConfigWordLength    = "word-length"
	ConfigWordCount     = "word-count"
	ConfigInputEncoding = "input-encoding"
	ConfigThreads       = "threads"
	ConfigOutputFormat  = "output-format"
	ConfigOutputPath    = "output-path"
	ConfigReportPath    = "report-path"
	ConfigNatsURL       = "nats-url"
	ConfigNatsSubject   = "nats-subject"
	ConfigProgress      = "progress"
	ConfigDebug         = "debug"
	ConfigCPUProfile    = "cpu-profile"
	ConfigConfigFile    = "config"
)

const (
	DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz"
)

// Config wraps a viper instance. Settings come, in increasing order of
// precedence, from defaults, an optional config file, WORDCOVER_* environment
// variables and command-line flags.
type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigWordList, "./wordlist.txt")
	v.SetDefault(ConfigAlphabet, DefaultAlphabet)
	v.SetDefault(ConfigWordLength, 5)
	v.SetDefault(ConfigWordCount, 5)
	v.SetDefault(ConfigInputEncoding, "utf-8")
	v.SetDefault(ConfigThreads, 1)
	v.SetDefault(ConfigOutputFormat, "csv")
	v.SetDefault(ConfigOutputPath, "out.csv")
	v.SetDefault(ConfigReportPath, "")
	v.SetDefault(ConfigNatsURL, "nats://127.0.0.1:4222")
	v.SetDefault(ConfigNatsSubject, "wordcover.solutions")
	v.SetDefault(ConfigProgress, false)
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigCPUProfile, "")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("wordcover")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultConfig returns a config with only defaults and environment applied.
func DefaultConfig() *Config {
	return &Config{Viper: newViper()}
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("wordcover", pflag.ContinueOnError)
	fs.String(ConfigWordList, "./wordlist.txt", "path to the word list, one word per line")
	fs.String(ConfigAlphabet, DefaultAlphabet, "the symbols words are built from, rarest ties broken in this order")
	fs.Int(ConfigWordLength, 5, "length of every word in a solution")
	fs.Int(ConfigWordCount, 5, "number of words in a solution")
	fs.String(ConfigInputEncoding, "utf-8", "word list encoding: utf-8, latin1 or windows-1252")
	fs.Int(ConfigThreads, 1, "search threads; 0 means one per CPU")
	fs.String(ConfigOutputFormat, "csv", "solution sink: csv, sqlite or nats")
	fs.String(ConfigOutputPath, "out.csv", "csv file (- for stdout) or sqlite database path")
	fs.String(ConfigReportPath, "", "write a YAML run report to this path")
	fs.String(ConfigNatsURL, "nats://127.0.0.1:4222", "NATS server for the nats sink")
	fs.String(ConfigNatsSubject, "wordcover.solutions", "NATS subject for the nats sink")
	fs.Bool(ConfigProgress, false, "show a progress bar over root search tasks")
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this path")
	fs.String(ConfigConfigFile, "", "optional config file (yaml, toml, json)")
	return fs
}

// Load parses command-line arguments on top of defaults, the environment and
// an optional config file. Positional arguments are returned.
func (c *Config) Load(args []string) ([]string, error) {
	c.Viper = newViper()
	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.BindPFlags(fs); err != nil {
		return nil, err
	}
	if cfgFile := c.GetString(ConfigConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		if err := c.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}
	return fs.Args(), c.validate()
}

func (c *Config) validate() error {
	switch c.GetString(ConfigOutputFormat) {
	case "csv", "sqlite", "nats":
	default:
		return errors.New("output-format must be one of csv, sqlite, nats")
	}
	if c.GetInt(ConfigThreads) < 0 {
		return errors.New("threads must not be negative")
	}
	return nil
}

// Threads resolves the thread setting, mapping 0 to the CPU count.
func (c *Config) Threads() int {
	t := c.GetInt(ConfigThreads)
	if t == 0 {
		return runtime.NumCPU()
	}
	return t
}

// AdjustRelativePaths resolves a ./-prefixed word list against basePath,
// usually the executable's directory.
func (c *Config) AdjustRelativePaths(basePath string) {
	wl := c.GetString(ConfigWordList)
	if strings.HasPrefix(wl, "./") {
		c.Set(ConfigWordList, filepath.Join(basePath, wl))
	}
}

// SanitizedSettings is AllSettings without anything that could carry
// credentials.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	if _, ok := settings[ConfigNatsURL]; ok {
		settings[ConfigNatsURL] = "<redacted>"
	}
	return settings
}
