package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benbeisheim/casualchess/internal/model"
	"go.uber.org/zap"
)

const envPrefix = "CASUALCHESS_"

type Config struct {
	Addr            string
	AllowOrigins    string
	OpponentDelay   time.Duration
	OpponentDefault bool
	LogLevel        string
	LogFile         string
	Dev             bool
}

// Load reads flags from args. Every flag falls back to an environment
// variable named CASUALCHESS_ plus the flag name in upper snake case, then
// to the built-in default.
func Load(name string, args []string) (Config, error) {
	return load(name, args, os.LookupEnv)
}

func load(name string, args []string, lookup func(string) (string, bool)) (Config, error) {
	env := envReader{lookup: lookup}
	cfg := Config{
		Addr:            env.getString("addr", ":3000"),
		AllowOrigins:    env.getString("allow-origins", "http://localhost:5173"),
		OpponentDelay:   env.getDuration("opponent-delay", model.DefaultOpponentDelay),
		OpponentDefault: env.getBool("opponent", false),
		LogLevel:        env.getString("log-level", "info"),
		LogFile:         env.getString("log-file", ""),
		Dev:             env.getBool("dev", false),
	}
	if env.err != nil {
		return Config{}, env.err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", cfg.AllowOrigins, "comma-separated CORS and websocket origins")
	fs.DurationVar(&cfg.OpponentDelay, "opponent-delay", cfg.OpponentDelay, "delay before the opponent replies")
	fs.BoolVar(&cfg.OpponentDefault, "opponent", cfg.OpponentDefault, "enable the opponent in new games by default")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "human-readable development logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.OpponentDelay < 0 {
		return Config{}, fmt.Errorf("opponent delay must not be negative, got %s", cfg.OpponentDelay)
	}
	if _, err := zap.ParseAtomicLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("log level: %w", err)
	}
	return cfg, nil
}

// Origins splits AllowOrigins into a list.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Logger builds the zap logger described by the config.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	if c.LogFile != "" {
		zc.OutputPaths = []string{c.LogFile}
		zc.ErrorOutputPaths = []string{c.LogFile}
	}
	return zc.Build()
}

// envReader collects the first parse error so Load can report it once.
type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func envName(flagName string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

func (e *envReader) getString(name, def string) string {
	if v, ok := e.lookup(envName(name)); ok {
		return v
	}
	return def
}

func (e *envReader) getDuration(name string, def time.Duration) time.Duration {
	v, ok := e.lookup(envName(name))
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("%s: %w", envName(name), err)
	}
	return d
}

func (e *envReader) getBool(name string, def bool) bool {
	v, ok := e.lookup(envName(name))
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("%s: %w", envName(name), err)
	}
	return b
}
