package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// configKey is used to store config in context.
type configKey struct{}

// flagKeys maps command-line flag names to config keys. Flags not listed
// here are not configuration and are never loaded.
var flagKeys = map[string]string{
	"output":       "output",
	"verbose":      "verbose",
	"normalize":    "normalize",
	"pretty":       "format.pretty",
	"keyword-case": "format.keyword_case",
	"concurrency":  "parse.concurrency",
	"history-file": "repl.history_file",
	"prompt":       "repl.prompt",
}

// KeyForFlag returns the config key a command-line flag sets.
func KeyForFlag(name string) (string, bool) {
	key, ok := flagKeys[name]
	return key, ok
}

// findConfigFile finds the config file to use.
// Priority: explicit path > sqlseg.yaml > sqlseg.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKey transforms SQLSEG_FORMAT__KEYWORD_CASE into format.keyword_case.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Load loads configuration from defaults, the config file, environment
// variables and flags. Precedence (highest to lowest): flags > env vars >
// config file > defaults. Unknown keys are an error.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	def := Default()
	if err := k.Load(confmap.Provider(map[string]any{
		"output":              def.Output,
		"verbose":             def.Verbose,
		"normalize":           def.Normalize,
		"format.pretty":       def.Format.Pretty,
		"format.keyword_case": def.Format.KeywordCase,
		"parse.concurrency":   def.Parse.Concurrency,
		"repl.history_file":   def.REPL.HistoryFile,
		"repl.prompt":         def.REPL.Prompt,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFile := findConfigFile(cfgFile)
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Environment variables (SQLSEG_ prefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Strict decode
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.File = configFile
	cfg.REPL.HistoryFile = resolveHistoryFile(cfg.REPL.HistoryFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveHistoryFile places an empty or relative history path in the home
// directory.
func resolveHistoryFile(path string) string {
	if path == "" {
		path = DefaultHistoryFile
	}
	if filepath.IsAbs(path) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path)
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from the command context, falling back
// to the defaults.
func GetConfig(ctx context.Context) *Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*Config); ok {
			return c
		}
	}
	return Default()
}
