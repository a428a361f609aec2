// Package config provides configuration management for the sqlseg CLI.
//
// Values are layered from built-in defaults, an optional YAML file,
// SQLSEG_ environment variables and explicitly set command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	Output    string       `koanf:"output"`
	Verbose   bool         `koanf:"verbose"`
	Normalize bool         `koanf:"normalize"`
	Format    FormatConfig `koanf:"format"`
	Parse     ParseConfig  `koanf:"parse"`
	REPL      REPLConfig   `koanf:"repl"`

	// File is the config file that was loaded, empty when none was found.
	File string `koanf:"-"`
}

// FormatConfig controls SQL re-serialization.
type FormatConfig struct {
	Pretty      bool   `koanf:"pretty"`
	KeywordCase string `koanf:"keyword_case"`
}

// ParseConfig controls the parse command.
type ParseConfig struct {
	// Concurrency bounds how many files are parsed at once.
	Concurrency int `koanf:"concurrency"`
}

// REPLConfig controls the interactive shell.
type REPLConfig struct {
	HistoryFile string `koanf:"history_file"`
	Prompt      string `koanf:"prompt"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=json
	DefaultKeywordCase = "upper"
	DefaultConcurrency = 4
	DefaultPrompt      = "sqlseg> "
	DefaultHistoryFile = ".sqlseg_history" // relative to the home directory

	// MaxConcurrency caps parse.concurrency.
	MaxConcurrency = 256
)

// Config file names searched in the working directory.
const (
	ConfigFileName    = "sqlseg.yaml"
	ConfigFileNameAlt = "sqlseg.yml"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "SQLSEG_"

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Output: DefaultOutput,
		Format: FormatConfig{KeywordCase: DefaultKeywordCase},
		Parse:  ParseConfig{Concurrency: DefaultConcurrency},
		REPL:   REPLConfig{Prompt: DefaultPrompt},
	}
}
