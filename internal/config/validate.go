package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/format"
)

// OutputModes lists the accepted values of the output key.
var OutputModes = []string{"auto", "text", "json", "yaml", "table"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputModes, c.Output) {
		return fmt.Errorf("invalid output %q: must be one of %s", c.Output, strings.Join(OutputModes, ", "))
	}
	if _, err := format.ParseKeywordCase(c.Format.KeywordCase); err != nil {
		return fmt.Errorf("format.keyword_case: %w", err)
	}
	if c.Parse.Concurrency < 1 || c.Parse.Concurrency > MaxConcurrency {
		return fmt.Errorf("parse.concurrency must be between 1 and %d, got %d", MaxConcurrency, c.Parse.Concurrency)
	}
	if c.REPL.Prompt == "" {
		return fmt.Errorf("repl.prompt is required")
	}
	return nil
}

// FormatOptions converts the format section into formatter options.
// Validate must have succeeded.
func (c *Config) FormatOptions() format.Options {
	kc, _ := format.ParseKeywordCase(c.Format.KeywordCase)
	return format.Options{Pretty: c.Format.Pretty, KeywordCase: kc}
}
