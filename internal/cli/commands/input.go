package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlseg/internal/cli/output"
	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/parser"
)

// stdinName labels input read from standard input.
const stdinName = "<stdin>"

// parseInputs parses each named file, or stdin when names is empty or a
// name is "-". Files are parsed concurrently, at most parse.concurrency
// at a time, and results keep the order of names.
func parseInputs(ctx context.Context, cc *CommandContext, stdin io.Reader, names []string) ([]output.FileResult, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}

	results := make([]output.FileResult, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cc.Cfg.Parse.Concurrency, 1))

	// stdin can only be consumed once: read it before fanning out and
	// share it between repeated "-" arguments
	var stdinSQL *string
	for i, name := range names {
		var sql string
		if name == "-" {
			if stdinSQL == nil {
				data, err := io.ReadAll(stdin)
				if err != nil {
					return nil, fmt.Errorf("failed to read stdin: %w", err)
				}
				text := string(data)
				stdinSQL = &text
			}
			name, sql = stdinName, *stdinSQL
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if name != stdinName {
				data, err := os.ReadFile(name)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", name, err)
				}
				sql = string(data)
			}

			stmts, err := cc.Parser.Parse(sql)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", name, err)
			}
			if cc.Cfg.Normalize {
				stmts = parser.NormalizeSegmentedStatements(stmts)
			}
			cc.Logger.Debug("parsed input", "file", name, "segments", countSegments(stmts))
			results[i] = output.FileResult{File: name, Statements: stmts}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func countSegments(stmts []*ast.SegmentedStatement) int {
	n := 0
	for _, s := range stmts {
		n += len(s.Segments)
	}
	return n
}
