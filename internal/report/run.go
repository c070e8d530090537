package report

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"compsplit/internal/logging"
	"compsplit/internal/segment"
)

const maxInputLineBytes = 1 << 20

// Decomposer is the search the run loop drives.
type Decomposer interface {
	Decompose(input string, emit segment.EmitFunc) error
}

// Options controls the run loop.
type Options struct {
	// SkipEmpty drops lines that are empty after trimming without echoing
	// them. When false they are echoed with zero decompositions.
	SkipEmpty bool
	Logger    *slog.Logger
}

// Summary counts what a run processed.
type Summary struct {
	Lines          int
	Decomposed     int
	Decompositions int
	Skipped        int
	Rejected       int
}

// Run reads one token per line from in, decomposes each trimmed line, and
// streams the results to rep. Lines the engine rejects are logged and
// skipped; reporter write failures and read errors end the run. The context
// is checked between lines.
func Run(ctx context.Context, in io.Reader, engine Decomposer, rep Reporter, opts Options) (Summary, error) {
	logger := logging.NewComponentLogger(opts.Logger, "report")

	var summary Summary
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 4096), maxInputLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" && opts.SkipEmpty {
			summary.Skipped++
			continue
		}
		summary.Lines++

		if err := rep.Begin(line); err != nil {
			return summary, fmt.Errorf("write report: %w", err)
		}
		found := 0
		err := engine.Decompose(line, func(p segment.Path) error {
			found++
			return rep.Decomposition(p)
		})
		switch {
		case errors.Is(err, segment.ErrInputTooLong):
			summary.Rejected++
			logging.WarnWithContext(logger, "input rejected", "input_too_long",
				logging.Int(logging.FieldLine, lineNo),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "raise split.max_depth to search longer tokens"),
				logging.String(logging.FieldImpact, "no decompositions reported for this line"))
		case err != nil:
			return summary, fmt.Errorf("write report: %w", err)
		}
		if err := rep.End(); err != nil {
			return summary, fmt.Errorf("write report: %w", err)
		}

		if found > 0 {
			summary.Decomposed++
		}
		summary.Decompositions += found
		logger.Debug("line decomposed",
			logging.Int(logging.FieldLine, lineNo),
			logging.Int("decompositions", found))
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("read input: %w", err)
	}
	return summary, nil
}
