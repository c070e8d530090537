package evaluate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"compsplit/internal/logging"
	"compsplit/internal/segment"
)

// ErrMalformedGold indicates a gold line without an annotation.
var ErrMalformedGold = errors.New("malformed gold line")

const maxLineBytes = 1 << 20

var (
	braceGroup  = regexp.MustCompile(`\{[^}]+\}`)
	parentheses = regexp.MustCompile(`[()]`)
	alternative = regexp.MustCompile(`,[a-z]+`)
	umlauts     = strings.NewReplacer("|", "", "U", "ü", "A", "ä")
)

// Decomposer is the search being evaluated.
type Decomposer interface {
	Decompose(input string, emit segment.EmitFunc) error
}

// Instance is one parsed gold line.
type Instance struct {
	Line     int
	Compound string
	Gold     []string
}

// Miss records a gold instance the engine did not reproduce.
type Miss struct {
	Line     int    `json:"line"`
	Compound string `json:"compound"`
	Gold     string `json:"gold"`
	Found    int    `json:"found"`
	Rejected bool   `json:"rejected,omitempty"`
}

// Result aggregates an evaluation run.
type Result struct {
	Instances      int
	Covered        int
	Unsplittable   int
	Rejected       int
	Decompositions int
	Misses         []Miss
}

// Coverage returns the covered share of instances as a percentage.
func (r Result) Coverage() float64 {
	if r.Instances == 0 {
		return 0
	}
	return float64(r.Covered) * 100 / float64(r.Instances)
}

// Options controls an evaluation run.
type Options struct {
	Logger *slog.Logger
}

// CleanAnnotation strips markup from an annotated split and returns its
// '+'-separated segments.
func CleanAnnotation(annotated string) []string {
	cleaned := braceGroup.ReplaceAllString(annotated, "")
	cleaned = parentheses.ReplaceAllString(cleaned, "")
	cleaned = alternative.ReplaceAllString(cleaned, "")
	cleaned = umlauts.Replace(cleaned)
	return strings.Split(cleaned, "+")
}

// ParseGold parses one gold line.
func ParseGold(lineNo int, text string) (Instance, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return Instance{}, fmt.Errorf("line %d %q: %w", lineNo, text, ErrMalformedGold)
	}
	return Instance{Line: lineNo, Compound: fields[0], Gold: CleanAnnotation(fields[1])}, nil
}

// Run evaluates every gold line in r. Blank lines are skipped.
func Run(ctx context.Context, r io.Reader, engine Decomposer, opts Options) (Result, error) {
	logger := logging.NewComponentLogger(opts.Logger, "evaluate")

	var result Result
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return result, err
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		inst, err := ParseGold(lineNo, text)
		if err != nil {
			return result, err
		}
		result.Instances++

		found := 0
		covered := false
		err = engine.Decompose(inst.Compound, func(p segment.Path) error {
			found++
			if !covered && slices.Equal(p.Words(), inst.Gold) {
				covered = true
			}
			return nil
		})
		rejected := errors.Is(err, segment.ErrInputTooLong)
		if err != nil && !rejected {
			return result, fmt.Errorf("decompose %q: %w", inst.Compound, err)
		}

		result.Decompositions += found
		switch {
		case covered:
			result.Covered++
			continue
		case rejected:
			result.Rejected++
		case found == 0:
			result.Unsplittable++
		}
		result.Misses = append(result.Misses, Miss{
			Line:     inst.Line,
			Compound: inst.Compound,
			Gold:     strings.Join(inst.Gold, "+"),
			Found:    found,
			Rejected: rejected,
		})
		logger.Debug("gold instance missed",
			logging.Int(logging.FieldLine, inst.Line),
			logging.String("compound", inst.Compound),
			logging.Int("decompositions", found))
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("read gold corpus: %w", err)
	}

	logger.Info("evaluation complete",
		logging.Int("instances", result.Instances),
		logging.Int("covered", result.Covered),
		logging.Float64("coverage_percent", result.Coverage()))
	return result, nil
}
