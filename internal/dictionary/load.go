package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"compsplit/internal/logging"
	"compsplit/internal/textutil"
)

// Policy selects how below-floor lines are treated.
type Policy string

const (
	// PolicyHalt stops ingestion at the first below-floor line.
	PolicyHalt Policy = "halt"
	// PolicyFilter skips below-floor lines and keeps reading.
	PolicyFilter Policy = "filter"
)

const (
	DefaultFloor     = 10
	DefaultMinLength = 1

	maxLineBytes = 1 << 20
)

var (
	// ErrMalformedLine marks a line that is not "<word> <rank>".
	ErrMalformedLine = errors.New("malformed dictionary line")
	// ErrUnsorted marks a rank increase before the halt point under StrictOrder.
	ErrUnsorted = errors.New("dictionary not sorted by descending rank")
)

// LineError reports the resource line that aborted a load.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Options controls which lines become entries.
type Options struct {
	Floor       int
	MinLength   int
	Policy      Policy
	StrictOrder bool
	Logger      *slog.Logger
}

// DefaultOptions returns the stock loading rules: floor 10, words longer than
// one character, halt on the first below-floor line.
func DefaultOptions() Options {
	return Options{Floor: DefaultFloor, MinLength: DefaultMinLength, Policy: PolicyHalt}
}

// Stats summarizes a load.
type Stats struct {
	Lines           int
	Entries         int
	ShortWords      int
	BelowFloor      int
	Duplicates      int
	HaltedAtLine    int
	OrderViolations int
}

// Halted reports whether ingestion stopped before the end of the resource.
func (s Stats) Halted() bool { return s.HaltedAtLine > 0 }

// Load reads "<word> <rank>" lines from r and applies the loading rules.
func Load(r io.Reader, opts Options) (*Dictionary, Stats, error) {
	policy := opts.Policy
	if policy == "" {
		policy = PolicyHalt
	}
	if policy != PolicyHalt && policy != PolicyFilter {
		return nil, Stats{}, fmt.Errorf("unknown load policy %q", policy)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	var stats Stats
	b := newBuilder(1024)
	prevRank := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		stats.Lines++
		text := scanner.Text()
		word, rank, err := ParseLine(text)
		if err != nil {
			return nil, stats, &LineError{Line: stats.Lines, Text: text, Err: err}
		}

		if policy == PolicyHalt {
			if stats.Lines > 1 && rank > prevRank {
				if opts.StrictOrder {
					return nil, stats, &LineError{Line: stats.Lines, Text: text, Err: ErrUnsorted}
				}
				stats.OrderViolations++
				logger.Debug("rank increases before halt point",
					logging.Int(logging.FieldLine, stats.Lines),
					logging.Int("rank", rank),
					logging.Int("previous_rank", prevRank))
			}
			prevRank = rank
		}

		if rank < opts.Floor {
			stats.BelowFloor++
			if policy == PolicyHalt {
				stats.HaltedAtLine = stats.Lines
				break
			}
			continue
		}
		if utf8.RuneCountInString(word) <= opts.MinLength {
			stats.ShortWords++
			continue
		}
		if b.put(word, rank) {
			stats.Duplicates++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("read dictionary: %w", err)
	}

	d := b.build()
	stats.Entries = d.Len()
	if stats.OrderViolations > 0 {
		logging.WarnWithContext(logger, "dictionary ranks are not descending",
			"dictionary_unsorted",
			logging.Int("violations", stats.OrderViolations),
			logging.String(logging.FieldErrorHint, "sort the resource by descending rank or use the filter policy"),
			logging.String(logging.FieldImpact, "halting at the first below-floor line may drop qualifying words"))
	}
	return d, stats, nil
}

// LoadFile opens path, decodes it with the named encoding, and loads it.
func LoadFile(path, encoding string, opts Options) (*Dictionary, Stats, error) {
	logger := logging.NewComponentLogger(opts.Logger, "dictionary")
	opts.Logger = logger

	file, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open dictionary: %w", err)
	}
	defer file.Close()

	reader, err := textutil.NewReader(file, encoding)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("dictionary %s: %w", path, err)
	}

	start := time.Now()
	d, stats, err := Load(reader, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("load dictionary %s: %w", path, err)
	}
	logger.Info("dictionary loaded",
		logging.String(logging.FieldSource, path),
		logging.Int("entries", stats.Entries),
		logging.Int("lines", stats.Lines),
		logging.Int("halted_at_line", stats.HaltedAtLine),
		logging.Duration("elapsed", time.Since(start)))
	return d, stats, nil
}

// ParseLine splits a "<word> <rank>" line. Errors wrap ErrMalformedLine.
func ParseLine(text string) (string, int, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("%w: want 2 fields, got %d", ErrMalformedLine, len(fields))
	}
	rank, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, fmt.Errorf("%w: rank %q is not an integer", ErrMalformedLine, fields[1])
	}
	if rank < 0 {
		return "", 0, fmt.Errorf("%w: negative rank %d", ErrMalformedLine, rank)
	}
	return fields[0], rank, nil
}
