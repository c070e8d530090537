package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"compsplit/internal/segment"
)

// Formats understood by New.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
)

// Reporter receives the events of one run. Begin and End bracket each input
// line; Decomposition is called zero or more times in between.
type Reporter interface {
	Begin(line string) error
	Decomposition(p segment.Path) error
	End() error
}

// New returns a Reporter writing format to w. colorize highlights the echoed
// input line in the text format.
func New(format string, w io.Writer, colorize bool) (Reporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return &textReporter{w: w, colorize: colorize}, nil
	case FormatJSON:
		return &jsonReporter{enc: json.NewEncoder(w)}, nil
	case FormatTable:
		return &tableReporter{w: w}, nil
	default:
		return nil, fmt.Errorf("report format: unsupported value %q", format)
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type textReporter struct {
	w        io.Writer
	colorize bool
}

func (r *textReporter) Begin(line string) error {
	if r.colorize {
		line = ansiBold + line + ansiReset
	}
	_, err := fmt.Fprintln(r.w, line)
	return err
}

func (r *textReporter) Decomposition(p segment.Path) error {
	_, err := fmt.Fprintln(r.w, "  "+p.String())
	return err
}

func (r *textReporter) End() error { return nil }

type inputRecord struct {
	Input string `json:"input"`
}

type decompositionRecord struct {
	Input    string       `json:"input"`
	Index    int          `json:"index"`
	Segments segment.Path `json:"segments"`
}

type jsonReporter struct {
	enc   *json.Encoder
	line  string
	index int
}

func (r *jsonReporter) Begin(line string) error {
	r.line = line
	r.index = 0
	return r.enc.Encode(inputRecord{Input: line})
}

func (r *jsonReporter) Decomposition(p segment.Path) error {
	r.index++
	return r.enc.Encode(decompositionRecord{Input: r.line, Index: r.index, Segments: p})
}

func (r *jsonReporter) End() error { return nil }

type tableReporter struct {
	w    io.Writer
	line string
	rows [][]string
}

func (r *tableReporter) Begin(line string) error {
	r.line = line
	r.rows = r.rows[:0]
	return nil
}

func (r *tableReporter) Decomposition(p segment.Path) error {
	ranks := make([]string, len(p))
	for i, s := range p {
		ranks[i] = strconv.Itoa(s.Rank)
	}
	r.rows = append(r.rows, []string{
		strconv.Itoa(len(r.rows) + 1),
		p.Join(" + "),
		strings.Join(ranks, " "),
	})
	return nil
}

func (r *tableReporter) End() error {
	if _, err := fmt.Fprintln(r.w, r.line); err != nil {
		return err
	}
	if len(r.rows) == 0 {
		return nil
	}
	out := RenderTable(
		[]string{"#", "Segments", "Ranks"},
		r.rows,
		[]Alignment{AlignRight, AlignLeft, AlignRight},
	)
	_, err := fmt.Fprintln(r.w, out)
	return err
}
