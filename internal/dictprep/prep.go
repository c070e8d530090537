package dictprep

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"compsplit/internal/dictionary"
	"compsplit/internal/textutil"
)

const maxLineBytes = 1 << 20

// Counts reports how many ranked lines a filter read and kept.
type Counts struct {
	Read int
	Kept int
}

// Intersect copies the ranked entries whose word appears as the first field
// of some corpus line.
func Intersect(ranked, corpus io.Reader, w io.Writer) (Counts, error) {
	words, err := firstFields(corpus)
	if err != nil {
		return Counts{}, fmt.Errorf("read corpus: %w", err)
	}
	return filterRanked(ranked, w, func(word string) bool {
		_, ok := words[word]
		return ok
	})
}

// Subtract copies the ranked entries whose word is absent from the first
// fields of exclude.
func Subtract(ranked, exclude io.Reader, w io.Writer) (Counts, error) {
	words, err := firstFields(exclude)
	if err != nil {
		return Counts{}, fmt.Errorf("read exclude list: %w", err)
	}
	return filterRanked(ranked, w, func(word string) bool {
		_, ok := words[word]
		return !ok
	})
}

// Reverse rewrites each tab-separated line with its first field reversed by
// character. With lowercase the word and tag fields (the first two) are
// lowercased and later fields are left as is. Blank lines are dropped. It returns the number of lines written.
func Reverse(r io.Reader, w io.Writer, lowercase bool) (int, error) {
	scanner := newScanner(r)
	out := bufio.NewWriter(w)
	written := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if lowercase {
			for i := 0; i < len(fields) && i < 2; i++ {
				fields[i] = textutil.Lower(fields[i])
			}
		}
		fields[0] = textutil.Reverse(fields[0])
		if _, err := out.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return written, err
		}
		written++
	}
	if err := scanner.Err(); err != nil {
		return written, fmt.Errorf("read input: %w", err)
	}
	return written, out.Flush()
}

func filterRanked(ranked io.Reader, w io.Writer, keep func(word string) bool) (Counts, error) {
	scanner := newScanner(ranked)
	out := bufio.NewWriter(w)
	var counts Counts
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		word, rank, err := dictionary.ParseLine(text)
		if err != nil {
			return counts, &dictionary.LineError{Line: lineNo, Text: text, Err: err}
		}
		counts.Read++
		if !keep(word) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s\t%d\n", word, rank); err != nil {
			return counts, err
		}
		counts.Kept++
	}
	if err := scanner.Err(); err != nil {
		return counts, fmt.Errorf("read ranked list: %w", err)
	}
	return counts, out.Flush()
}

func firstFields(r io.Reader) (map[string]struct{}, error) {
	scanner := newScanner(r)
	words := make(map[string]struct{})
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		words[fields[0]] = struct{}{}
	}
	return words, scanner.Err()
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), maxLineBytes)
	return scanner
}
