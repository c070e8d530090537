package segment

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// DefaultMaxDepth bounds the input length, in characters, the engine accepts.
const DefaultMaxDepth = 64

// ErrInputTooLong is returned for inputs longer than the engine's maximum depth.
var ErrInputTooLong = errors.New("input exceeds maximum search depth")

// Dictionary is the read-only lookup the engine searches.
type Dictionary interface {
	Lookup(word string) (int, bool)
	// MaxWordLen is the length, in runes, of the longest word.
	MaxWordLen() int
}

// EmitFunc receives each complete decomposition. The Path is owned by the
// receiver. Returning an error stops the search.
type EmitFunc func(Path) error

// Engine searches a fixed dictionary. It holds no per-call state and is safe
// for concurrent use.
type Engine struct {
	dict     Dictionary
	maxDepth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth sets the longest input, in characters, the engine searches.
// Non-positive values keep the default.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// New constructs an engine over dict.
func New(dict Dictionary, opts ...Option) *Engine {
	e := &Engine{dict: dict, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxDepth returns the configured input length limit.
func (e *Engine) MaxDepth() int { return e.maxDepth }

// Decompose emits every decomposition of input, depth first, shortest first
// prefix first. An empty input emits nothing. A non-nil error from emit
// aborts the search and is returned unchanged.
func (e *Engine) Decompose(input string, emit EmitFunc) error {
	if input == "" {
		return nil
	}
	if n := utf8.RuneCountInString(input); n > e.maxDepth {
		return fmt.Errorf("%w: %d characters, limit %d", ErrInputTooLong, n, e.maxDepth)
	}
	s := &search{
		dict:       e.dict,
		maxWordLen: e.dict.MaxWordLen(),
		emit:       emit,
		path:       make(Path, 0, 8),
	}
	return s.walk(input)
}

// All collects every decomposition of input.
func (e *Engine) All(input string) ([]Path, error) {
	var out []Path
	err := e.Decompose(input, func(p Path) error {
		out = append(out, p)
		return nil
	})
	return out, err
}

// Count returns the number of decompositions of input.
func (e *Engine) Count(input string) (int, error) {
	n := 0
	err := e.Decompose(input, func(Path) error {
		n++
		return nil
	})
	return n, err
}

// search is the state of a single Decompose call. path is only touched
// through push/pop in descend.
type search struct {
	dict       Dictionary
	maxWordLen int
	emit       EmitFunc
	path       Path
}

func (s *search) walk(remaining string) error {
	if remaining == "" {
		return s.emit(s.path.clone())
	}
	end := 0
	for count := 1; end < len(remaining) && count <= s.maxWordLen; count++ {
		_, size := utf8.DecodeRuneInString(remaining[end:])
		end += size
		prefix := remaining[:end]
		rank, ok := s.dict.Lookup(prefix)
		if !ok {
			continue
		}
		if err := s.descend(Segment{Word: prefix, Rank: rank}, remaining[end:]); err != nil {
			return err
		}
	}
	return nil
}

func (s *search) descend(seg Segment, rest string) error {
	s.path = append(s.path, seg)
	defer func() { s.path = s.path[:len(s.path)-1] }()
	return s.walk(rest)
}
