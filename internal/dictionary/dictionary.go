package dictionary

import (
	"cmp"
	"slices"
	"unicode/utf8"
)

// Entry is a single ranked word.
type Entry struct {
	Word string `json:"word"`
	Rank int    `json:"rank"`
}

// Dictionary is an immutable word to rank mapping.
type Dictionary struct {
	words      map[string]int
	maxWordLen int
}

// FromEntries builds a Dictionary directly from entries without applying any
// loading rules. Later entries overwrite earlier ones for the same word.
func FromEntries(entries []Entry) *Dictionary {
	b := newBuilder(len(entries))
	for _, e := range entries {
		b.put(e.Word, e.Rank)
	}
	return b.build()
}

// Lookup returns the rank of word and whether it is present.
func (d *Dictionary) Lookup(word string) (int, bool) {
	if d == nil {
		return 0, false
	}
	rank, ok := d.words[word]
	return rank, ok
}

// Contains reports whether word is present.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.Lookup(word)
	return ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.words)
}

// MaxWordLen returns the length, in runes, of the longest word.
func (d *Dictionary) MaxWordLen() int {
	if d == nil {
		return 0
	}
	return d.maxWordLen
}

// Entries returns a copy of all entries ordered by descending rank, then word.
func (d *Dictionary) Entries() []Entry {
	if d == nil {
		return nil
	}
	out := make([]Entry, 0, len(d.words))
	for w, r := range d.words {
		out = append(out, Entry{Word: w, Rank: r})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Rank, a.Rank); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	return out
}

// Restrict returns the entries whose rank is at least floor and whose word is
// longer than minLength characters, with the number of entries dropped. The
// receiver is returned as is when nothing is dropped. Entries are already
// ordered by rank, so this matches loading under either policy.
func (d *Dictionary) Restrict(floor, minLength int) (*Dictionary, int) {
	if d == nil {
		return nil, 0
	}
	b := newBuilder(len(d.words))
	for w, r := range d.words {
		if r < floor || utf8.RuneCountInString(w) <= minLength {
			continue
		}
		b.put(w, r)
	}
	dropped := len(d.words) - len(b.words)
	if dropped == 0 {
		return d, 0
	}
	return b.build(), dropped
}

type builder struct {
	words      map[string]int
	maxWordLen int
}

func newBuilder(capacity int) *builder {
	return &builder{words: make(map[string]int, capacity)}
}

// put stores word and reports whether it replaced an existing entry.
func (b *builder) put(word string, rank int) bool {
	_, existed := b.words[word]
	b.words[word] = rank
	if n := utf8.RuneCountInString(word); n > b.maxWordLen {
		b.maxWordLen = n
	}
	return existed
}

func (b *builder) build() *Dictionary {
	d := &Dictionary{words: b.words, maxWordLen: b.maxWordLen}
	b.words = nil
	return d
}
