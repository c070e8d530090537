package segment

import (
	"strconv"
	"strings"
)

// Segment is one dictionary word chosen by a decomposition.
type Segment struct {
	Word string `json:"word"`
	Rank int    `json:"rank"`
}

// Path is an ordered decomposition, in the order its segments were chosen.
type Path []Segment

// Words returns the segment words.
func (p Path) Words() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.Word
	}
	return out
}

// Join concatenates the segment words with sep.
func (p Path) Join(sep string) string {
	return strings.Join(p.Words(), sep)
}

// String renders the path as "[word:rank word:rank]".
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.Word)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s.Rank))
	}
	b.WriteByte(']')
	return b.String()
}

func (p Path) clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}
