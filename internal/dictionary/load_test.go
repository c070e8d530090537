package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func loadString(t *testing.T, src string, opts Options) (*Dictionary, Stats) {
	t.Helper()
	d, stats, err := Load(strings.NewReader(src), opts)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return d, stats
}

func TestLoadDropsSingleCharacterWords(t *testing.T) {
	d, stats := loadString(t, "haus 40\na 12\nbaum 11\n", DefaultOptions())

	if d.Contains("a") {
		t.Fatal("expected single-character word to be dropped")
	}
	if !d.Contains("haus") || !d.Contains("baum") {
		t.Fatalf("expected haus and baum, got %v", d.Entries())
	}
	if stats.ShortWords != 1 {
		t.Fatalf("ShortWords = %d, want 1", stats.ShortWords)
	}
}

func TestLoadHaltsAtFirstBelowFloorLine(t *testing.T) {
	d, stats := loadString(t, "zeta 50\neta 12\ntheta 9\niota 40\n", DefaultOptions())

	for _, w := range []string{"zeta", "eta"} {
		if !d.Contains(w) {
			t.Errorf("expected %q to be loaded", w)
		}
	}
	for _, w := range []string{"theta", "iota"} {
		if d.Contains(w) {
			t.Errorf("expected %q to be absent", w)
		}
	}
	if stats.HaltedAtLine != 3 {
		t.Fatalf("HaltedAtLine = %d, want 3", stats.HaltedAtLine)
	}
	if !stats.Halted() {
		t.Fatal("expected Halted to report true")
	}
	if stats.Lines != 3 {
		t.Fatalf("Lines = %d, want 3 (reading stops at the halt line)", stats.Lines)
	}
}

func TestLoadHaltIgnoresMalformedLinesAfterHalt(t *testing.T) {
	d, _ := loadString(t, "zeta 50\ntheta 9\nthis line is broken\n", DefaultOptions())
	if d.Len() != 1 {
		t.Fatalf("Len = %d, want 1", d.Len())
	}
}

func TestLoadFilterPolicyReadsEveryLine(t *testing.T) {
	opts := DefaultOptions()
	opts.Policy = PolicyFilter

	d, stats := loadString(t, "zeta 50\neta 12\ntheta 9\niota 40\n", opts)

	if !d.Contains("iota") {
		t.Fatal("expected iota to be loaded under filter policy")
	}
	if d.Contains("theta") {
		t.Fatal("expected theta to be filtered out")
	}
	if stats.BelowFloor != 1 || stats.Halted() {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestLoadLaterDuplicatesOverwrite(t *testing.T) {
	opts := DefaultOptions()
	opts.Policy = PolicyFilter

	d, stats := loadString(t, "haus 40\nhaus 20\n", opts)
	rank, ok := d.Lookup("haus")
	if !ok || rank != 20 {
		t.Fatalf("Lookup(haus) = %d, %v; want 20, true", rank, ok)
	}
	if stats.Duplicates != 1 {
		t.Fatalf("Duplicates = %d, want 1", stats.Duplicates)
	}
}

func TestLoadAcceptsTabsAndRunsOfSpaces(t *testing.T) {
	d, _ := loadString(t, "haus\t40\n  baum   30  \n", DefaultOptions())
	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}
}

func TestLoadCountsLengthInCharacters(t *testing.T) {
	// "ö" is two bytes but one character.
	d, _ := loadString(t, "ö 40\nöl 30\n", DefaultOptions())
	if d.Contains("ö") {
		t.Fatal("expected single multi-byte character to be dropped")
	}
	if !d.Contains("öl") {
		t.Fatal("expected two-character word to be kept")
	}
	if d.MaxWordLen() != utf8.RuneCountInString("öl") {
		t.Fatalf("MaxWordLen = %d, want 2", d.MaxWordLen())
	}
}

func TestLoadMalformedLines(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"single field", "haus 40\nbaum\n", 2},
		{"three fields", "haus 40 extra\n", 1},
		{"non integer rank", "haus 40\nbaum zehn\n", 2},
		{"negative rank", "haus -4\n", 1},
		{"blank line", "haus 40\n\nbaum 30\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(strings.NewReader(tt.src), DefaultOptions())
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrMalformedLine) {
				t.Fatalf("expected ErrMalformedLine, got %v", err)
			}
			var lineErr *LineError
			if !errors.As(err, &lineErr) {
				t.Fatalf("expected *LineError, got %T", err)
			}
			if lineErr.Line != tt.line {
				t.Fatalf("Line = %d, want %d", lineErr.Line, tt.line)
			}
		})
	}
}

func TestLoadOrderViolations(t *testing.T) {
	src := "haus 40\nbaum 30\nmaus 35\nhund 5\n"

	d, stats := loadString(t, src, DefaultOptions())
	if stats.OrderViolations != 1 {
		t.Fatalf("OrderViolations = %d, want 1", stats.OrderViolations)
	}
	if !d.Contains("maus") {
		t.Fatal("expected non-strict load to keep out-of-order entry")
	}

	opts := DefaultOptions()
	opts.StrictOrder = true
	_, _, err := Load(strings.NewReader(src), opts)
	if !errors.Is(err, ErrUnsorted) {
		t.Fatalf("expected ErrUnsorted, got %v", err)
	}

	opts = DefaultOptions()
	opts.Policy = PolicyFilter
	opts.StrictOrder = true
	if _, _, err := Load(strings.NewReader(src), opts); err != nil {
		t.Fatalf("filter policy should not check order, got %v", err)
	}
}

func TestLoadCustomFloorAndMinLength(t *testing.T) {
	opts := Options{Floor: 0, MinLength: 3, Policy: PolicyHalt}
	d, _ := loadString(t, "haus 4\nbaum 2\nei 1\nuhr 0\n", opts)

	want := []string{"haus", "baum"}
	var got []string
	for _, e := range d.Entries() {
		got = append(got, e.Word)
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("entries = %v, want %v", got, want)
	}
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	opts := DefaultOptions()
	opts.Policy = "sometimes"
	if _, _, err := Load(strings.NewReader("haus 40\n"), opts); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"), "utf-8", DefaultOptions())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadFileLatin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	// "größe 20" in ISO-8859-1
	raw := []byte{'g', 'r', 0xF6, 0xDF, 'e', ' ', '2', '0', '\n'}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	d, stats, err := LoadFile(path, "latin1", DefaultOptions())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if rank, ok := d.Lookup("größe"); !ok || rank != 20 {
		t.Fatalf("Lookup(größe) = %d, %v", rank, ok)
	}
	if stats.Entries != 1 {
		t.Fatalf("Entries = %d, want 1", stats.Entries)
	}
}

func TestEntriesSortedByRankThenWord(t *testing.T) {
	d := FromEntries([]Entry{{"bar", 7}, {"foo", 5}, {"abc", 7}, {"foobar", 3}})
	got := d.Entries()
	want := []Entry{{"abc", 7}, {"bar", 7}, {"foo", 5}, {"foobar", 3}}
	if len(got) != len(want) {
		t.Fatalf("Entries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Entries[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNilDictionary(t *testing.T) {
	var d *Dictionary
	if d.Len() != 0 || d.Contains("x") || d.MaxWordLen() != 0 || d.Entries() != nil {
		t.Fatal("expected nil dictionary to behave as empty")
	}
}

func TestRestrictAppliesFloorAndMinLength(t *testing.T) {
	d := FromEntries([]Entry{{"foobar", 30}, {"bar", 20}, {"foo", 12}, {"ab", 40}})

	got, dropped := d.Restrict(15, 2)
	if dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	if got.Len() != 2 || !got.Contains("foobar") || !got.Contains("bar") {
		t.Fatalf("Restrict kept %v", got.Entries())
	}
	if got.MaxWordLen() != 6 {
		t.Fatalf("MaxWordLen = %d, want 6", got.MaxWordLen())
	}
	if d.Len() != 4 {
		t.Fatalf("receiver modified: Len = %d", d.Len())
	}

	same, dropped := d.Restrict(DefaultFloor, DefaultMinLength)
	if dropped != 0 || same != d {
		t.Fatalf("Restrict(%d, %d) = %p dropped %d, want receiver", DefaultFloor, DefaultMinLength, same, dropped)
	}
}
