package main

import (
	"encoding/json"
	"strings"
	"testing"

	"compsplit/internal/testsupport"
)

func TestSplitArguments(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"split", "foobar", "foobaz"}, env.configPath, "")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	want := "foobar\n  [foo:12 bar:20]\n  [foobar:30]\nfoobaz\n"
	if out != want {
		t.Fatalf("output mismatch:\n got: %q\nwant: %q", out, want)
	}
}

func TestSplitStdinEmptyLines(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"split"}, env.configPath, "foo\n\nbar\n")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if out != "foo\n  [foo:12]\nbar\n  [bar:20]\n" {
		t.Fatalf("unexpected output: %q", out)
	}

	out, _, err = runCLI(t, []string{"split", "--keep-empty"}, env.configPath, "foo\n\nbar\n")
	if err != nil {
		t.Fatalf("split --keep-empty: %v", err)
	}
	if out != "foo\n  [foo:12]\n\nbar\n  [bar:20]\n" {
		t.Fatalf("unexpected output with --keep-empty: %q", out)
	}
}

func TestSplitFloorOverride(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"split", "--floor", "5", "foobaz"}, env.configPath, "")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if out != "foobaz\n  [foo:12 baz:9]\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSplitUsesConfiguredFloor(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFloor(15))

	out, _, err := runCLI(t, []string{"split", "foobar"}, env.configPath, "")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if out != "foobar\n  [foobar:30]\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSplitJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"split", "--format", "json", "foobar"}, env.configPath, "")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 records, got %q", out)
	}
	var rec struct {
		Index    int `json:"index"`
		Segments []struct {
			Word string `json:"word"`
			Rank int    `json:"rank"`
		} `json:"segments"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Index != 2 || len(rec.Segments) != 1 || rec.Segments[0].Word != "foobar" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestSplitRejectsLongInputAndContinues(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"split", "--max-depth", "6", "foobarfoo", "foo"}, env.configPath, "")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if out != "foobarfoo\nfoo\n  [foo:12]\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSplitWithoutDictionary(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"split", "--dict", env.baseDir + "/missing.txt", "foo"}, env.configPath, "")
	if err == nil {
		t.Fatal("expected error for missing dictionary")
	}
	requireContains(t, err.Error(), "open dictionary")
}

func TestSplitUnknownFormat(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"split", "--format", "xml", "foo"}, env.configPath, ""); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
