package main

import (
	"os"
	"path/filepath"
	"testing"

	"compsplit/internal/testsupport"
)

func TestDictCompileThenSplitFromIndex(t *testing.T) {
	env := setupCLITestEnv(t)
	index := filepath.Join(env.baseDir, "out", "dict.db")

	out, _, err := runCLI(t, []string{"dict", "compile", env.cfg.Dictionary.Path, index}, env.configPath, "")
	if err != nil {
		t.Fatalf("dict compile: %v", err)
	}
	requireContains(t, out, "Compiled 3 entries")

	out, _, err = runCLI(t, []string{"split", "--dict", index, "foobar"}, env.configPath, "")
	if err != nil {
		t.Fatalf("split from index: %v", err)
	}
	if out != "foobar\n  [foo:12 bar:20]\n  [foobar:30]\n" {
		t.Fatalf("unexpected output: %q", out)
	}

	out, _, err = runCLI(t, []string{"dict", "stats", "--top", "2", index}, env.configPath, "")
	if err != nil {
		t.Fatalf("dict stats: %v", err)
	}
	requireContains(t, out, "compiled index")
	requireContains(t, out, "foobar")

	if _, _, err := runCLI(t, []string{"dict", "compile", index, filepath.Join(env.baseDir, "again.db")}, env.configPath, ""); err == nil {
		t.Fatal("expected error when compiling an index")
	}
}

func TestSplitFromIndexAppliesConfiguredFloor(t *testing.T) {
	env := setupCLITestEnv(t)
	index := filepath.Join(env.baseDir, "out", "dict.db")

	if _, _, err := runCLI(t, []string{"dict", "compile", env.cfg.Dictionary.Path, index}, env.configPath, ""); err != nil {
		t.Fatalf("dict compile: %v", err)
	}

	fromWordlist, _, err := runCLI(t, []string{"split", "--floor", "15", "foobar"}, env.configPath, "")
	if err != nil {
		t.Fatalf("split from wordlist: %v", err)
	}
	fromIndex, _, err := runCLI(t, []string{"split", "--dict", index, "--floor", "15", "foobar"}, env.configPath, "")
	if err != nil {
		t.Fatalf("split from index: %v", err)
	}
	if fromIndex != "foobar\n  [foobar:30]\n" {
		t.Fatalf("unexpected output: %q", fromIndex)
	}
	if fromIndex != fromWordlist {
		t.Fatalf("index output %q differs from wordlist output %q", fromIndex, fromWordlist)
	}

	out, _, err := runCLI(t, []string{"split", "--dict", index, "--min-length", "3", "foobar"}, env.configPath, "")
	if err != nil {
		t.Fatalf("split with min length: %v", err)
	}
	if out != "foobar\n  [foobar:30]\n" {
		t.Fatalf("unexpected output with min length: %q", out)
	}
}

func TestDictCompileDefaultsToConfiguredIndex(t *testing.T) {
	env := setupCLITestEnv(t)
	indexDir := filepath.Dir(env.cfg.Dictionary.IndexPath)
	if _, err := os.Stat(indexDir); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent before compile, stat err = %v", indexDir, err)
	}

	if _, _, err := runCLI(t, []string{"dict", "compile", env.cfg.Dictionary.Path}, env.configPath, ""); err != nil {
		t.Fatalf("dict compile: %v", err)
	}
	if _, err := os.Stat(env.cfg.Dictionary.IndexPath); err != nil {
		t.Fatalf("expected index at %s: %v", env.cfg.Dictionary.IndexPath, err)
	}
}

func TestDictStatsWordlist(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"dict", "stats"}, env.configPath, "")
	if err != nil {
		t.Fatalf("dict stats: %v", err)
	}
	requireContains(t, out, "wordlist")
	requireContains(t, out, "line 4")
}

func TestDictIntersectAndSubtract(t *testing.T) {
	env := setupCLITestEnv(t)
	corpus := testsupport.WriteWordlist(t, filepath.Join(env.baseDir, "corpus.txt"), "foobar foo+bar", "", "baz baz")

	out, _, err := runCLI(t, []string{"dict", "intersect", env.cfg.Dictionary.Path, corpus}, env.configPath, "")
	if err != nil {
		t.Fatalf("dict intersect: %v", err)
	}
	if out != "foobar\t30\nbaz\t9\n" {
		t.Fatalf("unexpected intersect output: %q", out)
	}

	out, _, err = runCLI(t, []string{"dict", "subtract", env.cfg.Dictionary.Path, corpus}, env.configPath, "")
	if err != nil {
		t.Fatalf("dict subtract: %v", err)
	}
	if out != "bar\t20\nfoo\t12\n" {
		t.Fatalf("unexpected subtract output: %q", out)
	}
}

func TestDictReverse(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "latin1.txt")
	testsupport.WriteText(t, input, "T\xfcr\tNN\t25\n")

	out, _, err := runCLI(t, []string{"dict", "reverse", "--encoding", "latin1", input}, env.configPath, "")
	if err != nil {
		t.Fatalf("dict reverse: %v", err)
	}
	if out != "rüt\tnn\t25\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}
