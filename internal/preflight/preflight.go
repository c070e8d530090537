package preflight

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"compsplit/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Wordlist (when configured)
	if cfg.Dictionary.Path != "" {
		results = append(results, CheckDictionary(ctx, "Dictionary", cfg.Dictionary.Path))
	}

	// Compiled index (always checked; a missing index is fine when a wordlist is set)
	if cfg.Dictionary.IndexPath != "" {
		if _, err := os.Stat(cfg.Dictionary.IndexPath); err == nil || cfg.Dictionary.Path == "" {
			results = append(results, CheckDictionary(ctx, "Dictionary index", cfg.Dictionary.IndexPath))
		}

		dir := filepath.Dir(cfg.Dictionary.IndexPath)
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			results = append(results, Result{Name: "Index directory", Passed: true, Detail: dir + " (will be created)"})
		} else {
			results = append(results, CheckDirectoryAccess("Index directory", dir))
		}
	}

	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
