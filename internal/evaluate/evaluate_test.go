package evaluate_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"compsplit/internal/dictionary"
	"compsplit/internal/evaluate"
	"compsplit/internal/logging"
	"compsplit/internal/segment"
)

func TestCleanAnnotation(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"haus+tür", []string{"haus", "tür"}},
		{"arbeit{s}+amt", []string{"arbeit", "amt"}},
		{"(geb)urt+tag", []string{"geburt", "tag"}},
		{"kind,er+garten", []string{"kind", "garten"}},
		{"sch|U|tz+ling", []string{"schütz", "ling"}},
		{"mAnner+chor", []string{"männer", "chor"}},
		{"baum", []string{"baum"}},
	}
	for _, tt := range tests {
		if got := evaluate.CleanAnnotation(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("CleanAnnotation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseGoldRejectsMissingAnnotation(t *testing.T) {
	if _, err := evaluate.ParseGold(3, "haustür"); !errors.Is(err, evaluate.ErrMalformedGold) {
		t.Fatalf("expected ErrMalformedGold, got %v", err)
	}
}

func TestRun(t *testing.T) {
	dict := dictionary.FromEntries([]dictionary.Entry{
		{Word: "haus", Rank: 40},
		{Word: "tür", Rank: 25},
		{Word: "arbeit", Rank: 30},
		{Word: "samt", Rank: 12},
		{Word: "amt", Rank: 20},
	})
	engine := segment.New(dict, segment.WithMaxDepth(12))

	gold := strings.Join([]string{
		"haustür haus+tür",
		"",
		"arbeitsamt arbeit{s}+amt",
		"xylophon xylo+phon",
		"haustürhaustür haus+tür+haus+tür",
	}, "\n")

	result, err := evaluate.Run(context.Background(), strings.NewReader(gold), engine, evaluate.Options{Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Instances != 4 {
		t.Fatalf("expected 4 instances, got %d", result.Instances)
	}
	if result.Covered != 1 {
		t.Fatalf("expected 1 covered, got %d", result.Covered)
	}
	if result.Unsplittable != 1 || result.Rejected != 1 {
		t.Fatalf("unexpected unsplittable/rejected: %+v", result)
	}
	if len(result.Misses) != 3 {
		t.Fatalf("expected 3 misses, got %+v", result.Misses)
	}
	// arbeitsamt splits as arbeit+samt, which is not the gold arbeit+amt.
	first := result.Misses[0]
	if first.Compound != "arbeitsamt" || first.Gold != "arbeit+amt" || first.Found != 1 {
		t.Fatalf("unexpected first miss: %+v", first)
	}
	if !result.Misses[2].Rejected {
		t.Fatalf("expected long compound to be rejected: %+v", result.Misses[2])
	}
	if got := result.Coverage(); got != 25 {
		t.Fatalf("expected 25%% coverage, got %v", got)
	}
}

func TestRunMalformedLineStops(t *testing.T) {
	engine := segment.New(dictionary.FromEntries(nil))
	_, err := evaluate.Run(context.Background(), strings.NewReader("haustür\n"), engine, evaluate.Options{})
	if !errors.Is(err, evaluate.ErrMalformedGold) {
		t.Fatalf("expected ErrMalformedGold, got %v", err)
	}
}

func TestCoverageWithoutInstances(t *testing.T) {
	if (evaluate.Result{}).Coverage() != 0 {
		t.Fatal("expected zero coverage for empty result")
	}
}
