package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"compsplit/internal/config"
	"compsplit/internal/dictindex"
	"compsplit/internal/dictionary"
	"compsplit/internal/logging"
)

// dictionaryFlags overrides the [dictionary] config section per invocation.
type dictionaryFlags struct {
	path        string
	floor       int
	minLength   int
	policy      string
	strictOrder bool
	encoding    string
}

func (f *dictionaryFlags) register(cmd *cobra.Command, withPath bool) {
	flags := cmd.Flags()
	if withPath {
		flags.StringVarP(&f.path, "dict", "d", "", "Ranked wordlist or compiled index (default: dictionary.path, then dictionary.index_path)")
	}
	flags.IntVar(&f.floor, "floor", dictionary.DefaultFloor, "Minimum rank an entry must reach")
	flags.IntVar(&f.minLength, "min-length", dictionary.DefaultMinLength, "Words must be longer than this many characters")
	flags.StringVar(&f.policy, "policy", config.PolicyHalt, "Below-floor handling: halt or filter")
	flags.BoolVar(&f.strictOrder, "strict-order", false, "Fail when ranks increase before the halt point")
	flags.StringVar(&f.encoding, "encoding", config.EncodingUTF8, "Wordlist encoding: utf-8 or latin1")
}

// resolve merges explicitly set flags over cfg and validates the result.
func (f *dictionaryFlags) resolve(cmd *cobra.Command, cfg *config.Config) (config.Dictionary, error) {
	merged := *cfg
	flags := cmd.Flags()
	if flags.Changed("dict") {
		expanded, err := config.ExpandPath(strings.TrimSpace(f.path))
		if err != nil {
			return config.Dictionary{}, fmt.Errorf("resolve dictionary path: %w", err)
		}
		merged.Dictionary.Path = expanded
	}
	if flags.Changed("floor") {
		merged.Dictionary.Floor = f.floor
	}
	if flags.Changed("min-length") {
		merged.Dictionary.MinLength = f.minLength
	}
	if flags.Changed("policy") {
		merged.Dictionary.Policy = strings.ToLower(strings.TrimSpace(f.policy))
	}
	if flags.Changed("strict-order") {
		merged.Dictionary.StrictOrder = f.strictOrder
	}
	if flags.Changed("encoding") {
		merged.Dictionary.Encoding = strings.ToLower(strings.TrimSpace(f.encoding))
	}
	if err := merged.Validate(); err != nil {
		return config.Dictionary{}, err
	}
	return merged.Dictionary, nil
}

func loadOptions(dcfg config.Dictionary, logger *slog.Logger) dictionary.Options {
	return dictionary.Options{
		Floor:       dcfg.Floor,
		MinLength:   dcfg.MinLength,
		Policy:      dictionary.Policy(dcfg.Policy),
		StrictOrder: dcfg.StrictOrder,
		Logger:      logger,
	}
}

// loadDictionary loads the wordlist when one is configured, otherwise the
// compiled index. Either source may be an index; the file header decides.
func loadDictionary(ctx context.Context, dcfg config.Dictionary, logger *slog.Logger) (*dictionary.Dictionary, error) {
	source := dcfg.Path
	if source == "" {
		source = dcfg.IndexPath
	}
	if source == "" {
		return nil, errors.New("no dictionary configured; pass --dict, set dictionary.path, or export COMPSPLIT_DICTIONARY")
	}

	isIndex, err := dictindex.IsIndex(source)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	if !isIndex {
		dict, _, err := dictionary.LoadFile(source, dcfg.Encoding, loadOptions(dcfg, logger))
		return dict, err
	}

	dict, meta, err := dictindex.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("open dictionary index %s: %w", source, err)
	}
	indexLogger := logging.NewComponentLogger(logger, "dictindex")
	if dcfg.Floor < meta.Floor || dcfg.MinLength < meta.MinLength {
		logging.WarnWithContext(indexLogger, "dictionary index built with stricter rules", "index_rules_stricter",
			logging.String(logging.FieldSource, source),
			logging.Int("index_floor", meta.Floor),
			logging.Int("index_min_length", meta.MinLength),
			logging.String(logging.FieldImpact, "entries below the index floor or length are unavailable"),
			logging.String(logging.FieldErrorHint, "recompile the index with dict compile using the requested floor"))
	}
	dict, dropped := dict.Restrict(dcfg.Floor, dcfg.MinLength)
	indexLogger.Info("dictionary index opened",
		logging.String(logging.FieldSource, source),
		logging.Int("entries", dict.Len()),
		logging.Int("dropped", dropped),
		logging.Int("floor", meta.Floor),
		logging.String("build_id", meta.BuildID))
	return dict, nil
}
