package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"compsplit/internal/config"
	"compsplit/internal/dictindex"
	"compsplit/internal/dictionary"
	"compsplit/internal/dictprep"
	"compsplit/internal/logging"
	"compsplit/internal/report"
	"compsplit/internal/textutil"
)

func newDictCommand(ctx *commandContext) *cobra.Command {
	dictCmd := &cobra.Command{
		Use:   "dict",
		Short: "Compile, inspect, and derive ranked wordlists",
	}

	dictCmd.AddCommand(newDictCompileCommand(ctx))
	dictCmd.AddCommand(newDictStatsCommand(ctx))
	dictCmd.AddCommand(newDictIntersectCommand(ctx))
	dictCmd.AddCommand(newDictSubtractCommand(ctx))
	dictCmd.AddCommand(newDictReverseCommand(ctx))

	return dictCmd
}

func newDictCompileCommand(ctx *commandContext) *cobra.Command {
	var dictFlags dictionaryFlags

	cmd := &cobra.Command{
		Use:   "compile <wordlist> [index]",
		Short: "Compile a ranked wordlist into a SQLite index",
		Long: "Loads the wordlist with the configured floor, minimum length, and policy, and\n" +
			"writes the retained entries to an index (default: dictionary.index_path).",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			dcfg, err := dictFlags.resolve(cmd, cfg)
			if err != nil {
				return err
			}

			source, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve wordlist path: %w", err)
			}
			target := dcfg.IndexPath
			if len(args) == 2 {
				if target, err = config.ExpandPath(args[1]); err != nil {
					return fmt.Errorf("resolve index path: %w", err)
				}
			} else if err := cfg.EnsureIndexDirectory(); err != nil {
				return err
			}
			if target == "" {
				return errors.New("no index path; pass one or set dictionary.index_path")
			}

			if isIndex, err := dictindex.IsIndex(source); err != nil {
				return fmt.Errorf("open wordlist: %w", err)
			} else if isIndex {
				return fmt.Errorf("%s is already a compiled index", source)
			}

			dict, stats, err := dictionary.LoadFile(source, dcfg.Encoding, loadOptions(dcfg, logger))
			if err != nil {
				return err
			}
			meta, err := dictindex.Compile(cmd.Context(), dict, target, dictindex.Meta{
				Source:    source,
				Floor:     dcfg.Floor,
				MinLength: dcfg.MinLength,
				Policy:    dictionary.Policy(dcfg.Policy),
			})
			if err != nil {
				return err
			}

			logging.NewComponentLogger(logger, "dictindex").Info("dictionary index compiled",
				logging.String(logging.FieldSource, source),
				logging.String("index", target),
				logging.String("build_id", meta.BuildID),
				logging.Int("entries", meta.Entries),
				logging.Int("lines", stats.Lines))
			fmt.Fprintf(cmd.OutOrStdout(), "Compiled %d entries from %s into %s\n", meta.Entries, source, target)
			return nil
		},
	}

	dictFlags.register(cmd, false)
	return cmd
}

func newDictStatsCommand(ctx *commandContext) *cobra.Command {
	var dictFlags dictionaryFlags
	var top int

	cmd := &cobra.Command{
		Use:   "stats [wordlist-or-index]",
		Short: "Summarize a wordlist or compiled index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			dcfg, err := dictFlags.resolve(cmd, cfg)
			if err != nil {
				return err
			}

			source := cfg.DictionarySource()
			if len(args) == 1 {
				if source, err = config.ExpandPath(args[0]); err != nil {
					return fmt.Errorf("resolve path: %w", err)
				}
			}
			if source == "" {
				return errors.New("no dictionary configured; pass a path")
			}

			isIndex, err := dictindex.IsIndex(source)
			if err != nil {
				return fmt.Errorf("open dictionary: %w", err)
			}

			var rows [][]string
			var dict *dictionary.Dictionary
			if isIndex {
				var meta dictindex.Meta
				dict, meta, err = dictindex.Open(cmd.Context(), source)
				if err != nil {
					return err
				}
				rows = indexStatsRows(source, meta)
			} else {
				var stats dictionary.Stats
				dict, stats, err = dictionary.LoadFile(source, dcfg.Encoding, loadOptions(dcfg, logger))
				if err != nil {
					return err
				}
				rows = wordlistStatsRows(source, dcfg, stats)
			}
			rows = append(rows, []string{"Longest word", strconv.Itoa(dict.MaxWordLen())})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.RenderTable([]string{"Field", "Value"}, rows, nil))

			if top > 0 {
				entries := dict.Entries()
				if len(entries) > top {
					entries = entries[:top]
				}
				entryRows := make([][]string, 0, len(entries))
				for i, e := range entries {
					entryRows = append(entryRows, []string{strconv.Itoa(i + 1), e.Word, strconv.Itoa(e.Rank)})
				}
				fmt.Fprintln(out, report.RenderTable(
					[]string{"#", "Word", "Rank"},
					entryRows,
					[]report.Alignment{report.AlignRight, report.AlignLeft, report.AlignRight},
				))
			}
			return nil
		},
	}

	dictFlags.register(cmd, false)
	cmd.Flags().IntVar(&top, "top", 0, "Also list the N highest-ranked entries")
	return cmd
}

func indexStatsRows(source string, meta dictindex.Meta) [][]string {
	return [][]string{
		{"Source", source},
		{"Kind", "compiled index"},
		{"Built from", meta.Source},
		{"Build ID", meta.BuildID},
		{"Compiled at", meta.CompiledAt.Local().Format(time.DateTime)},
		{"Policy", string(meta.Policy)},
		{"Floor", strconv.Itoa(meta.Floor)},
		{"Min length", strconv.Itoa(meta.MinLength)},
		{"Entries", strconv.Itoa(meta.Entries)},
	}
}

func wordlistStatsRows(source string, dcfg config.Dictionary, stats dictionary.Stats) [][]string {
	halted := "no"
	if stats.Halted() {
		halted = fmt.Sprintf("line %d", stats.HaltedAtLine)
	}
	return [][]string{
		{"Source", source},
		{"Kind", "wordlist"},
		{"Policy", dcfg.Policy},
		{"Floor", strconv.Itoa(dcfg.Floor)},
		{"Min length", strconv.Itoa(dcfg.MinLength)},
		{"Lines read", strconv.Itoa(stats.Lines)},
		{"Entries", strconv.Itoa(stats.Entries)},
		{"Below floor", strconv.Itoa(stats.BelowFloor)},
		{"Too short", strconv.Itoa(stats.ShortWords)},
		{"Duplicates", strconv.Itoa(stats.Duplicates)},
		{"Order violations", strconv.Itoa(stats.OrderViolations)},
		{"Halted", halted},
	}
}

func newDictIntersectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "intersect <ranked> <corpus>",
		Short: "Keep ranked entries whose word starts a corpus line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRankedFilter(ctx, cmd, "intersect", args, dictprep.Intersect)
		},
	}
}

func newDictSubtractCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "subtract <ranked> <exclude>",
		Short: "Drop ranked entries whose word starts a line of the exclude list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRankedFilter(ctx, cmd, "subtract", args, dictprep.Subtract)
		},
	}
}

type rankedFilter func(ranked, other io.Reader, w io.Writer) (dictprep.Counts, error)

func runRankedFilter(ctx *commandContext, cmd *cobra.Command, name string, args []string, filter rankedFilter) error {
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}
	ranked, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open ranked list: %w", err)
	}
	defer ranked.Close()
	other, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("open %s list: %w", name, err)
	}
	defer other.Close()

	counts, err := filter(ranked, other, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("%s %s: %w", name, args[0], err)
	}
	logging.NewComponentLogger(logger, "dictprep").Info("ranked list filtered",
		logging.String("operation", name),
		logging.String(logging.FieldSource, args[0]),
		logging.Int("read", counts.Read),
		logging.Int("kept", counts.Kept))
	return nil
}

func newDictReverseCommand(ctx *commandContext) *cobra.Command {
	var noLowercase bool
	var encoding string

	cmd := &cobra.Command{
		Use:   "reverse <file>",
		Short: "Reverse the first field of each tab-separated line",
		Long: "Writes each line with its first field reversed character by character and,\n" +
			"unless --no-lowercase is given, every field lowercased. Useful for building\n" +
			"suffix-ordered wordlists.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("encoding") {
				encoding = cfg.Dictionary.Encoding
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer file.Close()
			reader, err := textutil.NewReader(file, strings.ToLower(strings.TrimSpace(encoding)))
			if err != nil {
				return err
			}

			written, err := dictprep.Reverse(reader, cmd.OutOrStdout(), !noLowercase)
			if err != nil {
				return fmt.Errorf("reverse %s: %w", args[0], err)
			}
			logging.NewComponentLogger(logger, "dictprep").Info("lines reversed",
				logging.String(logging.FieldSource, args[0]),
				logging.Int("lines", written))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noLowercase, "no-lowercase", false, "Keep the original letter case")
	cmd.Flags().StringVar(&encoding, "encoding", config.EncodingUTF8, "Input encoding: utf-8 or latin1")
	return cmd
}
