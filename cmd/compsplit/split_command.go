package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"compsplit/internal/logging"
	"compsplit/internal/report"
	"compsplit/internal/segment"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var dictFlags dictionaryFlags
	var format string
	var maxDepth int
	var keepEmpty bool

	cmd := &cobra.Command{
		Use:   "split [word...]",
		Short: "Print every decomposition of each word",
		Long: "Decomposes each word given as an argument, or each line of stdin when no\n" +
			"arguments are given, into consecutive dictionary words. Every input line is\n" +
			"echoed, followed by its decompositions in discovery order.",
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

			if !cmd.Flags().Changed("format") {
				format = cfg.Split.Format
			}
			if !cmd.Flags().Changed("max-depth") {
				maxDepth = cfg.Split.MaxDepth
			}
			skipEmpty := cfg.Split.SkipEmpty && !keepEmpty

			dict, err := loadDictionary(cmd.Context(), dcfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rep, err := report.New(format, out, report.IsTerminal(out))
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) > 0 {
				in = strings.NewReader(strings.Join(args, "\n") + "\n")
			}

			engine := segment.New(dict, segment.WithMaxDepth(maxDepth))
			summary, err := report.Run(cmd.Context(), in, engine, rep, report.Options{
				SkipEmpty: skipEmpty,
				Logger:    logger,
			})
			if err != nil {
				return err
			}
			logging.NewComponentLogger(logger, "split").Info("split complete",
				logging.Int("lines", summary.Lines),
				logging.Int("decomposed", summary.Decomposed),
				logging.Int("decompositions", summary.Decompositions),
				logging.Int("rejected", summary.Rejected))
			return nil
		},
	}

	dictFlags.register(cmd, true)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, or table")
	cmd.Flags().IntVar(&maxDepth, "max-depth", segment.DefaultMaxDepth, "Reject words longer than this many characters")
	cmd.Flags().BoolVar(&keepEmpty, "keep-empty", false, "Echo empty input lines instead of skipping them")
	return cmd
}
