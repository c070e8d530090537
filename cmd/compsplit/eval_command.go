package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"compsplit/internal/evaluate"
	"compsplit/internal/report"
	"compsplit/internal/segment"
)

func newEvalCommand(ctx *commandContext) *cobra.Command {
	var dictFlags dictionaryFlags
	var maxDepth int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "eval <gold>",
		Short: "Measure how many annotated compounds the dictionary can reproduce",
		Long: "Reads \"<compound> <annotation>\" lines, where the annotation separates segments\n" +
			"with '+'. A compound is covered when any decomposition matches its segments.\n" +
			"Misses are printed as \"<gold> <found>\" followed by a summary table.",
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
			dcfg, err := dictFlags.resolve(cmd, cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-depth") {
				maxDepth = cfg.Split.MaxDepth
			}

			dict, err := loadDictionary(cmd.Context(), dcfg, logger)
			if err != nil {
				return err
			}

			gold, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open gold corpus: %w", err)
			}
			defer gold.Close()

			engine := segment.New(dict, segment.WithMaxDepth(maxDepth))
			result, err := evaluate.Run(cmd.Context(), gold, engine, evaluate.Options{Logger: logger})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !quiet {
				for _, miss := range result.Misses {
					found := strconv.Itoa(miss.Found)
					if miss.Rejected {
						found = "rejected"
					}
					fmt.Fprintf(out, "%s %s (%s)\n", miss.Gold, miss.Compound, found)
				}
			}
			fmt.Fprintln(out, report.RenderTable(
				[]string{"Metric", "Value"},
				[][]string{
					{"Instances", strconv.Itoa(result.Instances)},
					{"Covered", fmt.Sprintf("%d (%.2f%%)", result.Covered, result.Coverage())},
					{"Unsplittable", strconv.Itoa(result.Unsplittable)},
					{"Rejected", strconv.Itoa(result.Rejected)},
					{"Decompositions", strconv.Itoa(result.Decompositions)},
				},
				[]report.Alignment{report.AlignLeft, report.AlignRight},
			))
			return nil
		},
	}

	dictFlags.register(cmd, true)
	cmd.Flags().IntVar(&maxDepth, "max-depth", segment.DefaultMaxDepth, "Reject compounds longer than this many characters")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the summary table")
	return cmd
}
