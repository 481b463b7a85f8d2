package cmd

import (
	"context"
	"time"

	"github.com/nikogura/talent-match/pkg/catalog"
	"github.com/nikogura/talent-match/pkg/engine"
	"github.com/nikogura/talent-match/pkg/renderer"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var matchTop int

//nolint:gochecknoglobals // Cobra boilerplate
var matchDomains int

//nolint:gochecknoglobals // Cobra boilerplate
var matchPerDomain int

//nolint:gochecknoglobals // Cobra boilerplate
var matchSample int

//nolint:gochecknoglobals // Cobra boilerplate
var matchSeed uint64

//nolint:gochecknoglobals // Cobra boilerplate
var matchCategories []string

//nolint:gochecknoglobals // Cobra boilerplate
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Diagnose an answer sheet and rank jobs for it",
	Long: `Diagnose an answer sheet, then rank the job catalog against the resulting profile.

The report lists the top jobs, the best job categories and, with --sample, a
random pick among the strongest matches. Categories come from the sheet's
allowed_categories or --category; without either, the categories surfaced by
character fit are used.

Example:
  talent-match match --answers answers.yaml
  talent-match match --answers answers.yaml --top 5 --sample 3 --seed 42
  talent-match match --answers answers.yaml --category 事務 --category 経理・会計 --format json`,
	RunE: runMatch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringVarP(&answersFile, "answers", "a", "", "Answer sheet file (JSON or YAML)")
	matchCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, json or markdown")
	matchCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	matchCmd.Flags().IntVar(&matchTop, "top", 0, "Number of top jobs (default from config)")
	matchCmd.Flags().IntVar(&matchDomains, "domains", 0, "Number of job categories (default from config)")
	matchCmd.Flags().IntVar(&matchPerDomain, "per-domain", 0, "Jobs listed per category (default from config)")
	matchCmd.Flags().IntVar(&matchSample, "sample", 0, "Randomly pick this many strong matches")
	matchCmd.Flags().Uint64Var(&matchSeed, "seed", 0, "Seed for --sample (0 picks one at random)")
	matchCmd.Flags().StringArrayVar(&matchCategories, "category", nil, "Restrict categories (repeatable)")
	_ = matchCmd.MarkFlagRequired("answers")
}

func runMatch(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var format renderer.Format
	format, err = renderer.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	_, e, err := loadEngine(ctx, matchSeed)
	if err != nil {
		return err
	}

	var sheet catalog.AnswerSheet
	sheet, err = catalog.LoadAnswers(answersFile)
	if err != nil {
		return err
	}
	if len(matchCategories) > 0 {
		sheet.AllowedCategories = matchCategories
	}

	report := e.Match(sheet, engine.Options{
		TopN:          matchTop,
		DomainCount:   matchDomains,
		JobsPerDomain: matchPerDomain,
		SampleCount:   matchSample,
		Sample:        matchSample > 0,
	})

	if getVerbose() {
		cmd.PrintErrf("Ranked %d jobs into %d categories\n", len(report.TopJobs), len(report.Domains))
	}

	err = emit(cmd, report, format)
	return err
}
