package cmd

import (
	"context"
	"time"

	"github.com/nikogura/talent-match/pkg/catalog"
	"github.com/nikogura/talent-match/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var answersFile string

//nolint:gochecknoglobals // Cobra boilerplate
var outputFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var outputFile string

//nolint:gochecknoglobals // Cobra boilerplate
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Classify a quiz answer sheet into a character",
	Long: `Read an answer sheet and print the diagnosed character, its strengths and the
condition tags collected from the answers.

The answer sheet is JSON or YAML:

  answers:
    1: A
    2: C
  condition_answers:
    "101": A

Example:
  talent-match diagnose --answers answers.yaml
  talent-match diagnose --answers answers.json --format markdown --output result.md`,
	RunE: runDiagnose,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(diagnoseCmd)
	diagnoseCmd.Flags().StringVarP(&answersFile, "answers", "a", "", "Answer sheet file (JSON or YAML)")
	diagnoseCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, json or markdown")
	diagnoseCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	_ = diagnoseCmd.MarkFlagRequired("answers")
}

func runDiagnose(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var format renderer.Format
	format, err = renderer.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	_, e, err := loadEngine(ctx, 0)
	if err != nil {
		return err
	}

	var sheet catalog.AnswerSheet
	sheet, err = catalog.LoadAnswers(answersFile)
	if err != nil {
		return err
	}

	report := e.Report(sheet)
	err = emit(cmd, report, format)
	return err
}

// emit renders report and writes it to --output or the command's stdout.
func emit(cmd *cobra.Command, report renderer.Report, format renderer.Format) (err error) {
	var content string
	content, err = renderer.Render(report, format)
	if err != nil {
		return err
	}

	err = renderer.Write(content, outputFile, cmd.OutOrStdout())
	if err != nil {
		err = errors.Wrap(err, "failed to write output")
		return err
	}

	if outputFile != "" && getVerbose() {
		cmd.PrintErrf("Report saved at: %s\n", outputFile)
	}
	return err
}
