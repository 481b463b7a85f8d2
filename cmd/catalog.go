package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nikogura/talent-match/pkg/catalog"
	"github.com/nikogura/talent-match/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate catalogs",
}

//nolint:gochecknoglobals // Cobra boilerplate
var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file-or-url]",
	Short: "Validate a catalog",
	Long: `Validate a catalog file or URL. Without an argument, the configured catalog
(or the built-in one) is checked.

Structural problems fail the command. Dangling references, such as a job scoring
an unknown character, are printed as warnings.

Example:
  talent-match catalog validate
  talent-match catalog validate my-catalog.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogValidate,
}

//nolint:gochecknoglobals // Cobra boilerplate
var catalogCharactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "List the characters of the configured catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalogCharacters,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogCharactersCmd)
}

func runCatalogValidate(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var location string
	if len(args) > 0 {
		location = args[0]
	} else {
		var cfg config.Config
		cfg, err = config.Load(getConfigFile())
		if err != nil {
			err = errors.Wrap(err, "failed to load config")
			return err
		}
		location = cfg.CatalogLocation
	}

	var cat *catalog.Catalog
	if location == "" {
		location = "built-in"
		cat, err = catalog.Default()
	} else {
		cat, err = catalog.Open(ctx, location)
	}
	if err != nil {
		return err
	}

	warnings := cat.Warnings()
	for _, w := range warnings {
		cmd.PrintErrf("Warning: %s\n", w)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Catalog %s is valid: %d characters, %d questions, %d condition questions, %d jobs, %d warnings\n",
		location, len(cat.Characters), len(cat.Questions), len(cat.ConditionQuestions), len(cat.Jobs), len(warnings))
	return err
}

func runCatalogCharacters(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, e, err := loadEngine(ctx, 0)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, ch := range e.Catalog.Characters {
		fmt.Fprintf(out, "%s\n", ch.Name)
		if ch.ShortDescription != "" {
			fmt.Fprintf(out, "  %s\n", ch.ShortDescription)
		}
		if getVerbose() && len(ch.StrengthKeywords) > 0 {
			fmt.Fprintf(out, "  強み: %v\n", ch.StrengthKeywords)
		}
	}
	return err
}
