package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/nikogura/talent-match/pkg/config"
	"github.com/nikogura/talent-match/pkg/engine"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "talent-match",
	Short: "Diagnose a personality type and match it to jobs",
	Long: `talent-match scores a household-habit quiz, classifies the answers into one of
a fixed set of characters and ranks a job catalog against the resulting profile.

The built-in catalog is used unless catalog_location is set in the config file.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.talent-match/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// loadEngine reads the configuration and builds an engine from it.
// A zero seed picks a random one.
func loadEngine(ctx context.Context, seed uint64) (cfg config.Config, e *engine.Engine, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, e, err
	}

	if seed == 0 {
		seed = rand.Uint64()
	}

	e, err = engine.FromConfig(ctx, cfg, seed)
	if err != nil {
		return cfg, e, err
	}

	if getVerbose() {
		location := cfg.CatalogLocation
		if location == "" {
			location = "built-in"
		}
		fmt.Fprintf(os.Stderr, "Catalog: %s (%d characters, %d jobs)\n", location, len(e.Catalog.Characters), len(e.Catalog.Jobs))
		fmt.Fprintf(os.Stderr, "Policy: %s\n", e.Ranker.Scorer().Policy())
	}
	return cfg, e, err
}
