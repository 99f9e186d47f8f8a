//go:build !js && !wasm

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/GenreDNA/internal/config"
	"github.com/himanishpuri/GenreDNA/pkg/genredna"
	"github.com/himanishpuri/GenreDNA/pkg/logger"
)

// cli carries the state shared by all subcommands.
type cli struct {
	cfg *config.Config
	log *logger.Logger

	apiURL    string
	dbPath    string
	noSpinner bool
}

func newRootCmd() *cobra.Command {
	c := &cli{log: logger.GetLogger()}

	root := &cobra.Command{
		Use:   "genredna",
		Short: "Predict music genres and get song recommendations",
		Long: `GenreDNA predicts the genre of an audio file or preset sample and
recommends similar songs. Set GENREDNA_API_URL to use a prediction API;
otherwise predictions are simulated locally.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "prediction API root (overrides GENREDNA_API_URL)")
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "SQLite catalog for simulated predictions (overrides GENREDNA_DB_PATH)")
	root.PersistentFlags().BoolVar(&c.noSpinner, "no-spinner", false, "disable the progress spinner")

	root.AddCommand(
		c.newPredictCmd(),
		c.newSamplesCmd(),
		c.newHealthCmd(),
		c.newCatalogCmd(),
	)
	return root
}

func (c *cli) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = c.apiURL
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = c.dbPath
	}

	// Keep the terminal for results unless debugging.
	level, _ := logger.ParseLevel(cfg.LogLevel)
	if level < logger.WARN && level != logger.DEBUG {
		level = logger.WARN
	}
	c.log.SetLevel(level)
	c.log.SetOutput(cmd.ErrOrStderr())

	c.cfg = cfg
	return nil
}

func (c *cli) backend() (genredna.PredictionBackend, error) {
	return genredna.NewBackend(
		genredna.WithBaseURL(c.cfg.APIURL),
		genredna.WithMockDelay(c.cfg.MockDelayMin, c.cfg.MockDelayMax),
		genredna.WithDBPath(c.cfg.DBPath),
		genredna.WithLogger(c.log),
	)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
