//go:build !js && !wasm

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/GenreDNA/pkg/genredna/catalog"
	"github.com/himanishpuri/GenreDNA/pkg/genredna/storage"
	"github.com/himanishpuri/GenreDNA/pkg/models"
)

func (c *cli) newSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "List the preset audio samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := c.backend()
			if err != nil {
				return err
			}

			var samples []models.SampleAudio
			err = c.withSpinner(cmd.Context(), "Fetching samples...", func(ctx context.Context) error {
				var err error
				samples, err = backend.ListSamples(ctx)
				return err
			})
			if err != nil {
				return err
			}

			renderSamples(cmd.OutOrStdout(), samples)
			return nil
		},
	}
}

func (c *cli) newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the prediction backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := c.backend()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			out := cmd.OutOrStdout()
			if !backend.HealthCheck(ctx) {
				fmt.Fprintf(out, "❌ Prediction API at %s is unreachable\n", c.cfg.APIURL)
				return fmt.Errorf("health check failed")
			}

			if c.cfg.UseSimulation() {
				fmt.Fprintln(out, "✅ Simulated backend ready (no GENREDNA_API_URL set)")
			} else {
				fmt.Fprintf(out, "✅ Prediction API at %s is healthy\n", c.cfg.APIURL)
			}
			return nil
		},
	}
}

func (c *cli) newCatalogCmd() *cobra.Command {
	var genreName string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the songs recommendations are drawn from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			genre := models.NoGenre
			if genreName != "" {
				g, err := models.ParseGenreFold(genreName)
				if err != nil {
					return err
				}
				genre = g
			}

			songs, err := c.catalogSongs(genre)
			if err != nil {
				return err
			}
			renderCatalog(cmd.OutOrStdout(), songs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&genreName, "genre", "g", "", "only list songs of this genre")
	return cmd
}

// catalogSongs lists the catalog, filtered to genre unless it is NoGenre. With
// a database configured the query runs against SQLite, seeding it first.
func (c *cli) catalogSongs(genre models.Genre) ([]models.Song, error) {
	if c.cfg.DBPath == "" {
		cat := catalog.Default()
		if genre == models.NoGenre {
			return cat.ListSongs(), nil
		}
		return cat.SongsByGenre(genre), nil
	}

	db, err := storage.NewDBClient(c.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if _, err := db.Seed(catalog.DefaultSongs(), catalog.DefaultSamples()); err != nil {
		return nil, fmt.Errorf("seeding catalog: %w", err)
	}
	if genre == models.NoGenre {
		return db.ListSongs()
	}
	return db.SongsByGenre(genre)
}
