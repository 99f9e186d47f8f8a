//go:build !js && !wasm

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh/spinner"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/himanishpuri/GenreDNA/pkg/genredna"
	"github.com/himanishpuri/GenreDNA/pkg/models"
)

func (c *cli) newPredictCmd() *cobra.Command {
	var filePath, sampleID string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the genre of an audio file or preset sample",
		Example: `  genredna predict --file song.wav
  genredna predict --sample sample-2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPredict(cmd, filePath, sampleID)
		},
	}
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "audio file to upload")
	cmd.Flags().StringVarP(&sampleID, "sample", "s", "", "preset sample id (see 'genredna samples')")
	return cmd
}

func (c *cli) runPredict(cmd *cobra.Command, filePath, sampleID string) error {
	out := cmd.OutOrStdout()

	backend, err := c.backend()
	if err != nil {
		return err
	}

	in := genredna.PredictInput{SampleID: sampleID}
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("failed to open audio file: %w", err)
		}
		defer f.Close()

		if info, err := f.Stat(); err == nil {
			fmt.Fprintf(out, "🎵 %s (%s)\n", filepath.Base(filePath), humanize.Bytes(uint64(info.Size())))
		}
		in.File = f
		in.FileName = filepath.Base(filePath)
	} else if sampleID != "" {
		fmt.Fprintf(out, "🎵 Sample %s\n", sampleID)
	}

	var result *models.RecommendationResult
	err = c.withSpinner(cmd.Context(), "Analyzing audio...", func(ctx context.Context) error {
		var err error
		result, err = backend.Predict(ctx, in)
		return err
	})
	if err != nil {
		if errors.Is(err, genredna.ErrInputMissing) {
			return fmt.Errorf("%w (use --file or --sample)", err)
		}
		return err
	}

	renderPrediction(out, result)
	return nil
}

// withSpinner runs action behind a spinner unless disabled.
func (c *cli) withSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.noSpinner {
		return action(ctx)
	}
	return spinner.New().Title(title).Context(ctx).ActionWithErr(action).Run()
}
