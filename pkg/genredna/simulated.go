package genredna

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/himanishpuri/GenreDNA/pkg/genredna/simulate"
	"github.com/himanishpuri/GenreDNA/pkg/models"
)

// SimulatedBackend answers predictions locally from the catalog. It is safe
// for concurrent use as long as its random source is.
type SimulatedBackend struct {
	catalog  Catalog
	rng      simulate.Source
	delayMin time.Duration
	delayMax time.Duration
	log      Logger
}

func (b *SimulatedBackend) Mode() Mode {
	return ModeSimulated
}

// Predict waits for the artificial delay and returns a simulated result. A
// file wins over a sample id, as on the remote path, and yields an unbiased
// prediction. A known sample id biases the prediction toward the sample's
// genre. Unlike the remote backend, an empty input is not rejected.
func (b *SimulatedBackend) Predict(ctx context.Context, in PredictInput) (*models.RecommendationResult, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	bias := models.NoGenre
	switch {
	case in.File != nil:
	case in.SampleID != "":
		if sample, ok := b.catalog.FindSample(in.SampleID); ok {
			bias = sample.Genre
		} else {
			b.log.Debugf("Unknown sample %q, simulating unbiased prediction", in.SampleID)
		}
	default:
		b.log.Warnf("Predict called without audio file or sample, simulating unbiased prediction")
	}

	result := simulate.NewSimulator(b.catalog, b.rng).Simulate(bias)
	b.log.Debugf("Simulated prediction: %s (%.1f%%)", result.Prediction.Genre, result.Prediction.Confidence*100)
	return &result, nil
}

func (b *SimulatedBackend) ListSamples(ctx context.Context) ([]models.SampleAudio, error) {
	return b.catalog.ListSamples(), nil
}

func (b *SimulatedBackend) HealthCheck(ctx context.Context) bool {
	return true
}

// wait sleeps for a duration drawn uniformly from [delayMin, delayMax]. The
// draw uses math/rand/v2 directly so that the injected source only feeds the
// simulation.
func (b *SimulatedBackend) wait(ctx context.Context) error {
	d := b.delayMin
	if span := b.delayMax - b.delayMin; span > 0 {
		d += rand.N(span + 1)
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
