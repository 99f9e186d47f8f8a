package genredna

import (
	"context"

	"github.com/himanishpuri/GenreDNA/pkg/models"
)

// PredictionBackend is the capability the UI layer calls into. It is resolved
// once by NewBackend and reused for the lifetime of the caller.
type PredictionBackend interface {
	Predict(ctx context.Context, in PredictInput) (*models.RecommendationResult, error)
	ListSamples(ctx context.Context) ([]models.SampleAudio, error)
	HealthCheck(ctx context.Context) bool
	Mode() Mode
}

type Catalog interface {
	ListSongs() []models.Song
	ListSamples() []models.SampleAudio
	FindSample(id string) (models.SampleAudio, bool)
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
