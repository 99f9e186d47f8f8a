package simulate

import (
	"github.com/himanishpuri/GenreDNA/pkg/models"
)

// SongLister provides the songs the simulator recommends from.
type SongLister interface {
	ListSongs() []models.Song
}

// Simulator composes Synthesize and Rank into a complete backend response.
type Simulator struct {
	songs SongLister
	rng   Source
}

// NewSimulator creates a simulator over the given catalog. A nil rng falls back
// to GlobalSource.
func NewSimulator(songs SongLister, rng Source) *Simulator {
	if rng == nil {
		rng = GlobalSource{}
	}
	return &Simulator{songs: songs, rng: rng}
}

// Simulate produces a prediction biased toward bias (NoGenre for none) and the
// ranked recommendations for the predicted genre. It never fails.
func (s *Simulator) Simulate(bias models.Genre) models.RecommendationResult {
	return SimulateWith(s.rng, s.songs.ListSongs(), bias)
}

// SimulateWith is Simulate with an explicit source and song list, for callers
// that need a per-request source.
func SimulateWith(rng Source, songs []models.Song, bias models.Genre) models.RecommendationResult {
	dist, _ := Synthesize(rng, bias)
	prediction := models.NewPrediction(dist)
	return models.RecommendationResult{
		Prediction:      prediction,
		Recommendations: Rank(rng, prediction.Genre, songs),
	}
}
