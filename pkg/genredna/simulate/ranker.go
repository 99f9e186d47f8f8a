package simulate

import (
	"sort"

	"github.com/himanishpuri/GenreDNA/pkg/models"
)

const (
	// SimilarityMin and SimilaritySpan bound similarity scores: uniform in [0.70, 0.95).
	SimilarityMin  = 0.70
	SimilaritySpan = 0.25
)

// ------------------------ Similarity ranking ------------------------

// Rank selects the songs tagged with genre, scores each with a random
// similarity and returns them by descending similarity. Equal scores keep
// catalog order. No matching song yields an empty, non-nil slice.
func Rank(rng Source, genre models.Genre, songs []models.Song) []models.RecommendedSong {
	recs := make([]models.RecommendedSong, 0, 4)
	for _, song := range songs {
		if song.Genre != genre {
			continue
		}
		sim := SimilarityMin + rng.Float64()*SimilaritySpan
		recs = append(recs, models.RecommendedSong{Song: song, Similarity: &sim})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].SimilarityOrZero() > recs[j].SimilarityOrZero()
	})
	return recs
}
