package models

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Song is a reference track in the catalog.
type Song struct {
	ID       string `json:"id"`       // Unique catalog identifier, e.g. "jazz-2"
	Title    string `json:"title"`    // Song title
	Artist   string `json:"artist"`   // Artist name
	Genre    Genre  `json:"genre"`    // Catalog genre tag
	Duration string `json:"duration"` // Display duration ("m:ss"), not used in computation
}

// SampleAudio describes a preset audio sample the caller can pick instead of
// uploading a file. Genre biases simulated predictions.
type SampleAudio struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Genre Genre  `json:"genre"`
}

// PredictionResult is the classifier output. Genre is the argmax of
// Probabilities and Confidence equals Probabilities.Of(Genre).
type PredictionResult struct {
	Genre         Genre        `json:"genre"`
	Confidence    float64      `json:"confidence"`
	Probabilities Distribution `json:"probabilities"`
}

// NewPrediction derives a PredictionResult from a distribution.
func NewPrediction(d Distribution) PredictionResult {
	g := d.Argmax()
	return PredictionResult{
		Genre:         g,
		Confidence:    d.Of(g),
		Probabilities: d,
	}
}

// UnmarshalJSON requires genre, confidence and probabilities to be present.
// A missing or null probabilities object would otherwise decode as an
// all-zero distribution.
func (p *PredictionResult) UnmarshalJSON(data []byte) error {
	var wire struct {
		Genre         *Genre        `json:"genre"`
		Confidence    *float64      `json:"confidence"`
		Probabilities *Distribution `json:"probabilities"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch {
	case wire.Genre == nil:
		return errors.New("prediction is missing genre")
	case wire.Confidence == nil:
		return errors.New("prediction is missing confidence")
	case wire.Probabilities == nil:
		return fmt.Errorf("%w: prediction is missing probabilities", ErrInvalidDistribution)
	}

	*p = PredictionResult{
		Genre:         *wire.Genre,
		Confidence:    *wire.Confidence,
		Probabilities: *wire.Probabilities,
	}
	return nil
}

// Validate checks the argmax and confidence invariants together with the
// distribution itself.
func (p *PredictionResult) Validate() error {
	if err := p.Probabilities.Validate(); err != nil {
		return err
	}
	if top := p.Probabilities.Argmax(); top != p.Genre {
		return fmt.Errorf("predicted genre %s is not the distribution maximum (%s)", p.Genre, top)
	}
	if p.Confidence != p.Probabilities.Of(p.Genre) {
		return fmt.Errorf("confidence %v does not match probability %v of %s",
			p.Confidence, p.Probabilities.Of(p.Genre), p.Genre)
	}
	return nil
}

// RecommendedSong is a catalog song with an optional similarity score in [0,1].
type RecommendedSong struct {
	Song
	Similarity *float64 `json:"similarity,omitempty"`
}

// SimilarityOrZero returns the similarity, treating a missing score as 0.
func (r RecommendedSong) SimilarityOrZero() float64 {
	if r.Similarity == nil {
		return 0
	}
	return *r.Similarity
}

// RecommendationResult is the full response of a prediction request.
// Recommendations are ordered by descending similarity.
type RecommendationResult struct {
	Prediction      PredictionResult  `json:"prediction"`
	Recommendations []RecommendedSong `json:"recommendations"`
}
