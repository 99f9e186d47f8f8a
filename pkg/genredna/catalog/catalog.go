// Package catalog holds the read-only reference songs and preset samples the
// simulated backend recommends from.
package catalog

import (
	"github.com/himanishpuri/GenreDNA/pkg/models"
)

// Catalog is an immutable collection of songs and sample descriptors. It is
// safe for concurrent use.
type Catalog struct {
	songs   []models.Song
	samples []models.SampleAudio
	byID    map[string]int
}

// New builds a catalog from the given data. The slices are copied; later
// changes by the caller are not observed.
func New(songs []models.Song, samples []models.SampleAudio) *Catalog {
	c := &Catalog{
		songs:   append([]models.Song(nil), songs...),
		samples: append([]models.SampleAudio(nil), samples...),
		byID:    make(map[string]int, len(samples)),
	}
	for i, s := range c.samples {
		if _, dup := c.byID[s.ID]; !dup {
			c.byID[s.ID] = i
		}
	}
	return c
}

var defaultCatalog = New(DefaultSongs(), DefaultSamples())

// Default returns the built-in fixture catalog.
func Default() *Catalog {
	return defaultCatalog
}

// ListSongs returns every song in catalog order. The order is the same on
// every call.
func (c *Catalog) ListSongs() []models.Song {
	return append([]models.Song(nil), c.songs...)
}

// ListSamples returns every sample descriptor in catalog order.
func (c *Catalog) ListSamples() []models.SampleAudio {
	return append([]models.SampleAudio(nil), c.samples...)
}

// FindSample looks up a sample by id. A miss is reported with ok == false.
func (c *Catalog) FindSample(id string) (models.SampleAudio, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.SampleAudio{}, false
	}
	return c.samples[i], true
}

// SongsByGenre returns the songs tagged with g, in catalog order.
func (c *Catalog) SongsByGenre(g models.Genre) []models.Song {
	out := make([]models.Song, 0, 3)
	for _, s := range c.songs {
		if s.Genre == g {
			out = append(out, s)
		}
	}
	return out
}
