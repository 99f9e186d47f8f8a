// Package simulate produces synthetic genre predictions and recommendations
// from random draws and the catalog. It performs no I/O.
package simulate

import (
	"github.com/himanishpuri/GenreDNA/pkg/models"
)

const (
	// DominantMin and DominantSpan bound the share of the target genre:
	// uniform in [0.65, 0.90).
	DominantMin  = 0.65
	DominantSpan = 0.25

	// TailFactor scales each non-target draw against the mass still unassigned.
	TailFactor = 0.5
)

// ------------------------ Distribution synthesis ------------------------

// Synthesize builds a full distribution over the genre set with target holding
// the dominant share. A NoGenre target is replaced by a uniform pick.
//
// Draw order is fixed: [IntN when target is NoGenre], dominant share, then one
// draw per non-target genre in canonical order except the last, which absorbs
// whatever mass remains (floored at 0). The last slot therefore carries all of
// the rounding residue.
func Synthesize(rng Source, target models.Genre) (models.Distribution, models.Genre) {
	if !target.Valid() {
		target = models.Genres[rng.IntN(models.NumGenres)]
	}

	var d models.Distribution
	dominant := DominantMin + rng.Float64()*DominantSpan
	d.Set(target, dominant)
	remaining := 1 - dominant

	others := make([]models.Genre, 0, models.NumGenres-1)
	for _, g := range models.Genres {
		if g != target {
			others = append(others, g)
		}
	}

	for i, g := range others {
		if i == len(others)-1 {
			d.Set(g, max(0, remaining))
			break
		}
		share := rng.Float64() * remaining * TailFactor
		d.Set(g, share)
		remaining -= share
	}

	return d, target
}
