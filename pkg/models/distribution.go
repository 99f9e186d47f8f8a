package models

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// ErrInvalidDistribution is returned when a probability distribution breaks
// its invariants (missing genres, extra keys, bad sum).
var ErrInvalidDistribution = errors.New("invalid probability distribution")

// SumTolerance is the allowed deviation of a distribution's sum from 1.
const SumTolerance = 1e-9

// Distribution assigns a probability to every genre. It is indexed by genre
// so that no genre can be missing.
type Distribution [NumGenres]float64

// Of returns the probability assigned to g, or 0 for an invalid genre.
func (d *Distribution) Of(g Genre) float64 {
	if !g.Valid() {
		return 0
	}
	return d[g.index()]
}

// Set assigns p to g. Invalid genres are ignored.
func (d *Distribution) Set(g Genre, p float64) {
	if !g.Valid() {
		return
	}
	d[g.index()] = p
}

// Sum returns the total probability mass.
func (d *Distribution) Sum() float64 {
	var s float64
	for _, p := range d {
		s += p
	}
	return s
}

// Argmax returns the genre holding the largest share. Ties resolve to the
// earliest genre in canonical order.
func (d *Distribution) Argmax() Genre {
	best := Genres[0]
	for _, g := range Genres[1:] {
		if d.Of(g) > d.Of(best) {
			best = g
		}
	}
	return best
}

// Validate checks that every entry lies in [0,1] and that the entries sum to 1
// within SumTolerance.
func (d *Distribution) Validate() error {
	for _, g := range Genres {
		p := d.Of(g)
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: %s=%v out of range", ErrInvalidDistribution, g, p)
		}
	}
	if s := d.Sum(); math.Abs(s-1) > SumTolerance {
		return fmt.Errorf("%w: sum is %v", ErrInvalidDistribution, s)
	}
	return nil
}

// GenreShare pairs a genre with its probability.
type GenreShare struct {
	Genre       Genre
	Probability float64
}

// TopGenres returns the n most probable genres in descending order. Equal
// shares keep canonical order.
func TopGenres(d Distribution, n int) []GenreShare {
	shares := make([]GenreShare, 0, NumGenres)
	for _, g := range Genres {
		shares = append(shares, GenreShare{Genre: g, Probability: d.Of(g)})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Probability > shares[j].Probability
	})
	if n < 0 {
		n = 0
	}
	if n < len(shares) {
		shares = shares[:n]
	}
	return shares
}

// MarshalJSON encodes the distribution as an object keyed by genre slug in
// canonical order.
func (d Distribution) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 256)
	buf = append(buf, '{')
	for i, g := range Genres {
		p := d.Of(g)
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: %s is not finite", ErrInvalidDistribution, g)
		}
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendQuote(buf, g.String())
		buf = append(buf, ':')
		buf = strconv.AppendFloat(buf, p, 'g', -1, 64)
	}
	buf = append(buf, '}')
	return buf, nil
}

// UnmarshalJSON requires exactly one entry per genre. Unknown keys and
// omissions are rejected; values are taken as sent.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDistribution, err)
	}

	var out Distribution
	var seen [NumGenres]bool
	for key, p := range raw {
		g, err := ParseGenre(key)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDistribution, err)
		}
		if seen[g.index()] {
			return fmt.Errorf("%w: duplicate entry for %s", ErrInvalidDistribution, g)
		}
		seen[g.index()] = true
		out.Set(g, p)
	}
	for _, g := range Genres {
		if !seen[g.index()] {
			return fmt.Errorf("%w: missing entry for %s", ErrInvalidDistribution, g)
		}
	}

	*d = out
	return nil
}
