package simulate

import (
	"math"
	"testing"

	"github.com/himanishpuri/GenreDNA/pkg/genredna/catalog"
	"github.com/himanishpuri/GenreDNA/pkg/models"
)

// scriptedSource replays fixed draws and fails the test when it runs out.
type scriptedSource struct {
	t      *testing.T
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	s.t.Helper()
	if len(s.floats) == 0 {
		s.t.Fatal("scripted source: no Float64 draws left")
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedSource) IntN(n int) int {
	s.t.Helper()
	if len(s.ints) == 0 {
		s.t.Fatal("scripted source: no IntN draws left")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted IntN value %d out of [0,%d)", v, n)
	}
	return v
}

func zeros(n int) []float64 {
	return make([]float64, n)
}

func TestSynthesizeScriptedShape(t *testing.T) {
	// Dominant draw 0 and eight zero tail draws: the target gets 0.65 and the
	// last non-target genre absorbs the remaining 0.35.
	rng := &scriptedSource{t: t, floats: zeros(9)}
	d, target := Synthesize(rng, models.Jazz)

	if target != models.Jazz {
		t.Fatalf("target = %v, want jazz", target)
	}
	if d.Of(models.Jazz) != DominantMin {
		t.Errorf("jazz share = %v, want %v", d.Of(models.Jazz), DominantMin)
	}
	if math.Abs(d.Of(models.Reggae)-0.35) > 1e-12 {
		t.Errorf("reggae share = %v, want 0.35", d.Of(models.Reggae))
	}
	for _, g := range []models.Genre{models.Rock, models.Pop, models.Classical, models.Metal} {
		if d.Of(g) != 0 {
			t.Errorf("%v share = %v, want 0", g, d.Of(g))
		}
	}
	if len(rng.floats) != 0 {
		t.Errorf("%d draws left unused", len(rng.floats))
	}
}

func TestSynthesizeTailHalvesRemaining(t *testing.T) {
	// Each tail draw of ~1 takes half of what is left.
	floats := []float64{0.999999999, 1, 1, 1, 1, 1, 1, 1, 1}
	rng := &scriptedSource{t: t, floats: floats}
	d, _ := Synthesize(rng, models.Reggae)

	dominant := DominantMin + 0.999999999*DominantSpan
	remaining := 1 - dominant
	for _, g := range models.Genres[:8] {
		want := remaining * TailFactor
		if math.Abs(d.Of(g)-want) > 1e-12 {
			t.Errorf("%v share = %v, want %v", g, d.Of(g), want)
		}
		remaining -= want
	}
	if math.Abs(d.Of(models.Metal)-remaining) > 1e-12 {
		t.Errorf("metal (last slot) = %v, want %v", d.Of(models.Metal), remaining)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestSynthesizeWithoutTargetPicksUniformly(t *testing.T) {
	rng := &scriptedSource{t: t, ints: []int{4}, floats: zeros(9)}
	d, target := Synthesize(rng, models.NoGenre)

	if target != models.HipHop {
		t.Errorf("target = %v, want hiphop (index 4)", target)
	}
	if d.Argmax() != models.HipHop {
		t.Errorf("argmax = %v, want hiphop", d.Argmax())
	}
}

func TestSynthesizeInvariantsAcrossSeeds(t *testing.T) {
	targets := append([]models.Genre{models.NoGenre}, models.Genres[:]...)
	for _, target := range targets {
		for seed := uint64(0); seed < 200; seed++ {
			rng := NewSeededSource(seed, uint64(target))
			d, picked := Synthesize(rng, target)

			if err := d.Validate(); err != nil {
				t.Fatalf("target %v seed %d: %v", target, seed, err)
			}
			if target != models.NoGenre && picked != target {
				t.Fatalf("target %v seed %d: picked %v", target, seed, picked)
			}
			if d.Argmax() != picked {
				t.Fatalf("target %v seed %d: argmax %v != %v", target, seed, d.Argmax(), picked)
			}
			share := d.Of(picked)
			if share < DominantMin || share >= DominantMin+DominantSpan {
				t.Fatalf("target %v seed %d: dominant share %v out of range", target, seed, share)
			}
		}
	}
}

func TestRankFiltersAndOrders(t *testing.T) {
	songs := catalog.Default().ListSongs()
	rng := &scriptedSource{t: t, floats: []float64{0.1, 0.9, 0.5}}

	recs := Rank(rng, models.Blues, songs)
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	wantIDs := []string{"blues-2", "blues-3", "blues-1"}
	for i, id := range wantIDs {
		if recs[i].ID != id {
			t.Errorf("recs[%d] = %s, want %s", i, recs[i].ID, id)
		}
		if recs[i].Genre != models.Blues {
			t.Errorf("recs[%d] genre = %v", i, recs[i].Genre)
		}
	}
	if got := recs[0].SimilarityOrZero(); math.Abs(got-(SimilarityMin+0.9*SimilaritySpan)) > 1e-12 {
		t.Errorf("top similarity = %v", got)
	}
}

func TestRankKeepsCatalogOrderOnTies(t *testing.T) {
	songs := catalog.Default().ListSongs()
	rng := &scriptedSource{t: t, floats: []float64{0.3, 0.3, 0.3}}

	recs := Rank(rng, models.Pop, songs)
	for i, id := range []string{"pop-1", "pop-2", "pop-3"} {
		if recs[i].ID != id {
			t.Errorf("recs[%d] = %s, want %s", i, recs[i].ID, id)
		}
	}
}

func TestRankNoMatches(t *testing.T) {
	songs := []models.Song{{ID: "rock-1", Genre: models.Rock}}
	recs := Rank(GlobalSource{}, models.Jazz, songs)
	if recs == nil || len(recs) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", recs)
	}
}

func TestSimulateIsConsistent(t *testing.T) {
	sim := NewSimulator(catalog.Default(), nil)
	for i := 0; i < 100; i++ {
		res := sim.Simulate(models.NoGenre)
		if err := res.Prediction.Validate(); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
		if len(res.Recommendations) != 3 {
			t.Fatalf("iteration %d: %d recommendations", i, len(res.Recommendations))
		}
		prev := math.Inf(1)
		for _, r := range res.Recommendations {
			if r.Genre != res.Prediction.Genre {
				t.Fatalf("recommendation %s has genre %v, prediction %v", r.ID, r.Genre, res.Prediction.Genre)
			}
			s := r.SimilarityOrZero()
			if s > prev {
				t.Fatalf("recommendations not sorted: %v after %v", s, prev)
			}
			prev = s
		}
	}
}

func TestSimulateWithSameSeedIsDeterministic(t *testing.T) {
	songs := catalog.Default().ListSongs()
	a := SimulateWith(NewSeededSource(7, 11), songs, models.Metal)
	b := SimulateWith(NewSeededSource(7, 11), songs, models.Metal)

	if a.Prediction != b.Prediction {
		t.Errorf("predictions differ: %+v vs %+v", a.Prediction, b.Prediction)
	}
	if a.Prediction.Genre != models.Metal {
		t.Errorf("biased prediction = %v, want metal", a.Prediction.Genre)
	}
}
