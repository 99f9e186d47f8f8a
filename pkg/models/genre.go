package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ErrUnknownGenre is returned when a value outside the closed genre set is parsed.
var ErrUnknownGenre = errors.New("unknown genre")

// Genre is one label of the fixed classification set. The zero value NoGenre
// means "no genre" and is never valid on the wire.
type Genre uint8

const (
	NoGenre Genre = iota
	Rock
	Pop
	Jazz
	Classical
	HipHop
	Electronic
	Blues
	Country
	Metal
	Reggae
)

// NumGenres is the size of the closed genre set.
const NumGenres = 10

// Genres lists every genre in canonical order. Synthesized distributions and
// wire encodings iterate in this order.
var Genres = [NumGenres]Genre{Rock, Pop, Jazz, Classical, HipHop, Electronic, Blues, Country, Metal, Reggae}

type genreInfo struct {
	slug  string
	label string
	color string
}

var genreTable = [NumGenres + 1]genreInfo{
	NoGenre:    {"", "Unknown", "#9CA3AF"},
	Rock:       {"rock", "Rock", "#E11D48"},
	Pop:        {"pop", "Pop", "#EC4899"},
	Jazz:       {"jazz", "Jazz", "#F59E0B"},
	Classical:  {"classical", "Classical", "#A78BFA"},
	HipHop:     {"hiphop", "Hip Hop", "#F97316"},
	Electronic: {"electronic", "Electronic", "#06B6D4"},
	Blues:      {"blues", "Blues", "#3B82F6"},
	Country:    {"country", "Country", "#CA8A04"},
	Metal:      {"metal", "Metal", "#64748B"},
	Reggae:     {"reggae", "Reggae", "#22C55E"},
}

// ParseGenre maps a wire slug to its Genre. Only the exact lower-case slugs
// are accepted; JSON and text decoding go through it.
func ParseGenre(s string) (Genre, error) {
	for _, g := range Genres {
		if genreTable[g].slug == s {
			return g, nil
		}
	}
	return NoGenre, fmt.Errorf("%w: %q", ErrUnknownGenre, s)
}

// ParseGenreFold is ParseGenre for human input: case-insensitive, ignoring
// surrounding whitespace.
func ParseGenreFold(s string) (Genre, error) {
	g, err := ParseGenre(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return NoGenre, fmt.Errorf("%w: %q", ErrUnknownGenre, s)
	}
	return g, nil
}

// Valid reports whether g belongs to the closed set.
func (g Genre) Valid() bool {
	return g >= Rock && g <= Reggae
}

// String returns the wire slug, e.g. "hiphop".
func (g Genre) String() string {
	if !g.Valid() {
		return fmt.Sprintf("Genre(%d)", uint8(g))
	}
	return genreTable[g].slug
}

// Label returns the display name, e.g. "Hip Hop".
func (g Genre) Label() string {
	if !g.Valid() {
		return genreTable[NoGenre].label
	}
	return genreTable[g].label
}

// Color returns the display color as a hex string.
func (g Genre) Color() string {
	if !g.Valid() {
		return genreTable[NoGenre].color
	}
	return genreTable[g].color
}

func (g Genre) index() int {
	return int(g) - 1
}

func (g Genre) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGenre, uint8(g))
	}
	return []byte(genreTable[g].slug), nil
}

func (g *Genre) UnmarshalText(text []byte) error {
	parsed, err := ParseGenre(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

func (g Genre) MarshalJSON() ([]byte, error) {
	text, err := g.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

func (g *Genre) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("genre must be a string: %w", err)
	}
	return g.UnmarshalText([]byte(s))
}
