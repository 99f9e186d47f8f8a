//go:build !js && !wasm

package genredna

import (
	"fmt"

	"github.com/himanishpuri/GenreDNA/pkg/genredna/catalog"
	"github.com/himanishpuri/GenreDNA/pkg/genredna/storage"
)

// NewSQLiteCatalog loads the catalog stored at dbPath, seeding it with the
// built-in fixtures on first use. The database is closed before returning;
// the catalog is served from memory.
func NewSQLiteCatalog(dbPath string) (*catalog.Catalog, error) {
	db, err := storage.NewDBClient(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if _, err := db.Seed(catalog.DefaultSongs(), catalog.DefaultSamples()); err != nil {
		return nil, fmt.Errorf("seeding catalog: %w", err)
	}

	songs, err := db.ListSongs()
	if err != nil {
		return nil, err
	}
	samples, err := db.ListSamples()
	if err != nil {
		return nil, err
	}
	return catalog.New(songs, samples), nil
}
