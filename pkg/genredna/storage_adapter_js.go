//go:build js && wasm

package genredna

import (
	"errors"

	"github.com/himanishpuri/GenreDNA/pkg/genredna/catalog"
)

// NewSQLiteCatalog is unavailable in the browser build.
func NewSQLiteCatalog(dbPath string) (*catalog.Catalog, error) {
	return nil, errors.New("sqlite catalog is not supported on js/wasm")
}
