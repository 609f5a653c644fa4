// Package dataset ships the built-in aircraft catalog.
package dataset

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/kailas-cloud/acdex/internal/catalog"
	domac "github.com/kailas-cloud/acdex/internal/domain/aircraft"
	repo "github.com/kailas-cloud/acdex/internal/repository/aircraft"
)

//go:embed aircraft.yaml
var aircraftYAML []byte

// Records decodes the embedded dataset.
func Records() ([]domac.Aircraft, error) {
	records, err := repo.Decode(bytes.NewReader(aircraftYAML), repo.FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return records, nil
}

// Load builds a fresh catalog from the embedded dataset.
func Load() (*catalog.Catalog, error) {
	records, err := Records()
	if err != nil {
		return nil, err
	}
	return catalog.New(records)
}

var defaultCatalog = sync.OnceValues(Load)

// Default returns the process-wide catalog built from the embedded dataset.
// It is built on first use and shared afterwards.
func Default() (*catalog.Catalog, error) {
	return defaultCatalog()
}

// MustDefault is Default that panics if the embedded dataset is broken.
func MustDefault() *catalog.Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}
