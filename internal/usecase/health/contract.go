package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogSizer reports how many records the loaded catalog holds.
type CatalogSizer interface {
	Len() int
}
