// Package acdex is an embeddable aircraft catalog query engine.
//
// A query names an airframe by numeric id, short code or display name and may
// carry a modifier clause selecting an engine variant and stat adjustments:
//
//	client, _ := acdex.New(ctx)
//	res, err := client.Search(ctx, "b744[1sf]")
//	if errors.Is(err, acdex.ErrNotFound) {
//	    hints, _ := client.Suggest(ctx, "b744[1sf]")
//	    ...
//	}
//
// The shipped dataset is used unless a catalog source is configured with
// WithCatalog, WithCatalogFile or WithRedis.
package acdex
