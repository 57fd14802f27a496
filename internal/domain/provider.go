package domain

import "context"

// MacroProvider is one step of the simple-flow fallback chain. Providers
// are tried in fixed priority order; an unconfigured provider is skipped
// and an error or empty record advances the chain to the next source.
type MacroProvider interface {
	// Name is the source tag reported on a successful resolution.
	Name() string

	// Configured reports whether the provider has the credentials it
	// needs to be contacted at all.
	Configured() bool

	// Lookup resolves the query to a macro record, or ErrNoMatch when
	// the provider is reachable but has nothing for it.
	Lookup(ctx context.Context, query string) (*NutrientRecord, error)
}

// FDCClient is the structured-provider surface the detailed flow drives:
// separate search and per-item detail endpoints.
type FDCClient interface {
	Configured() bool
	Search(ctx context.Context, query string, includeSurvey bool) (*FDCSearchResponse, error)
	FoodDetail(ctx context.Context, fdcID int64) (*FDCFoodDetail, error)
}
