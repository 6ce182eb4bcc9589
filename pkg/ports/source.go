package ports

import "context"

// DefinitionSource fetches the raw bytes of a survey definition.
// The ref is any identifier the transport can resolve (URL, path, key).
// Implementations should return *domain.LoadError with the reason filled
// in where they can tell NotFound from TransportFailure; parse failures
// are the loader's concern, not the source's.
type DefinitionSource interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}
