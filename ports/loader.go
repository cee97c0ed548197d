package ports

import (
	"context"

	"diabex/domain/dataset"
)

// DatasetLoader reads a named source into a Table.
// Implementations return core.ErrNotFound for a missing source and
// core.ErrParse for malformed content.
type DatasetLoader interface {
	Load(ctx context.Context, source string) (*dataset.Table, error)
}
