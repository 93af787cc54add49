package memory

import (
	"context"
	"strings"
)

// NewArchive creates a postgres-backed transcript archive when configured,
// otherwise in-memory.
func NewArchive(ctx context.Context, databaseURL string) (Archive, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewInMemoryArchive(), nil
	}
	return NewPostgresArchive(ctx, databaseURL)
}
