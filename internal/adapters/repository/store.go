// Package repository loads the Pokédex CSV into an immutable dataset.
package repository

import (
	"context"

	"github.com/okian/pokedex/internal/domain/dataset"
)

// Store hands out the dataset loaded at startup.
type Store interface {
	// Dataset returns the loaded table; never nil, possibly empty.
	Dataset(ctx context.Context) *dataset.Dataset
	// LoadErr reports why the table is empty, or nil when loading succeeded.
	LoadErr() error
}
