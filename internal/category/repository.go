package category

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("category not found")

// Catalog defines the data-access contract.
// Consumers depend ONLY on this interface.
type Catalog interface {
	FindByID(ctx context.Context, id string) (*Category, error)
	FindByCode(ctx context.Context, code string) (*Category, error)
	ListActive(ctx context.Context) ([]*Category, error)
}
