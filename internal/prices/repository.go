package prices

import (
	"context"
	"time"
)

// Store defines the data-access contract for raw contract prices.
type Store interface {
	// QueryByCategoryAndWindow returns samples with price > 0 for one
	// category inside [start, end]. An empty region matches all regions
	// (used for the national aggregate).
	QueryByCategoryAndWindow(
		ctx context.Context,
		categoryID string,
		start, end time.Time,
		region string,
	) ([]ContractPrice, error)

	Insert(ctx context.Context, sample *ContractPrice) error
}
