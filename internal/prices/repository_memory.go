package prices

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type InMemoryStore struct {
	samples []ContractPrice

	// QueryErr, when set, is returned by every query. Used by tests to
	// exercise aggregation failure paths.
	QueryErr error
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (r *InMemoryStore) QueryByCategoryAndWindow(
	ctx context.Context,
	categoryID string,
	start, end time.Time,
	region string,
) ([]ContractPrice, error) {

	if r.QueryErr != nil {
		return nil, r.QueryErr
	}

	var matched []ContractPrice
	for _, s := range r.samples {
		if s.CategoryID != categoryID || s.Price <= 0 {
			continue
		}
		if s.ContractDate.Before(start) || s.ContractDate.After(end) {
			continue
		}
		if region != "" && s.Region != region {
			continue
		}
		matched = append(matched, s)
	}

	return matched, nil
}

func (r *InMemoryStore) Insert(ctx context.Context, sample *ContractPrice) error {
	if sample.ID == "" {
		sample.ID = uuid.New().String()
	}
	r.samples = append(r.samples, *sample)
	return nil
}
