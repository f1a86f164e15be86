package category

import (
	"context"

	"github.com/google/uuid"
)

type InMemoryCatalog struct {
	byID   map[string]*Category
	byCode map[string]*Category
	order  []string
}

func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{
		byID:   make(map[string]*Category),
		byCode: make(map[string]*Category),
	}
}

func (r *InMemoryCatalog) Add(c *Category) *Category {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.byID[c.ID] = c
	r.byCode[c.Code] = c
	r.order = append(r.order, c.ID)
	return c
}

func (r *InMemoryCatalog) FindByID(ctx context.Context, id string) (*Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *InMemoryCatalog) FindByCode(ctx context.Context, code string) (*Category, error) {
	c, ok := r.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *InMemoryCatalog) ListActive(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	for _, id := range r.order {
		if c := r.byID[id]; c.Active {
			categories = append(categories, c)
		}
	}
	return categories, nil
}
