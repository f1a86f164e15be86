package category

import "time"

// Category is one procurement item category (CATMAT/CATSER style code).
type Category struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
