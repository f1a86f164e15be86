package prices

import "time"

// ContractPrice is one raw historical price sample. Rows are written by
// the external ingestion pipeline (and the seed tool); this engine only
// reads them.
type ContractPrice struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	Price        float64   `json:"price"`
	Unit         string    `json:"unit"`
	Region       string    `json:"region"`
	ContractDate time.Time `json:"contract_date"`
}
