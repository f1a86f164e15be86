// Seed loads a JSON fixture of categories and contract prices into the
// database so a fresh deployment has samples to benchmark. The real
// ingestion pipeline lives in the main ETP-Express API; this tool only
// covers local and staging setups.
//
// Usage: seed <fixture.json>
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/CONFENGE/etp-express-sub002/internal/db"
	"github.com/CONFENGE/etp-express-sub002/internal/prices"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type fixture struct {
	Categories []struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"categories"`
	Prices []struct {
		CategoryCode string  `json:"category_code"`
		Price        float64 `json:"price"`
		Unit         string  `json:"unit"`
		Region       string  `json:"region"`
		ContractDate string  `json:"contract_date"` // YYYY-MM-DD
	} `json:"prices"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, using environment variables")
	}

	if len(os.Args) != 2 {
		log.Fatal("Usage: seed <fixture.json>")
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	var f fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		log.Fatal("Invalid fixture:", err)
	}

	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	ctx := context.Background()
	priceStore := prices.NewPostgresStore(pgDB)

	// Categories first; remember code -> id for the price rows.
	categoryIDs := make(map[string]string, len(f.Categories))

	for _, c := range f.Categories {
		id := uuid.New().String()

		err := pgDB.QueryRow(ctx, `
			INSERT INTO categories (id, code, name, active)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (code)
			DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, id, c.Code, c.Name).Scan(&id)
		if err != nil {
			log.Fatalf("Seeding category %s failed: %v", c.Code, err)
		}

		categoryIDs[c.Code] = id
	}

	seeded := 0

	for _, p := range f.Prices {
		categoryID, ok := categoryIDs[p.CategoryCode]
		if !ok {
			log.Fatalf("Price references unknown category code %s", p.CategoryCode)
		}

		contractDate, err := time.Parse("2006-01-02", p.ContractDate)
		if err != nil {
			log.Fatalf("Invalid contract_date %q: %v", p.ContractDate, err)
		}

		err = priceStore.Insert(ctx, &prices.ContractPrice{
			CategoryID:   categoryID,
			Price:        p.Price,
			Unit:         p.Unit,
			Region:       p.Region,
			ContractDate: contractDate,
		})
		if err != nil {
			log.Fatalf("Seeding price failed: %v", err)
		}
		seeded++
	}

	log.Printf("✅ Seeded %d categories and %d prices", len(f.Categories), seeded)
}
