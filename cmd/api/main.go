package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/CONFENGE/etp-express-sub002/internal/benchmark"
	"github.com/CONFENGE/etp-express-sub002/internal/category"
	"github.com/CONFENGE/etp-express-sub002/internal/comparison"
	"github.com/CONFENGE/etp-express-sub002/internal/db"
	"github.com/CONFENGE/etp-express-sub002/internal/prices"
	"github.com/CONFENGE/etp-express-sub002/internal/router"
	"github.com/CONFENGE/etp-express-sub002/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"ADMIN_TOKEN",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── REPOS ─────────────────────────
	catalog := category.NewPostgresCatalog(pgDB)
	priceStore := prices.NewPostgresStore(pgDB)
	benchmarkRepo := benchmark.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	guard := benchmark.NewGuard()
	aggregator := benchmark.NewAggregator(catalog, priceStore, benchmarkRepo, guard)
	benchmarkService := benchmark.NewService(catalog, benchmarkRepo)
	comparisonEngine := comparison.NewEngine(catalog, benchmarkRepo)

	// ───────────────────────── HANDLERS ─────────────────────────
	benchmarkHandler := benchmark.NewHandler(benchmarkService, aggregator)
	comparisonHandler := comparison.NewHandler(comparisonEngine)

	r := router.NewRouter(benchmarkHandler, comparisonHandler)

	// ───────────────────────── SCHEDULER ─────────────────────────
	interval := scheduler.DefaultInterval
	if hours := os.Getenv("RECALC_INTERVAL_HOURS"); hours != "" {
		h, err := strconv.Atoi(hours)
		if err != nil || h < 1 {
			log.Fatalf("❌ Invalid RECALC_INTERVAL_HOURS: %s", hours)
		}
		interval = time.Duration(h) * time.Hour
	}

	sched := scheduler.New(aggregator, interval)
	sched.Start()
	defer sched.Stop()

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("🚀 Benchmark API running at http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
