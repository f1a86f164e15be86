package router

import (
	"time"

	"github.com/CONFENGE/etp-express-sub002/internal/benchmark"
	"github.com/CONFENGE/etp-express-sub002/internal/comparison"
	"github.com/CONFENGE/etp-express-sub002/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	benchmarkHandler *benchmark.Handler,
	comparisonHandler *comparison.Handler,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── BENCHMARK ROUTES ─────────────────────────
	benchmarks := r.Group("/benchmarks")
	{
		benchmarks.GET("", benchmarkHandler.List)
		benchmarks.GET("/stats", benchmarkHandler.GetSummary)
		benchmarks.GET("/:category", benchmarkHandler.GetByCategory)
		benchmarks.GET("/:category/regional", benchmarkHandler.GetRegionalBreakdown)
	}

	// ───────────────────────── COMPARISON ─────────────────────────
	r.GET("/compare", comparisonHandler.Compare)

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdminToken())
	{
		admin.POST("/benchmarks/recalculate", benchmarkHandler.Recalculate)
	}

	return r
}
