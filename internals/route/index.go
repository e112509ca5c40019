// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cache "sppku_backend/internals/features/spp/cache"
	predictor "sppku_backend/internals/features/spp/predictor"
	routeDetails "sppku_backend/internals/route/details"
)

var startTime time.Time

// Deps = dependency yang dibangun di main & diteruskan ke route fitur
type Deps struct {
	DB         *gorm.DB
	Predictor  predictor.Predictor
	StatsCache cache.StatsCache
}

func SetupRoutes(app *fiber.App, deps Deps) {
	startTime = time.Now()

	// ===================== BASE =====================
	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, deps.DB)

	// ===================== SPP =====================
	log.Println("[INFO] Mounting SPP routes...")
	api := app.Group("/api")
	routeDetails.SppRoutes(api, deps.DB, deps.Predictor, deps.StatsCache)
}
