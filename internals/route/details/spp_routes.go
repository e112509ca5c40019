// file: internals/route/details/spp_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cache "sppku_backend/internals/features/spp/cache"
	predictor "sppku_backend/internals/features/spp/predictor"
	SppRoute "sppku_backend/internals/features/spp/route"
)

// /api/spp/*
func SppRoutes(r fiber.Router, db *gorm.DB, p predictor.Predictor, sc cache.StatsCache) {
	SppRoute.SppRoutes(r.Group("/spp"), db, p, sc)
}
