// file: internals/features/spp/route/spp_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cache "sppku_backend/internals/features/spp/cache"
	sppController "sppku_backend/internals/features/spp/controller"
	predictor "sppku_backend/internals/features/spp/predictor"
	repository "sppku_backend/internals/features/spp/repository"
	service "sppku_backend/internals/features/spp/service"
)

// SppRoutes memasang endpoint prediksi & data siswa di bawah r (mis. /api/spp).
func SppRoutes(r fiber.Router, db *gorm.DB, p predictor.Predictor, sc cache.StatsCache) {
	svc := service.NewSiswaService(repository.NewSiswaRepository(db), p, sc)
	ctl := sppController.NewSiswaController(svc)

	r.Post("/prediksi", ctl.Predict)
	r.Get("/dashboard", ctl.Dashboard)
	r.Get("/opsi", ctl.Options)

	siswa := r.Group("/siswa")
	{
		siswa.Get("/", ctl.List)
		siswa.Post("/", ctl.Create)
		siswa.Get("/:id", ctl.GetByID)
		siswa.Put("/:id", ctl.Update)
		siswa.Delete("/:id", ctl.Delete)
	}
}
