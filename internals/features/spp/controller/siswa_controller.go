// file: internals/features/spp/controller/siswa_controller.go
package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	dto "sppku_backend/internals/features/spp/dto"
	repository "sppku_backend/internals/features/spp/repository"
	service "sppku_backend/internals/features/spp/service"
	helper "sppku_backend/internals/helpers"
)

type SiswaController struct {
	Svc *service.SiswaService
}

func NewSiswaController(svc *service.SiswaService) *SiswaController {
	return &SiswaController{Svc: svc}
}

// mapping error domain → HTTP
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrConflict):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
}

// parseID: hanya angka non-negatif. id 0 diteruskan (tidak ada record → 404, delete tetap sukses).
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id tidak valid")
	}
	return uint(id), nil
}

/* ===================== PREDIKSI ===================== */

// POST /prediksi
func (ctl *SiswaController) Predict(c *fiber.Ctx) error {
	var req dto.PrediksiRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := dto.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, dto.FieldErrors(err))
	}

	res, err := ctl.Svc.Predict(c.UserContext(), req.ToInput())
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, "Prediksi berhasil", dto.FromPrediction(res))
}

/* ===================== CREATE ===================== */

// POST /siswa
func (ctl *SiswaController) Create(c *fiber.Ctx) error {
	var req dto.SiswaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := dto.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, dto.FieldErrors(err))
	}

	m, err := ctl.Svc.Save(c.UserContext(), req.ToInput(), req.PotonganSpp)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonCreated(c, "Data siswa berhasil disimpan", dto.FromModel(m))
}

/* ===================== LIST ===================== */

// GET /siswa?q=
func (ctl *SiswaController) List(c *fiber.Ctx) error {
	rows, err := ctl.Svc.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows))
}

/* ===================== DETAIL ===================== */

// GET /siswa/:id
func (ctl *SiswaController) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

/* ===================== UPDATE ===================== */

// PUT /siswa/:id (prediksi & biaya dihitung ulang, potongan_spp di body diabaikan)
func (ctl *SiswaController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.SiswaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	req.PotonganSpp = ""
	if err := dto.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, dto.FieldErrors(err))
	}

	m, err := ctl.Svc.Update(c.UserContext(), id, req.ToInput())
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonUpdated(c, "Data siswa berhasil diperbarui", dto.FromModel(m))
}

/* ===================== DELETE ===================== */

// DELETE /siswa/:id (idempotent)
func (ctl *SiswaController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return helper.JsonDeleted(c, "Data siswa berhasil dihapus", fiber.Map{"id": id})
}

/* ===================== DASHBOARD ===================== */

// GET /dashboard
func (ctl *SiswaController) Dashboard(c *fiber.Ctx) error {
	st, err := ctl.Svc.Stats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, "ok", st)
}

// GET /opsi
func (ctl *SiswaController) Options(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", dto.NewOpsiResponse())
}
