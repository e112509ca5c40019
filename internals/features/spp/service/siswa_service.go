// file: internals/features/spp/service/siswa_service.go
package service

import (
	"context"
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	cache "sppku_backend/internals/features/spp/cache"
	encoder "sppku_backend/internals/features/spp/encoder"
	fee "sppku_backend/internals/features/spp/fee"
	model "sppku_backend/internals/features/spp/model"
	predictor "sppku_backend/internals/features/spp/predictor"
	repository "sppku_backend/internals/features/spp/repository"
)

// Store = operasi penyimpanan yang dipakai service (diimplementasi SiswaRepository)
type Store interface {
	Create(ctx context.Context, m *model.SiswaModel) (uint, error)
	FindByID(ctx context.Context, id uint) (*model.SiswaModel, error)
	Update(ctx context.Context, id uint, m *model.SiswaModel) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, q string) ([]model.SiswaModel, error)
	AggregateStats(ctx context.Context) (repository.Stats, error)
}

// StudentInput = field mentah dari form
type StudentInput struct {
	NIPD            string
	Nama            string
	PenghasilanAyah string
	PenghasilanIbu  string
	PekerjaanIbu    string
	PendidikanIbu   string
	Kelas           string
}

func (in StudentInput) Vector() encoder.Vector {
	return encoder.BuildFeatureVector(in.PenghasilanAyah, in.PenghasilanIbu, in.PekerjaanIbu, in.PendidikanIbu)
}

type PredictionResult struct {
	Tier         model.Tier
	SppNormal    int
	HarusDibayar float64
	Fitur        encoder.Vector
}

type SiswaService struct {
	store     Store
	predictor predictor.Predictor
	cache     cache.StatsCache
}

func NewSiswaService(store Store, p predictor.Predictor, c cache.StatsCache) *SiswaService {
	if c == nil {
		c = cache.NoopStatsCache{}
	}
	return &SiswaService{store: store, predictor: p, cache: c}
}

/* ===================== PREDIKSI ===================== */

// Predict: encode → predict → hitung biaya. Tidak menyimpan apa pun.
func (s *SiswaService) Predict(ctx context.Context, in StudentInput) (PredictionResult, error) {
	v := in.Vector()
	tier, err := s.predictor.Predict(v)
	if err != nil {
		return PredictionResult{}, fmt.Errorf("prediksi: %w", err)
	}
	tier = model.NormalizeTier(string(tier))
	fees := fee.Compute(in.Kelas, tier)
	return PredictionResult{
		Tier:         tier,
		SppNormal:    fees.SppNormal,
		HarusDibayar: fees.HarusDibayar,
		Fitur:        v,
	}, nil
}

/* ===================== SIMPAN ===================== */

// Save menyimpan record baru. tier kosong → jalankan predictor.
// NIPD yang sudah ada → repository.ErrConflict.
func (s *SiswaService) Save(ctx context.Context, in StudentInput, tierLabel string) (*model.SiswaModel, error) {
	v := in.Vector()
	tier := model.NormalizeTier(tierLabel)
	if tier == "" {
		p, err := s.predictor.Predict(v)
		if err != nil {
			return nil, fmt.Errorf("prediksi: %w", err)
		}
		tier = model.NormalizeTier(string(p))
	}

	m, err := buildRecord(in, tier, v)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return m, nil
}

/* ===================== UPDATE ===================== */

// Update: encode ulang, prediksi ulang, hitung ulang biaya, timpa record id.
func (s *SiswaService) Update(ctx context.Context, id uint, in StudentInput) (*model.SiswaModel, error) {
	res, err := s.Predict(ctx, in)
	if err != nil {
		return nil, err
	}
	m, err := buildRecord(in, res.Tier, res.Fitur)
	if err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, id, m); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return m, nil
}

/* ===================== READ / DELETE ===================== */

func (s *SiswaService) Get(ctx context.Context, id uint) (*model.SiswaModel, error) {
	return s.store.FindByID(ctx, id)
}

func (s *SiswaService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *SiswaService) List(ctx context.Context, q string) ([]model.SiswaModel, error) {
	return s.store.Search(ctx, q)
}

/* ===================== DASHBOARD ===================== */

// Stats: cache-aside per versi. Versi dibaca sebelum agregasi, jadi hasil yang
// dihitung sebelum tulisan bersamaan hanya tersimpan di versi lama. Error cache dicatat lalu diabaikan.
func (s *SiswaService) Stats(ctx context.Context) (repository.Stats, error) {
	ver, err := s.cache.Version(ctx)
	if err != nil {
		log.Printf("[CACHE] versi stats gagal: %v", err)
		return s.store.AggregateStats(ctx)
	}

	if cached, hit, err := s.cache.Get(ctx, ver); err != nil {
		log.Printf("[CACHE] get stats gagal: %v", err)
	} else if hit {
		return *cached, nil
	}

	st, err := s.store.AggregateStats(ctx)
	if err != nil {
		return repository.Stats{}, err
	}
	if err := s.cache.Set(ctx, ver, st); err != nil {
		log.Printf("[CACHE] set stats gagal: %v", err)
	}
	return st, nil
}

func (s *SiswaService) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("[CACHE] invalidate stats gagal: %v", err)
	}
}

/* ===================== Helpers ===================== */

func buildRecord(in StudentInput, tier model.Tier, v encoder.Vector) (*model.SiswaModel, error) {
	fitur, err := sonic.Marshal(v[:])
	if err != nil {
		return nil, fmt.Errorf("encode fitur: %w", err)
	}
	fees := fee.Compute(in.Kelas, tier)
	return &model.SiswaModel{
		NIPD:                 in.NIPD,
		Nama:                 in.Nama,
		PenghasilanAyah:      in.PenghasilanAyah,
		PenghasilanIbu:       in.PenghasilanIbu,
		PekerjaanIbu:         in.PekerjaanIbu,
		PendidikanIbu:        in.PendidikanIbu,
		Kelas:                in.Kelas,
		PotonganSpp:          tier,
		SppNormal:            fees.SppNormal,
		HarusDibayar:         fees.HarusDibayar,
		PenghasilanAyahNilai: v[0],
		PenghasilanIbuNilai:  v[1],
		FiturVektor:          datatypes.JSON(fitur),
	}, nil
}
