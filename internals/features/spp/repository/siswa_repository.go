// file: internals/features/spp/repository/siswa_repository.go
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "sppku_backend/internals/features/spp/model"
	helper "sppku_backend/internals/helpers"
)

var (
	ErrNotFound = errors.New("data siswa tidak ditemukan")
	ErrConflict = errors.New("NIPD sudah terdaftar")
)

// Stats = ringkasan dashboard
type Stats struct {
	TotalSiswa          int64   `gorm:"column:total_siswa" json:"total_siswa"`
	Bantuan30           int64   `gorm:"column:bantuan_30" json:"bantuan_30"`
	Bantuan50           int64   `gorm:"column:bantuan_50" json:"bantuan_50"`
	Bantuan70           int64   `gorm:"column:bantuan_70" json:"bantuan_70"`
	TidakMenerima       int64   `gorm:"column:tidak_menerima" json:"tidak_menerima"`
	RataRataPenghasilan float64 `gorm:"column:rata_rata_penghasilan" json:"rata_rata_penghasilan"`
}

type SiswaRepository struct {
	DB *gorm.DB
}

func NewSiswaRepository(db *gorm.DB) *SiswaRepository {
	return &SiswaRepository{DB: db}
}

/* ===================== CREATE ===================== */

// Create: cek NIPD + insert dalam satu transaksi. Unique index = penjaga terakhir.
func (r *SiswaRepository) Create(ctx context.Context, m *model.SiswaModel) (uint, error) {
	m.ID = 0
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.SiswaModel{}).
			Where("nipd = ?", m.NIPD).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrConflict
		}
		if err := tx.Create(m).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

/* ===================== READ ===================== */

func (r *SiswaRepository) FindByID(ctx context.Context, id uint) (*model.SiswaModel, error) {
	var m model.SiswaModel
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *SiswaRepository) FindByNIPD(ctx context.Context, nipd string) (*model.SiswaModel, error) {
	var m model.SiswaModel
	if err := r.DB.WithContext(ctx).Where("nipd = ?", nipd).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

/* ===================== UPDATE ===================== */

// Update menimpa semua kolom record id (row di-lock selama transaksi).
func (r *SiswaRepository) Update(ctx context.Context, id uint, m *model.SiswaModel) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var curr model.SiswaModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&curr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var n int64
		if err := tx.Model(&model.SiswaModel{}).
			Where("nipd = ? AND id <> ?", m.NIPD, id).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrConflict
		}

		m.ID = curr.ID
		m.CreatedAt = curr.CreatedAt
		if err := tx.Save(m).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
}

/* ===================== DELETE ===================== */

// Delete idempotent: id tidak ada → nil
func (r *SiswaRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.SiswaModel{}).Error
}

/* ===================== LIST / SEARCH ===================== */

// Search: q kosong → semua; selain itu substring (case-sensitive) di nipd atau nama.
func (r *SiswaRepository) Search(ctx context.Context, q string) ([]model.SiswaModel, error) {
	tx := r.DB.WithContext(ctx).Model(&model.SiswaModel{})
	if q != "" {
		tx = tx.Where(containsClause(r.DB.Dialector.Name()), q, q)
	}

	var rows []model.SiswaModel
	if err := tx.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// substring case-sensitive tanpa wildcard LIKE
func containsClause(dialect string) string {
	switch dialect {
	case "postgres":
		return "strpos(nipd, ?) > 0 OR strpos(nama, ?) > 0"
	default:
		return "instr(nipd, ?) > 0 OR instr(nama, ?) > 0"
	}
}

/* ===================== STATS ===================== */

const statsSQL = `
SELECT
  COUNT(*) AS total_siswa,
  COALESCE(SUM(CASE WHEN potongan_spp = ? THEN 1 ELSE 0 END), 0) AS bantuan_30,
  COALESCE(SUM(CASE WHEN potongan_spp = ? THEN 1 ELSE 0 END), 0) AS bantuan_50,
  COALESCE(SUM(CASE WHEN potongan_spp = ? THEN 1 ELSE 0 END), 0) AS bantuan_70,
  COALESCE(SUM(CASE WHEN potongan_spp = ? THEN 1 ELSE 0 END), 0) AS tidak_menerima,
  COALESCE(AVG(CASE WHEN potongan_spp IN (?, ?, ?)
                    THEN (penghasilan_ayah_nilai + penghasilan_ibu_nilai) / 2.0 END), 0) AS rata_rata_penghasilan
FROM siswa`

// AggregateStats: satu query berparameter untuk seluruh ringkasan dashboard.
func (r *SiswaRepository) AggregateStats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.DB.WithContext(ctx).Raw(statsSQL,
		string(model.Tier30), string(model.Tier50), string(model.Tier70), string(model.TierTidakLayak),
		string(model.Tier30), string(model.Tier50), string(model.Tier70),
	).Scan(&s).Error
	if err != nil {
		return Stats{}, err
	}
	return s, nil
}
