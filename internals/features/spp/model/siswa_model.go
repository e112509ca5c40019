// file: internals/features/spp/model/siswa_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// SiswaModel = satu baris tabel siswa (hasil prediksi/penetapan potongan SPP).
type SiswaModel struct {
	ID uint `gorm:"column:id;primaryKey;autoIncrement" json:"id"`

	NIPD string `gorm:"column:nipd;size:50;not null;uniqueIndex:uq_siswa_nipd" json:"nipd"`
	Nama string `gorm:"column:nama;size:150;not null" json:"nama"`

	// label bracket mentah dari form
	PenghasilanAyah string `gorm:"column:penghasilan_ayah;size:80" json:"penghasilan_ayah"`
	PenghasilanIbu  string `gorm:"column:penghasilan_ibu;size:80" json:"penghasilan_ibu"`
	PekerjaanIbu    string `gorm:"column:pekerjaan_ibu;size:60" json:"pekerjaan_ibu"`
	PendidikanIbu   string `gorm:"column:pendidikan_ibu;size:60" json:"pendidikan_ibu"`
	Kelas           string `gorm:"column:kelas;size:10" json:"kelas"`

	PotonganSpp  Tier    `gorm:"column:potongan_spp;size:20;not null;index:idx_siswa_potongan" json:"potongan_spp"`
	SppNormal    int     `gorm:"column:spp_normal;not null;default:0" json:"spp_normal"`
	HarusDibayar float64 `gorm:"column:harus_dibayar;not null;default:0" json:"harus_dibayar"`

	// titik tengah bracket (untuk agregat dashboard)
	PenghasilanAyahNilai float64 `gorm:"column:penghasilan_ayah_nilai;not null;default:0" json:"penghasilan_ayah_nilai"`
	PenghasilanIbuNilai  float64 `gorm:"column:penghasilan_ibu_nilai;not null;default:0" json:"penghasilan_ibu_nilai"`

	// vektor fitur 13 elemen saat keputusan dibuat
	FiturVektor datatypes.JSON `gorm:"column:fitur_vektor" json:"fitur_vektor,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SiswaModel) TableName() string { return "siswa" }
