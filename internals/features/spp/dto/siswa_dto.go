// file: internals/features/spp/dto/siswa_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"

	encoder "sppku_backend/internals/features/spp/encoder"
	fee "sppku_backend/internals/features/spp/fee"
	model "sppku_backend/internals/features/spp/model"
	service "sppku_backend/internals/features/spp/service"
)

/* =========================================================
   REQUEST: Prediksi (tanpa simpan)
   ========================================================= */

// Field sosial-ekonomi sengaja tidak divalidasi ketat: nilai tak dikenal punya fallback.
type PrediksiRequest struct {
	PenghasilanAyah string `json:"penghasilan_ayah" validate:"max=80"`
	PenghasilanIbu  string `json:"penghasilan_ibu"  validate:"max=80"`
	PekerjaanIbu    string `json:"pekerjaan_ibu"    validate:"max=60"`
	PendidikanIbu   string `json:"pendidikan_ibu"   validate:"max=60"`
	Kelas           string `json:"kelas"            validate:"max=10"`
}

func (r *PrediksiRequest) ToInput() service.StudentInput {
	return service.StudentInput{
		PenghasilanAyah: r.PenghasilanAyah,
		PenghasilanIbu:  r.PenghasilanIbu,
		PekerjaanIbu:    r.PekerjaanIbu,
		PendidikanIbu:   r.PendidikanIbu,
		Kelas:           strings.TrimSpace(r.Kelas),
	}
}

/* =========================================================
   REQUEST: Siswa (create / update)
   ========================================================= */

type SiswaRequest struct {
	NIPD string `json:"nipd" validate:"required,notblank,max=50"`
	Nama string `json:"nama" validate:"required,notblank,max=150"`
	PrediksiRequest

	// hanya dipakai saat create; kosong → pakai predictor
	PotonganSpp string `json:"potongan_spp" validate:"tier"`
}

func (r *SiswaRequest) Normalize() {
	r.NIPD = strings.TrimSpace(r.NIPD)
	r.Nama = strings.TrimSpace(r.Nama)
	r.Kelas = strings.TrimSpace(r.Kelas)
}

func (r *SiswaRequest) ToInput() service.StudentInput {
	in := r.PrediksiRequest.ToInput()
	in.NIPD = r.NIPD
	in.Nama = r.Nama
	return in
}

/* =========================================================
   RESPONSE
   ========================================================= */

type PrediksiResponse struct {
	PotonganSpp  model.Tier `json:"potongan_spp"`
	Label        string     `json:"label"`
	SppNormal    int        `json:"spp_normal"`
	HarusDibayar float64    `json:"harus_dibayar"`
	FiturVektor  []float64  `json:"fitur_vektor"`
}

func FromPrediction(res service.PredictionResult) PrediksiResponse {
	return PrediksiResponse{
		PotonganSpp:  res.Tier,
		Label:        res.Tier.Label(),
		SppNormal:    res.SppNormal,
		HarusDibayar: res.HarusDibayar,
		FiturVektor:  append([]float64(nil), res.Fitur[:]...),
	}
}

type SiswaResponse struct {
	ID                   uint       `json:"id"`
	NIPD                 string     `json:"nipd"`
	Nama                 string     `json:"nama"`
	PenghasilanAyah      string     `json:"penghasilan_ayah"`
	PenghasilanIbu       string     `json:"penghasilan_ibu"`
	PekerjaanIbu         string     `json:"pekerjaan_ibu"`
	PendidikanIbu        string     `json:"pendidikan_ibu"`
	Kelas                string     `json:"kelas"`
	PotonganSpp          model.Tier `json:"potongan_spp"`
	SppNormal            int        `json:"spp_normal"`
	HarusDibayar         float64    `json:"harus_dibayar"`
	PenghasilanAyahNilai float64    `json:"penghasilan_ayah_nilai"`
	PenghasilanIbuNilai  float64    `json:"penghasilan_ibu_nilai"`
	FiturVektor          []float64  `json:"fitur_vektor,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func FromModel(m *model.SiswaModel) SiswaResponse {
	resp := SiswaResponse{
		ID:                   m.ID,
		NIPD:                 m.NIPD,
		Nama:                 m.Nama,
		PenghasilanAyah:      m.PenghasilanAyah,
		PenghasilanIbu:       m.PenghasilanIbu,
		PekerjaanIbu:         m.PekerjaanIbu,
		PendidikanIbu:        m.PendidikanIbu,
		Kelas:                m.Kelas,
		PotonganSpp:          m.PotonganSpp,
		SppNormal:            m.SppNormal,
		HarusDibayar:         m.HarusDibayar,
		PenghasilanAyahNilai: m.PenghasilanAyahNilai,
		PenghasilanIbuNilai:  m.PenghasilanIbuNilai,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	// vektor rusak → dilewati saja
	if len(m.FiturVektor) > 0 {
		var v []float64
		if err := sonic.Unmarshal(m.FiturVektor, &v); err == nil {
			resp.FiturVektor = v
		}
	}
	return resp
}

func FromModels(rows []model.SiswaModel) []SiswaResponse {
	out := make([]SiswaResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

/* =========================================================
   RESPONSE: opsi form
   ========================================================= */

type OpsiResponse struct {
	PenghasilanOrtu []string     `json:"penghasilan_ortu"`
	PekerjaanIbu    []string     `json:"pekerjaan_ibu"`
	PendidikanIbu   []string     `json:"pendidikan_ibu"`
	Kelas           []string     `json:"kelas"`
	PotonganSpp     []model.Tier `json:"potongan_spp"`
}

func NewOpsiResponse() OpsiResponse {
	return OpsiResponse{
		PenghasilanOrtu: encoder.IncomeBrackets(),
		PekerjaanIbu:    encoder.Occupations(),
		PendidikanIbu:   encoder.EducationLevels(),
		Kelas:           fee.Classes(),
		PotonganSpp:     append([]model.Tier(nil), model.AllTiers...),
	}
}
