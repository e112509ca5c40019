// file: internals/features/spp/encoder/feature_encoder.go
package encoder

import (
	"strconv"
	"strings"
)

const (
	// Lebar & urutan vektor = kontrak dengan model terlatih
	VectorWidth     = 13
	OccupationWidth = 10

	NoIncomeLabel    = "Tidak Berpenghasilan"
	UnknownEducation = -1
)

// Vector = [penghasilan ayah, penghasilan ibu, onehot pekerjaan ibu (10), pendidikan ibu]
type Vector [VectorWidth]float64

/* ===============================
   Vocabulary (urutan index = kontrak)
=================================*/

var occupations = [OccupationWidth]string{
	"Tidak Bekerja",
	"Karyawan Swasta",
	"Wiraswasta",
	"PNS/TNI/Polri",
	"Petani",
	"Pedagang Kecil",
	"TKI",
	"Buruh",
	"Wirausaha",
	"Lainnya",
}

var educationLevels = [...]string{
	"Tidak diketahui",
	"SD / sederajat",
	"SMP / sederajat",
	"SMA / sederajat",
	"D1",
	"D2",
	"D3",
	"D4",
	"S1",
	"S2",
}

var incomeBrackets = [...]string{
	"Kurang dari Rp. 500,000",
	"Rp. 500,000 - Rp. 999,999",
	"Rp. 1,000,000 - Rp. 1,999,999",
	"Rp. 2,000,000 - Rp. 4,999,999",
	"Rp. 5,000,000 - Rp. 20,000,000",
	"Lebih dari Rp. 20,000,000",
	NoIncomeLabel,
}

var (
	occupationIndex = indexOf(occupations[:])
	educationIndex  = indexOf(educationLevels[:])
)

func indexOf(labels []string) map[string]int {
	m := make(map[string]int, len(labels))
	for i, l := range labels {
		m[l] = i
	}
	return m
}

// Occupations: label pekerjaan sesuai urutan one-hot
func Occupations() []string { return append([]string(nil), occupations[:]...) }

// EducationLevels: label pendidikan sesuai urutan ordinal
func EducationLevels() []string { return append([]string(nil), educationLevels[:]...) }

// IncomeBrackets: opsi bracket penghasilan di form
func IncomeBrackets() []string { return append([]string(nil), incomeBrackets[:]...) }

/* ===============================
   Encoding
=================================*/

// IncomeToNumeric mengubah label bracket jadi titik tengah.
// "Rp. 1,000,000 - Rp. 1,999,999" → 1499999.5
// Label open-ended / rusak / kosong → 0 (tanpa error).
func IncomeToNumeric(bracket string) float64 {
	if bracket == NoIncomeLabel {
		return 0
	}

	cleaned := strings.ReplaceAll(bracket, "Rp. ", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	parts := strings.Split(cleaned, " - ")
	if len(parts) != 2 {
		return 0
	}

	lo, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0
	}
	hi, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0
	}
	return (float64(lo) + float64(hi)) / 2
}

// EncodeOccupation: one-hot 10 slot, label tak dikenal → slot 0 (Tidak Bekerja)
func EncodeOccupation(label string) [OccupationWidth]float64 {
	var out [OccupationWidth]float64
	idx, ok := occupationIndex[label]
	if !ok {
		idx = 0
	}
	out[idx] = 1
	return out
}

// EncodeEducation: ordinal 0..9, tak dikenal → -1
func EncodeEducation(label string) int {
	if idx, ok := educationIndex[label]; ok {
		return idx
	}
	return UnknownEducation
}

// BuildFeatureVector merakit vektor 13 elemen untuk predictor.
func BuildFeatureVector(penghasilanAyah, penghasilanIbu, pekerjaanIbu, pendidikanIbu string) Vector {
	var v Vector
	v[0] = IncomeToNumeric(penghasilanAyah)
	v[1] = IncomeToNumeric(penghasilanIbu)

	oh := EncodeOccupation(pekerjaanIbu)
	copy(v[2:2+OccupationWidth], oh[:])

	v[2+OccupationWidth] = float64(EncodeEducation(pendidikanIbu))
	return v
}
