// file: internals/features/spp/fee/fee_calculator.go
package fee

import (
	model "sppku_backend/internals/features/spp/model"
)

// Tarif SPP normal per kelas (rupiah/bulan)
const (
	FeeKelas10    = 600000
	FeeKelas11_12 = 550000
)

var classFees = map[string]int{
	"10": FeeKelas10,
	"11": FeeKelas11_12,
	"12": FeeKelas11_12,
}

// faktor bayar (1 - potongan)
var payFactor = map[model.Tier]float64{
	model.Tier30: 0.7,
	model.Tier50: 0.5,
	model.Tier70: 0.3,
}

type Result struct {
	SppNormal    int     `json:"spp_normal"`
	HarusDibayar float64 `json:"harus_dibayar"`
}

// Classes: kelas yang punya tarif
func Classes() []string { return []string{"10", "11", "12"} }

// NormalFee: kelas di luar 10/11/12 → 0
func NormalFee(kelas string) int {
	return classFees[kelas]
}

// AmountDue menerapkan potongan ke tarif normal.
// Tier boleh berprefix "Potongan ". Tidak Layak / tak dikenal → tarif normal.
func AmountDue(normalFee int, tier model.Tier) float64 {
	f, ok := payFactor[model.NormalizeTier(string(tier))]
	if !ok {
		return float64(normalFee)
	}
	return float64(normalFee) * f
}

func Compute(kelas string, tier model.Tier) Result {
	normal := NormalFee(kelas)
	return Result{
		SppNormal:    normal,
		HarusDibayar: AmountDue(normal, tier),
	}
}
