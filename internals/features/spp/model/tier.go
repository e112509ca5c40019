// file: internals/features/spp/model/tier.go
package model

import "strings"

// Tier = keputusan potongan SPP yang disimpan di kolom potongan_spp.
type Tier string

const (
	TierTidakLayak Tier = "Tidak Layak"
	Tier30         Tier = "30%"
	Tier50         Tier = "50%"
	Tier70         Tier = "70%"
)

// Prefix label dari model/form, mis. "Potongan 30%".
const TierLabelPrefix = "Potongan "

// Urutan tetap untuk dashboard & opsi form
var AllTiers = []Tier{Tier30, Tier50, Tier70, TierTidakLayak}

// Tier yang memberi potongan (dipakai rata-rata penghasilan di dashboard)
var DiscountTiers = []Tier{Tier30, Tier50, Tier70}

// NormalizeTier: buang spasi & prefix "Potongan ".
// "Potongan 50%" → "50%", "Tidak Layak" tetap.
func NormalizeTier(s string) Tier {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, TierLabelPrefix)
	return Tier(strings.TrimSpace(s))
}

func (t Tier) Valid() bool {
	switch t {
	case TierTidakLayak, Tier30, Tier50, Tier70:
		return true
	}
	return false
}

func (t Tier) IsDiscount() bool {
	return t == Tier30 || t == Tier50 || t == Tier70
}

// Label untuk tampilan ("Potongan 30%" / "Tidak Layak")
func (t Tier) Label() string {
	if t.IsDiscount() {
		return TierLabelPrefix + string(t)
	}
	return string(t)
}

func (t Tier) String() string { return string(t) }
