// file: internals/features/spp/predictor/predictor.go
package predictor

import (
	encoder "sppku_backend/internals/features/spp/encoder"
	model "sppku_backend/internals/features/spp/model"
)

// Predictor memetakan vektor fitur ke tier potongan.
// Implementasi harus aman dipakai bersamaan (read-only setelah dibuat).
type Predictor interface {
	Predict(v encoder.Vector) (model.Tier, error)
}

// Func: adapter fungsi → Predictor (stub di test, model eksternal, dsb)
type Func func(v encoder.Vector) (model.Tier, error)

func (f Func) Predict(v encoder.Vector) (model.Tier, error) { return f(v) }
