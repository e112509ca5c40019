package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "sppku_backend/internals/databases"
	encoder "sppku_backend/internals/features/spp/encoder"
	model "sppku_backend/internals/features/spp/model"
	predictor "sppku_backend/internals/features/spp/predictor"
	repository "sppku_backend/internals/features/spp/repository"
)

/* ===================== fakes ===================== */

type memCache struct {
	ver         int64
	stats       map[int64]repository.Stats
	gets, hits  int
	sets        int
	invalidates int
	failGet     bool
}

func (c *memCache) Version(context.Context) (int64, error) { return c.ver, nil }

func (c *memCache) Get(_ context.Context, ver int64) (*repository.Stats, bool, error) {
	c.gets++
	if c.failGet {
		return nil, false, errors.New("redis down")
	}
	st, ok := c.stats[ver]
	if !ok {
		return nil, false, nil
	}
	c.hits++
	return &st, true, nil
}

func (c *memCache) Set(_ context.Context, ver int64, s repository.Stats) error {
	c.sets++
	if c.stats == nil {
		c.stats = map[int64]repository.Stats{}
	}
	c.stats[ver] = s
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.invalidates++
	c.ver++
	return nil
}

// hookStore menjalankan afterAggregate setelah agregasi selesai, sebelum hasilnya dikembalikan
type hookStore struct {
	Store
	afterAggregate func()
}

func (h *hookStore) AggregateStats(ctx context.Context) (repository.Stats, error) {
	st, err := h.Store.AggregateStats(ctx)
	if h.afterAggregate != nil {
		fn := h.afterAggregate
		h.afterAggregate = nil
		fn()
	}
	return st, err
}

// stub: tier ditentukan dari penghasilan ayah
func stubPredictor(calls *int) predictor.Predictor {
	return predictor.Func(func(v encoder.Vector) (model.Tier, error) {
		*calls++
		switch {
		case v[0] == 0:
			return "Potongan 70%", nil
		case v[0] < 2000000:
			return "Potongan 50%", nil
		default:
			return model.TierTidakLayak, nil
		}
	})
}

func newTestService(t *testing.T) (*SiswaService, *memCache, *int) {
	t.Helper()
	db, err := database.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	calls := 0
	c := &memCache{}
	return NewSiswaService(repository.NewSiswaRepository(db), stubPredictor(&calls), c), c, &calls
}

func input(nipd, nama, ayah, kelas string) StudentInput {
	return StudentInput{
		NIPD:            nipd,
		Nama:            nama,
		PenghasilanAyah: ayah,
		PenghasilanIbu:  "Tidak Berpenghasilan",
		PekerjaanIbu:    "Petani",
		PendidikanIbu:   "SMP / sederajat",
		Kelas:           kelas,
	}
}

/* ===================== tests ===================== */

func TestPredict(t *testing.T) {
	svc, _, calls := newTestService(t)

	res, err := svc.Predict(context.Background(), input("", "", "Rp. 1,000,000 - Rp. 1,999,999", "10"))
	require.NoError(t, err)
	assert.Equal(t, model.Tier50, res.Tier)
	assert.Equal(t, 600000, res.SppNormal)
	assert.InDelta(t, 300000, res.HarusDibayar, 1e-6)
	assert.Equal(t, 1499999.5, res.Fitur[0])
	assert.Equal(t, 1, *calls)

	// tidak menyimpan apa pun
	rows, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPredictUnknownKelas(t *testing.T) {
	svc, _, _ := newTestService(t)

	res, err := svc.Predict(context.Background(), input("", "", "Tidak Berpenghasilan", "9"))
	require.NoError(t, err)
	assert.Equal(t, model.Tier70, res.Tier)
	assert.Equal(t, 0, res.SppNormal)
	assert.Equal(t, 0.0, res.HarusDibayar)
}

func TestPredictPropagatesPredictorError(t *testing.T) {
	boom := errors.New("model rusak")
	svc := NewSiswaService(nil, predictor.Func(func(encoder.Vector) (model.Tier, error) {
		return "", boom
	}), nil)

	_, err := svc.Predict(context.Background(), input("", "", "", "10"))
	assert.ErrorIs(t, err, boom)
}

func TestSaveWithExplicitTier(t *testing.T) {
	svc, c, calls := newTestService(t)
	ctx := context.Background()

	m, err := svc.Save(ctx, input("1001", "Andi", "Rp. 500,000 - Rp. 999,999", "11"), "Potongan 30%")
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.Equal(t, model.Tier30, m.PotonganSpp)
	assert.Equal(t, 550000, m.SppNormal)
	assert.InDelta(t, 385000, m.HarusDibayar, 1e-6)
	assert.Equal(t, 749999.5, m.PenghasilanAyahNilai)
	assert.Equal(t, 0.0, m.PenghasilanIbuNilai)
	assert.Equal(t, 0, *calls)
	assert.Equal(t, 1, c.invalidates)

	var fitur []float64
	require.NoError(t, sonic.Unmarshal(m.FiturVektor, &fitur))
	assert.Len(t, fitur, encoder.VectorWidth)

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rp. 500,000 - Rp. 999,999", got.PenghasilanAyah)
	assert.Equal(t, model.Tier30, got.PotonganSpp)
}

func TestSaveWithoutTierRunsPredictor(t *testing.T) {
	svc, _, calls := newTestService(t)

	m, err := svc.Save(context.Background(), input("1002", "Budi", "Tidak Berpenghasilan", "12"), "  ")
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, model.Tier70, m.PotonganSpp)
	assert.InDelta(t, 165000, m.HarusDibayar, 1e-6)
}

func TestSaveDuplicateNIPD(t *testing.T) {
	svc, c, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, input("1003", "Citra", "", "10"), "50%")
	require.NoError(t, err)

	_, err = svc.Save(ctx, input("1003", "Lain", "", "10"), "30%")
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.Equal(t, 1, c.invalidates)

	rows, err := svc.List(ctx, "1003")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Citra", rows[0].Nama)
}

func TestUpdateRecomputes(t *testing.T) {
	svc, _, calls := newTestService(t)
	ctx := context.Background()

	m, err := svc.Save(ctx, input("2001", "Dewi", "Tidak Berpenghasilan", "10"), "")
	require.NoError(t, err)
	require.Equal(t, model.Tier70, m.PotonganSpp)

	upd, err := svc.Update(ctx, m.ID, input("2001", "Dewi", "Rp. 5,000,000 - Rp. 20,000,000", "11"))
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
	assert.Equal(t, model.TierTidakLayak, upd.PotonganSpp)

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TierTidakLayak, got.PotonganSpp)
	assert.Equal(t, 550000, got.SppNormal)
	assert.InDelta(t, 550000, got.HarusDibayar, 1e-6)
	assert.Equal(t, 12500000.0, got.PenghasilanAyahNilai)
	assert.Equal(t, "Rp. 5,000,000 - Rp. 20,000,000", got.PenghasilanAyah)

	_, err = svc.Update(ctx, 9999, input("x", "y", "", "10"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteIdempotent(t *testing.T) {
	svc, c, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Save(ctx, input("3001", "Eko", "", "10"), "30%")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, m.ID))
	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.Equal(t, 3, c.invalidates)

	_, err = svc.Get(ctx, m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStatsCacheAside(t *testing.T) {
	svc, c, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, input("1", "A", "Rp. 500,000 - Rp. 1,500,000", "10"), "30%")
	require.NoError(t, err)
	_, err = svc.Save(ctx, input("2", "B", "Rp. 1,500,000 - Rp. 2,500,000", "10"), "Potongan 50%")
	require.NoError(t, err)
	_, err = svc.Save(ctx, input("3", "C", "Rp. 5,000,000 - Rp. 20,000,000", "10"), "Tidak Layak")
	require.NoError(t, err)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.TotalSiswa)
	assert.Equal(t, int64(1), st.Bantuan30)
	assert.Equal(t, int64(1), st.Bantuan50)
	assert.Equal(t, int64(0), st.Bantuan70)
	assert.Equal(t, int64(1), st.TidakMenerima)
	// ibu tidak berpenghasilan: ((1jt+0)/2 + (2jt+0)/2) / 2
	assert.InDelta(t, 750000, st.RataRataPenghasilan, 1e-6)
	assert.Equal(t, 1, c.sets)

	// kedua kali dari cache
	st2, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, st, st2)
	assert.Equal(t, 1, c.hits)
	assert.Equal(t, 1, c.sets)

	// tulis → invalidasi → hitung ulang
	_, err = svc.Save(ctx, input("4", "D", "Tidak Berpenghasilan", "10"), "70%")
	require.NoError(t, err)
	st3, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), st3.TotalSiswa)
	assert.Equal(t, 2, c.sets)
}

func TestStatsIgnoresCacheErrors(t *testing.T) {
	svc, c, _ := newTestService(t)
	c.failGet = true

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.Stats{}, st)
}

func TestStatsWriteDuringAggregateIsNotCachedStale(t *testing.T) {
	db, err := database.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	calls := 0
	c := &memCache{}
	store := &hookStore{Store: repository.NewSiswaRepository(db)}
	svc := NewSiswaService(store, stubPredictor(&calls), c)
	ctx := context.Background()

	// simpan terjadi di antara agregasi dan penulisan cache
	store.afterAggregate = func() {
		_, err := svc.Save(ctx, input("1", "A", "Tidak Berpenghasilan", "10"), "70%")
		require.NoError(t, err)
	}

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.TotalSiswa)
	assert.Equal(t, 1, c.invalidates)

	st, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.TotalSiswa)
	assert.Equal(t, int64(1), st.Bantuan70)
}
