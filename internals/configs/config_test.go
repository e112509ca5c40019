package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gormLogger "gorm.io/gorm/logger"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SPP_TEST_KEY", "isi")
	assert.Equal(t, "isi", GetEnv("SPP_TEST_KEY", "default"))
	assert.Equal(t, "default", GetEnv("SPP_TEST_KEY_TIDAK_ADA", "default"))
	assert.Equal(t, "", GetEnv("SPP_TEST_KEY_TIDAK_ADA"))

	// diset kosong tetap dianggap ada
	t.Setenv("SPP_TEST_KOSONG", "")
	assert.Equal(t, "", GetEnv("SPP_TEST_KOSONG", "default"))
}

func TestGetBool(t *testing.T) {
	t.Setenv("SPP_BOOL", "yes")
	assert.True(t, GetBool("SPP_BOOL", false))
	t.Setenv("SPP_BOOL", "0")
	assert.False(t, GetBool("SPP_BOOL", true))
	t.Setenv("SPP_BOOL", "ngawur")
	assert.True(t, GetBool("SPP_BOOL", true))
	assert.True(t, GetBool("SPP_BOOL_TIDAK_ADA", true))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("SPP_TTL", "90s")
	assert.Equal(t, 90*time.Second, GetDuration("SPP_TTL", time.Minute))
	t.Setenv("SPP_TTL", "45")
	assert.Equal(t, 45*time.Second, GetDuration("SPP_TTL", time.Minute))
	t.Setenv("SPP_TTL", "lama")
	assert.Equal(t, time.Minute, GetDuration("SPP_TTL", time.Minute))
}

func TestParseGormLevel(t *testing.T) {
	assert.Equal(t, gormLogger.Silent, parseGormLevel("silent"))
	assert.Equal(t, gormLogger.Info, parseGormLevel(" INFO "))
	assert.Equal(t, gormLogger.Warn, parseGormLevel(""))
}
