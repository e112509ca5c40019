package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sppku_backend/internals/configs"
	sppModel "sppku_backend/internals/features/spp/model"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var DB *gorm.DB

func ConnectDB() {
	driver := strings.ToLower(configs.GetEnv("DB_DRIVER", DriverPostgres))

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case DriverSQLite:
		path := configs.GetEnv("SQLITE_PATH", "data/siswa.db")
		log.Printf("🔌 Koneksi ke SQLite (%s)...", path)
		db, err = OpenSQLite(path)
	case DriverPostgres:
		log.Println("🔌 Koneksi ke PostgreSQL...")
		db, err = OpenPostgres(postgresDSN())
	default:
		log.Fatalf("❌ DB_DRIVER tidak dikenal: %q (postgres|sqlite)", driver)
	}
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Printf("✅ DB connected (%s).", driver)
}

// Catatan: kalau pakai PgBouncer, arahkan host/port ke PgBouncer dan biarkan PreferSimpleProtocol=true
func postgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=sppku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		configs.GetEnv("DB_PORT", "5432"),
		os.Getenv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "require"),
	)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true, // unique violation → gorm.ErrDuplicatedKey
	}
}

func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), gormConfig())
}

// OpenSQLite: file biasa atau DSN "file:...?mode=memory&cache=shared".
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}
	// sqlite: satu writer, hindari SQLITE_BUSY & database in-memory hilang
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Migrate membuat/menyesuaikan tabel siswa (AutoMigrate).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&sppModel.SiswaModel{})
}

func AutoMigrateIfEnabled() {
	if !configs.GetBool("DB_AUTO_MIGRATE", true) {
		log.Println("⏭️ DB_AUTO_MIGRATE=false, lewati migrasi")
		return
	}
	if err := Migrate(DB); err != nil {
		log.Fatalf("❌ Gagal migrasi: %v", err)
	}
	log.Println("✅ Migrasi tabel siswa selesai.")
}

func TunePool() {
	if DB.Dialector.Name() == DriverSQLite {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	// ⚖️ Sesuaikan dengan limit Postgres/PgBouncer
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool “keisi” & siap
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := Ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
			return
		}
		var n int64
		if err := DB.Model(&sppModel.SiswaModel{}).Count(&n).Error; err != nil {
			log.Printf("warm-up count err: %v", err)
			return
		}
		log.Printf("[INFO] warm-up: %d siswa tersimpan", n)
	}()
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("database belum terkoneksi")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
