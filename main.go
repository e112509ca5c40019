package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"sppku_backend/internals/configs"
	database "sppku_backend/internals/databases"
	sppCache "sppku_backend/internals/features/spp/cache"
	"sppku_backend/internals/features/spp/predictor"
	helper "sppku_backend/internals/helpers"
	middlewares "sppku_backend/internals/middlewares"
	routes "sppku_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR proxy jika perlu
	})

	middlewares.SetupMiddlewares(app)

	// 🧠 model prediksi dimuat sekali, immutable
	tree, err := predictor.LoadDecisionTree(configs.ModelPath)
	if err != nil {
		log.Fatalf("❌ Gagal memuat model: %v", err)
	}
	log.Printf("✅ Model dimuat (%d node, kelas %v)", tree.NodeCount(), tree.Classes())

	// 🔌 DB connect + migrasi + pool + warm-up
	database.ConnectDB()
	database.AutoMigrateIfEnabled()
	database.TunePool()
	database.WarmUpQueries()

	// 🧊 cache dashboard (opsional)
	rdb := configs.ConnectRedis()
	statsCache := sppCache.New(rdb, configs.StatsCacheTTL)

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		DB:         database.DB,
		Predictor:  tree,
		StatsCache: statsCache,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB & redis
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("👋 Server berhenti.")
}
