package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/rentwheels/fleet-api/internal/auth"
	"github.com/rentwheels/fleet-api/internal/config"
	dbpkg "github.com/rentwheels/fleet-api/internal/db"
	"github.com/rentwheels/fleet-api/internal/logger"
	"github.com/rentwheels/fleet-api/internal/middleware"
	"github.com/rentwheels/fleet-api/internal/routes"
	"github.com/rentwheels/fleet-api/internal/storage"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.ServiceName)

	db := dbpkg.NewDB(cfg, log)

	var denylist auth.TokenDenylist
	if cfg.RedisAddr != "" {
		rd := auth.NewRedisDenylist(cfg.RedisAddr, cfg.RedisPassword)
		if err := rd.Ping(context.Background()); err != nil {
			log.Error("failed to connect redis", logger.Error(err))
			os.Exit(1)
		}
		denylist = rd
	} else {
		log.Warn("REDIS_ADDR not set, using in-process token denylist")
		denylist = auth.NewMemoryDenylist()
	}

	var store storage.Storage
	if cfg.StorageBackend == "s3" {
		store = storage.NewS3Storage(
			cfg.S3Bucket,
			cfg.S3Region,
			cfg.S3Endpoint,
			cfg.S3AccessKey,
			cfg.S3SecretKey,
		)
	} else {
		local, err := storage.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			log.Error("failed to prepare upload directory", logger.Error(err))
			os.Exit(1)
		}
		store = local
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, denylist, store)

	log.Info("server running", logger.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Error("failed to start server", logger.Error(err))
		os.Exit(1)
	}
}
