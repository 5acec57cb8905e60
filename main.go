package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsddev/cake-store/config"
	"github.com/hsddev/cake-store/mailer"
	"github.com/hsddev/cake-store/routes"
	"github.com/hsddev/cake-store/store"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	client, err := store.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	st := store.New(client.Database(cfg.MongoDB))

	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images.
	r.Static("/uploads", cfg.UploadDir)

	routes.SetupRoutes(r, routes.Deps{
		Cfg:   cfg,
		Store: st,
		Log:   log,
		Mail:  mailer.NewSMTP(cfg.SMTP),
	})

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
