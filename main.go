package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artikel/analytics"
	"artikel/auth"
	"artikel/blog"
	"artikel/cache"
	"artikel/config"
	"artikel/mockapi"
	"artikel/server"
	"artikel/store"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	db, err := store.Open(cfg.SQLiteDB)
	if err != nil {
		log.Fatalw("failed to open database", "path", cfg.SQLiteDB, "error", err)
	}
	log.Infow("opened database", "path", cfg.SQLiteDB)

	analyticsModule := analytics.NewModule(db.Gorm(), log)

	backend := mockapi.New(db, mockapi.WithTokenCodec(auth.JWTCodec{
		Secret: []byte(cfg.JWTSecret),
	}))

	router := gin.Default()

	pageCache := cache.New(cfg.CacheDir, cfg.CacheTTL)
	router.Use(pageCache.Middleware())

	apiModule := server.NewModule(backend, analyticsModule, pageCache, log)
	apiModule.RegisterRoutes(router)

	blogModule := blog.NewModule(backend, analyticsModule, log)
	blogModule.RegisterRoutes(router)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/read")
	})

	log.Infow("starting server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalw("server exited", "error", err)
	}
}
