package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mdqapps/turnos-api/pkg/auth"
	"github.com/mdqapps/turnos-api/pkg/config"
	"github.com/mdqapps/turnos-api/pkg/database"
	"github.com/mdqapps/turnos-api/pkg/handlers"
	"github.com/mdqapps/turnos-api/pkg/logger"
	"github.com/mdqapps/turnos-api/pkg/repository"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("could not load config: %v", err)
	}
	logger.Setup(cfg.LogLevel, nil)
	log := logger.New().WithField("env", cfg.Environment)

	if cfg.IsProduction() || os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(database.Options{
		DatabaseURL: cfg.DatabaseURL,
		DataPath:    cfg.DataPath,
	})
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}

	users := repository.NewUserRepository(db)
	if err := auth.EnsureAdminExists(context.Background(), users, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("could not bootstrap admin user: %v", err)
	}

	h := handlers.New(db, cfg.JWTSecret, cfg.Location())
	r := handlers.NewRouter(h)

	log.WithField("timezone", cfg.Timezone).Infof("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
