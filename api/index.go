package handler

import (
	"context"
	"net/http"

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

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("could not load config: %v", err)
	}
	logger.Setup(cfg.LogLevel, nil)

	// Serverless instances have no persistent disk, so DATABASE_URL is expected here
	db, err := database.InitDB(database.Options{
		DatabaseURL: cfg.DatabaseURL,
		DataPath:    cfg.DataPath,
	})
	if err != nil {
		logrus.Fatalf("could not open database: %v", err)
	}
	if err := auth.EnsureAdminExists(context.Background(), repository.NewUserRepository(db), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.New().Errorf("could not bootstrap admin user: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r = handlers.NewRouter(handlers.New(db, cfg.JWTSecret, cfg.Location()))
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
