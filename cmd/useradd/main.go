package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mdqapps/turnos-api/pkg/auth"
	"github.com/mdqapps/turnos-api/pkg/config"
	"github.com/mdqapps/turnos-api/pkg/database"
	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/repository"
)

func main() {
	// Load .env from project root
	_ = godotenv.Load("../.env")
	_ = godotenv.Load(".env")

	email := flag.String("email", "", "login email of the new user")
	password := flag.String("password", "", "initial password")
	role := flag.String("role", string(models.RoleAdmin), "owner or admin")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: useradd -email <email> -password <password> [-role owner|admin]")
		os.Exit(1)
	}
	if r := models.Role(*role); r != models.RoleOwner && r != models.RoleAdmin {
		fmt.Printf("Error: unknown role %q\n", *role)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	db, err := database.InitDB(database.Options{
		DatabaseURL: cfg.DatabaseURL,
		DataPath:    cfg.DataPath,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	user, err := auth.CreateUser(context.Background(), repository.NewUserRepository(db), *email, *password, models.Role(*role))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created %s user %s (%s)\n", user.Role, user.Email, user.ID)
}
