package main

import (
	"log"
	"os"

	"github.com/amirasyraf/sellhub-golang/internal/database"
	"github.com/amirasyraf/sellhub-golang/internal/handlers"
	"github.com/amirasyraf/sellhub-golang/internal/images"
	"github.com/amirasyraf/sellhub-golang/internal/routes"
	"github.com/joho/godotenv"
)

func main() {
	// --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// --- Image Storage ---
	storagePath := os.Getenv("STORAGE_PATH")
	if storagePath == "" {
		storagePath = "./storage"
	}
	store, err := images.NewStore(storagePath)
	if err != nil {
		log.Fatalf("Failed to initialize image storage at %s: %v", storagePath, err)
	}

	// --- Application Setup ---
	// All dependencies are injected into the Handlers struct.
	app := &handlers.Handlers{
		DB:     db,
		Images: store,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting SellHub API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
