package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	config "github.com/nampd/membership-portal-go/config"
	models "github.com/nampd/membership-portal-go/models"
	routes "github.com/nampd/membership-portal-go/routes"
	services "github.com/nampd/membership-portal-go/services"
	store "github.com/nampd/membership-portal-go/store"
	utils "github.com/nampd/membership-portal-go/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	// --- Storage: MongoDB when configured, seeded in-memory otherwise ---
	var st store.Store
	if cfg.MongoURI != "" {
		client, err := store.Connect(cfg.MongoURI)
		if err != nil {
			log.Fatalf("mongodb connection failed: %v", err)
		}
		defer client.Disconnect(context.Background())

		mongoStore := store.NewMongoStore(client, cfg.DBName)
		if err := mongoStore.SeedIfEmpty(context.Background()); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		st = mongoStore
		log.Printf("using mongodb database %q", cfg.DBName)
	} else {
		st = store.NewSeededMemoryStore()
		log.Println("MONGO_URI not set, using in-memory store with demo data")
	}

	// --- Lifecycle engine + notification collaborator ---
	engine := services.NewEngine(st)
	engine.Subscribe(func(m models.MemberProfile) {
		go utils.NotifyStatusChange(m)
	})

	ocr := utils.NewOCRClient(cfg.OCRAPIURL, cfg.OCRAPIKey, cfg.OCRModel)

	// --- HTTP ---
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "If-None-Match"},
	}))

	routes.SetupRoutes(r, cfg, st, engine, ocr)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
