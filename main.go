package main

import (
	"log"
	"os"
	"time"

	"gallery-app/config"
	"gallery-app/database"
	artistsapi "gallery-app/internal/api/artists"
	artworksapi "gallery-app/internal/api/artworks"
	exhibitionsapi "gallery-app/internal/api/exhibitions"
	transactionsapi "gallery-app/internal/api/transactions"
	routes "gallery-app/internal/app/http"
	"gallery-app/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}

	engine := services.NewAvailabilityEngine(db, logger)
	txnService := services.NewTransactionService(db, engine, logger)
	txnService.DuplicateKey = services.DuplicateKey(config.TXN_DUPLICATE_KEY)

	h := routes.Handlers{
		Artworks:     artworksapi.NewHandler(services.NewArtworkService(db, logger), services.NewReportService(db, logger)),
		Artists:      artistsapi.NewHandler(services.NewArtistService(db, logger)),
		Transactions: transactionsapi.NewHandler(txnService),
		Exhibitions:  exhibitionsapi.NewHandler(services.NewExhibitionService(db, engine, logger)),
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, h)

	r.Run(":" + config.PORT)
}
