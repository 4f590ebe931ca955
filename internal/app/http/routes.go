package routes

import (
	artistsapi "gallery-app/internal/api/artists"
	artworksapi "gallery-app/internal/api/artworks"
	exhibitionsapi "gallery-app/internal/api/exhibitions"
	transactionsapi "gallery-app/internal/api/transactions"
	"gallery-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the wired API handlers for route registration.
type Handlers struct {
	Artworks     *artworksapi.Handler
	Artists      *artistsapi.Handler
	Transactions *transactionsapi.Handler
	Exhibitions  *exhibitionsapi.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/")
	api.Use(middleware.SanitizeAndCleanInputMiddleware())

	api.GET("/artworks", h.Artworks.List)
	api.GET("/artworks/meta", h.Artworks.Meta)
	api.GET("/artworks/:id", h.Artworks.Get)
	api.POST("/artworks", h.Artworks.Create)
	api.PUT("/artworks/:id", h.Artworks.Update)
	api.POST("/artworks/search", h.Artworks.Search)

	api.GET("/artists", h.Artists.List)
	api.GET("/artists/:id", h.Artists.Get)
	api.POST("/artists", h.Artists.Create)
	api.PUT("/artists/:id", h.Artists.Update)

	api.GET("/transactions", h.Transactions.List)
	api.GET("/transactions/:id", h.Transactions.Get)
	api.POST("/transactions", h.Transactions.Create)
	api.PUT("/transactions/:id", h.Transactions.Update)
	api.POST("/transactions/:id/return", h.Transactions.RegisterReturn)
	api.GET("/transactions/:id/return", h.Transactions.CheckReturn)

	api.GET("/exhibitions", h.Exhibitions.List)
	api.GET("/exhibitions/:id", h.Exhibitions.Get)
	api.POST("/exhibitions", h.Exhibitions.Create)
	api.PUT("/exhibitions/:id", h.Exhibitions.Update)
	api.POST("/exhibitions/search", h.Exhibitions.Search)

	api.GET("/exhibitions/:id/artworks", h.Exhibitions.ListArtworks)
	api.POST("/exhibitions/:id/artworks", h.Exhibitions.AddArtwork)
	api.DELETE("/exhibitions/:id/artworks/:artworkID", h.Exhibitions.RemoveArtwork)
}
