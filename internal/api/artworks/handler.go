package artworks

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gallery-app/internal/api/respond"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/services"
)

type Handler struct {
	Artworks *services.ArtworkService
	Reports  *services.ReportService
}

func NewHandler(artworks *services.ArtworkService, reports *services.ReportService) *Handler {
	return &Handler{Artworks: artworks, Reports: reports}
}

func (h *Handler) List(c *gin.Context) {
	arts, err := h.Artworks.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}
	c.JSON(http.StatusOK, arts)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, found := h.Artworks.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada."})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) Create(c *gin.Context) {
	var req ArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond.Created(c, h.Artworks.Create(toInput(req)))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond.Result(c, h.Artworks.Update(id, toInput(req)))
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	arts, err := h.Reports.SearchArtworks(services.ReportFilters{
		Title:        req.Title,
		Year:         req.Year,
		Technique:    req.Technique,
		Category:     req.Category,
		Status:       req.Status,
		Location:     req.Location,
		Price:        req.Price,
		RegisteredAt: req.RegisteredAt,
		Artists:      req.Artists,
		Clients:      req.Clients,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, arts)
}

// Meta serves the dropdown values of the cataloguing form.
func (h *Handler) Meta(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": catalog.Categories(),
		"statuses":   catalog.AllStatuses(),
	})
}

func toInput(req ArtworkRequest) services.ArtworkInput {
	return services.ArtworkInput{
		Title:      req.Title,
		Year:       req.Year,
		Artists:    req.Artists,
		Category:   req.Category,
		Technique:  req.Technique,
		Dimensions: req.Dimensions,
		Location:   req.Location,
		Price:      req.Price,
		ImageRef:   req.ImageRef,
	}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
