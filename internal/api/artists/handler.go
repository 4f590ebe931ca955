package artists

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gallery-app/internal/api/respond"
	"gallery-app/internal/services"
)

type Handler struct {
	Artists *services.ArtistService
}

func NewHandler(artists *services.ArtistService) *Handler {
	return &Handler{Artists: artists}
}

type ArtistRequest struct {
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	Nationality string `json:"nationality"`
	Specialty   string `json:"specialty"`
	Status      string `json:"status"`
	Biography   string `json:"biography"`
}

func (h *Handler) List(c *gin.Context) {
	// Query params narrow the listing; none means everything.
	out, err := h.Artists.Search(services.ArtistFilters{
		Name:        c.Query("name"),
		Nationality: c.Query("nationality"),
		Specialty:   c.Query("specialty"),
		Status:      c.Query("status"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artists"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	a, found := h.Artists.Get(uint(id))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artista não encontrado."})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) Create(c *gin.Context) {
	var req ArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond.Created(c, h.Artists.Create(toInput(req)))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	var req ArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond.Result(c, h.Artists.Update(uint(id), toInput(req)))
}

func toInput(req ArtistRequest) services.ArtistInput {
	return services.ArtistInput{
		Name:        req.Name,
		BirthDate:   req.BirthDate,
		Nationality: req.Nationality,
		Specialty:   req.Specialty,
		Status:      req.Status,
		Biography:   req.Biography,
	}
}
