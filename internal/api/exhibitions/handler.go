package exhibitions

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gallery-app/internal/api/respond"
	"gallery-app/internal/services"
)

type Handler struct {
	Exhibitions *services.ExhibitionService
}

func NewHandler(exhibitions *services.ExhibitionService) *Handler {
	return &Handler{Exhibitions: exhibitions}
}

type ExhibitionRequest struct {
	Name        string `json:"name"`
	Theme       string `json:"theme"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

type SearchRequest struct {
	Name     string `json:"name"`
	Theme    string `json:"theme"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

type AddArtworkRequest struct {
	ArtworkID uint   `json:"artwork_id" binding:"required"`
	Note      string `json:"note"`
}

func (h *Handler) List(c *gin.Context) {
	out, err := h.Exhibitions.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exhibitions"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ex, found := h.Exhibitions.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exposição não encontrada."})
		return
	}
	c.JSON(http.StatusOK, ex)
}

func (h *Handler) Create(c *gin.Context) {
	var req ExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond.Created(c, h.Exhibitions.Save(0, toInput(req)))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond.Result(c, h.Exhibitions.Save(id, toInput(req)))
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.Exhibitions.Search(services.ExhibitionFilters{
		Name:     req.Name,
		Theme:    req.Theme,
		Location: req.Location,
		Status:   req.Status,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search exhibitions"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListArtworks(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.Exhibitions.ListArtworks(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load participations"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) AddArtwork(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AddArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond.Created(c, h.Exhibitions.AddArtwork(id, req.ArtworkID, req.Note))
}

func (h *Handler) RemoveArtwork(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	artworkID, ok := pathID(c, "artworkID")
	if !ok {
		return
	}
	respond.Result(c, h.Exhibitions.RemoveArtwork(id, artworkID))
}

func toInput(req ExhibitionRequest) services.ExhibitionInput {
	return services.ExhibitionInput{
		Name:        req.Name,
		Theme:       req.Theme,
		Location:    req.Location,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
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
