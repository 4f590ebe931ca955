package transactions

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gallery-app/internal/api/respond"
	"gallery-app/internal/dates"
	"gallery-app/internal/services"
)

type Handler struct {
	Transactions *services.TransactionService
}

func NewHandler(transactions *services.TransactionService) *Handler {
	return &Handler{Transactions: transactions}
}

// TransactionRequest carries the form fields. Artworks accept ids or
// titles, the way the forms always sent them.
type TransactionRequest struct {
	Client   string   `json:"client"`
	Value    string   `json:"value"`
	Type     string   `json:"type"`
	Date     string   `json:"date"`
	Notes    string   `json:"notes"`
	Artworks []string `json:"artworks"`
}

type ReturnRequest struct {
	Date     string   `json:"date"`
	Notes    string   `json:"notes"`
	Artworks []string `json:"artworks"`
}

func (h *Handler) List(c *gin.Context) {
	out, err := h.Transactions.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, found := h.Transactions.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transação não encontrada."})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) Create(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond.Created(c, h.Transactions.Create(toInput(req)))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond.Result(c, h.Transactions.Update(id, toInput(req)))
}

func (h *Handler) RegisterReturn(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond.Created(c, h.Transactions.RegisterReturn(id, req.Date, req.Notes, req.Artworks))
}

func (h *Handler) CheckReturn(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	info, found := h.Transactions.CheckReturn(id)
	if !found {
		c.JSON(http.StatusOK, gin.H{"returned": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"returned":       true,
		"transaction_id": info.ID,
		"date":           dates.Format(info.Date),
	})
}

func toInput(req TransactionRequest) services.TransactionInput {
	return services.TransactionInput{
		Client:   req.Client,
		Value:    req.Value,
		Type:     req.Type,
		Date:     req.Date,
		Notes:    req.Notes,
		Artworks: req.Artworks,
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
