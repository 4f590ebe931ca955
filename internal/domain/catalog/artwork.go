package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status values are stored exactly as the gallery staff sees them.
type Status string

const (
	StatusAvailable Status = "Disponível"
	StatusRented    Status = "Alugada"
	StatusSold      Status = "Vendida"
	StatusOnLoan    Status = "Empréstimo"
	StatusOnExhibit Status = "Em Exposição"
)

// AllStatuses lists every valid artwork status, in display order.
func AllStatuses() []Status {
	return []Status{StatusAvailable, StatusRented, StatusSold, StatusOnLoan, StatusOnExhibit}
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusRented, StatusSold, StatusOnLoan, StatusOnExhibit:
		return true
	}
	return false
}

// Categories returns the artwork categories offered by the cataloguing form.
func Categories() []string {
	return []string{"Pintura", "Escultura", "Fotografia", "Gravura", "Instalação", "Outro"}
}

type Artwork struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Title string `gorm:"type:text;not null;index" json:"title"`
	Year  int    `json:"year"`

	// Ordered list; the join rows are the source of truth, artist names
	// are a display projection resolved at the boundary.
	Artists []ArtworkArtist `gorm:"constraint:OnDelete:CASCADE;" json:"artists,omitempty"`

	Category   string `gorm:"type:text;not null" json:"category"`
	Technique  string `gorm:"type:text;not null" json:"technique"`
	Dimensions string `gorm:"type:text;not null" json:"dimensions"`
	Location   string `gorm:"type:text;not null" json:"location"`

	Price  decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Status Status          `gorm:"type:text;not null;default:'Disponível';index" json:"status"`

	// Opaque reference to an externally managed image file.
	ImageRef string `json:"image_ref,omitempty"`

	RegisteredAt time.Time `gorm:"not null" json:"registered_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArtworkArtist links an artwork to an artist name, preserving the order
// in which the names were catalogued.
type ArtworkArtist struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ArtworkID uint   `gorm:"not null;index:idx_artwork_artists_sort,priority:1" json:"-"`
	SortIndex int    `gorm:"not null;default:0;index:idx_artwork_artists_sort,priority:2" json:"-"`
	Name      string `gorm:"type:text;not null" json:"name"`
}

// ArtistNames projects the ordered artist list as plain strings.
func (a *Artwork) ArtistNames() []string {
	names := make([]string, 0, len(a.Artists))
	for _, aa := range a.Artists {
		names = append(names, aa.Name)
	}
	return names
}
