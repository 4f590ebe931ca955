package transactions

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gallery-app/internal/domain/catalog"
)

type Type string

const (
	TypeSale   Type = "Venda"
	TypeRental Type = "Aluguel"
	TypeLoan   Type = "Empréstimo"
	TypeReturn Type = "Devolução"
)

// AllTypes lists the transaction types offered to the caller.
func AllTypes() []Type {
	return []Type{TypeSale, TypeRental, TypeLoan, TypeReturn}
}

func ValidType(t Type) bool {
	switch t {
	case TypeSale, TypeRental, TypeLoan, TypeReturn:
		return true
	}
	return false
}

// StatusAfter maps a transaction type to the artwork status it leaves behind.
func StatusAfter(t Type) (catalog.Status, bool) {
	switch t {
	case TypeSale:
		return catalog.StatusSold, true
	case TypeRental:
		return catalog.StatusRented, true
	case TypeLoan:
		return catalog.StatusOnLoan, true
	case TypeReturn:
		return catalog.StatusAvailable, true
	}
	return "", false
}

type Transaction struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Client string          `gorm:"type:text;not null;index" json:"client"`
	Value  decimal.Decimal `gorm:"type:decimal(12,2)" json:"value"`
	Type   Type            `gorm:"type:text;not null;index" json:"type"`
	Date   time.Time       `gorm:"type:date;not null" json:"date"`

	Notes string `gorm:"type:text" json:"notes"`

	Items []TransactionItem `gorm:"constraint:OnDelete:CASCADE;" json:"items,omitempty"`

	RegisteredAt time.Time `gorm:"not null" json:"registered_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransactionItem ties a transaction to an artwork. The title is a
// denormalized display projection; the id is authoritative.
type TransactionItem struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	TransactionID uint   `gorm:"not null;index" json:"-"`
	ArtworkID     uint   `gorm:"not null;index" json:"artwork_id"`
	Title         string `gorm:"type:text;not null" json:"title"`
	Position      int    `gorm:"not null;default:0" json:"-"`
}

// ReturnNoteFor builds the conventional note that links a return back to
// the transaction it reverses. IsReturnOf must keep accepting it.
func ReturnNoteFor(originalID uint) string {
	return fmt.Sprintf("Devolução da transação ID %d", originalID)
}

// ReturnMarker is the substring that identifies a return of the given
// transaction inside free-text notes.
func ReturnMarker(originalID uint) string {
	return fmt.Sprintf("ID %d", originalID)
}

// IsReturnOf reports whether this transaction is a return referencing
// the given original transaction, per the notes convention.
func (t *Transaction) IsReturnOf(originalID uint) bool {
	return t.Type == TypeReturn && containsMarker(t.Notes, originalID)
}

// HasArtwork reports whether the transaction includes the artwork.
func (t *Transaction) HasArtwork(artworkID uint) bool {
	for _, it := range t.Items {
		if it.ArtworkID == artworkID {
			return true
		}
	}
	return false
}

func containsMarker(notes string, originalID uint) bool {
	marker := ReturnMarker(originalID)
	// Marker must terminate at a non-digit so "ID 1" does not match "ID 10".
	for i := 0; i+len(marker) <= len(notes); i++ {
		if notes[i:i+len(marker)] != marker {
			continue
		}
		end := i + len(marker)
		if end == len(notes) || notes[end] < '0' || notes[end] > '9' {
			return true
		}
	}
	return false
}
