package catalog

import "time"

type ArtistStatus string

const (
	ArtistActive   ArtistStatus = "Ativo"
	ArtistInactive ArtistStatus = "Inativo"
)

type Artist struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Name        string       `gorm:"type:text;not null;index" json:"name"`
	BirthDate   time.Time    `gorm:"type:date;not null" json:"birth_date"`
	Nationality string       `gorm:"type:text;not null" json:"nationality"`
	Specialty   string       `gorm:"type:text;not null" json:"specialty"`
	Status      ArtistStatus `gorm:"type:text;not null;default:'Ativo'" json:"status"`
	Biography   string       `gorm:"type:text;not null" json:"biography"`

	RegisteredAt time.Time `gorm:"not null" json:"registered_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
