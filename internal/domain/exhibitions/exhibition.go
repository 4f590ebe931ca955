package exhibitions

import "time"

type Status string

const (
	StatusPlanned  Status = "Planejada"
	StatusOngoing  Status = "Em Curso"
	StatusFinished Status = "Finalizada"
)

func AllStatuses() []Status {
	return []Status{StatusPlanned, StatusOngoing, StatusFinished}
}

type Exhibition struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Name     string `gorm:"type:text;not null;index" json:"name"`
	Theme    string `gorm:"type:text" json:"theme"`
	Location string `gorm:"type:text" json:"location"`

	// Persisted status is only authoritative when both dates are absent;
	// every read path recomputes from the dates.
	Status Status `gorm:"type:text;not null;default:'Planejada'" json:"status"`

	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`

	Description string `gorm:"type:text" json:"description"`

	RegisteredAt time.Time `gorm:"not null" json:"registered_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Participation links an artwork to an exhibition. The (exhibition,
// artwork) pair is unique; re-adding is a no-op at the service layer.
type Participation struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ExhibitionID uint      `gorm:"not null;uniqueIndex:idx_participation_pair,priority:1" json:"exhibition_id"`
	ArtworkID    uint      `gorm:"not null;uniqueIndex:idx_participation_pair,priority:2" json:"artwork_id"`
	IncludedAt   time.Time `gorm:"not null" json:"included_at"`
	Note         string    `gorm:"type:text" json:"note,omitempty"`
}
