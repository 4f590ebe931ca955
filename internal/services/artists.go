package services

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"gallery-app/internal/dates"
	"gallery-app/internal/domain/catalog"
)

type ArtistService struct {
	DB  *gorm.DB
	Now func() time.Time
	Log zerolog.Logger
}

func NewArtistService(db *gorm.DB, log zerolog.Logger) *ArtistService {
	return &ArtistService{DB: db, Now: time.Now, Log: log}
}

type ArtistInput struct {
	Name        string
	BirthDate   string
	Nationality string
	Specialty   string
	Status      string
	Biography   string
}

// ArtistFilters narrows listings; empty fields match everything.
type ArtistFilters struct {
	Name        string
	Nationality string
	Specialty   string
	Status      string
}

func (s *ArtistService) Create(in ArtistInput) Result {
	a, res := s.validate(in)
	if !res.OK {
		return res
	}
	a.RegisteredAt = s.Now()

	if err := s.DB.Create(a).Error; err != nil {
		s.Log.Error().Err(err).Str("name", a.Name).Msg("artist insert failed")
		return fail(CodeStoreError, "Erro ao cadastrar artista.")
	}
	return okID("Artista cadastrado com sucesso!", a.ID)
}

func (s *ArtistService) Update(id uint, in ArtistInput) Result {
	if _, found := s.Get(id); !found {
		return fail(CodeNotFound, "Artista não encontrado.")
	}
	a, res := s.validate(in)
	if !res.OK {
		return res
	}

	updates := map[string]interface{}{
		"name":        a.Name,
		"birth_date":  a.BirthDate,
		"nationality": a.Nationality,
		"specialty":   a.Specialty,
		"status":      a.Status,
		"biography":   a.Biography,
	}
	if err := s.DB.Model(&catalog.Artist{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		s.Log.Error().Err(err).Uint("artist_id", id).Msg("artist update failed")
		return fail(CodeStoreError, "Erro ao atualizar artista.")
	}
	return okID("Artista atualizado com sucesso!", id)
}

func (s *ArtistService) List() ([]catalog.Artist, error) {
	var out []catalog.Artist
	err := s.DB.Order("name ASC").Find(&out).Error
	return out, err
}

func (s *ArtistService) Get(id uint) (*catalog.Artist, bool) {
	var a catalog.Artist
	if err := s.DB.First(&a, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.Log.Error().Err(err).Uint("artist_id", id).Msg("artist load failed")
		}
		return nil, false
	}
	return &a, true
}

func (s *ArtistService) Search(f ArtistFilters) ([]catalog.Artist, error) {
	q := s.DB.Model(&catalog.Artist{})
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+strings.TrimSpace(f.Name)+"%")
	}
	if f.Nationality != "" {
		q = q.Where("nationality LIKE ?", "%"+strings.TrimSpace(f.Nationality)+"%")
	}
	if f.Specialty != "" {
		q = q.Where("specialty LIKE ?", "%"+strings.TrimSpace(f.Specialty)+"%")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var out []catalog.Artist
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

// Every artist field is mandatory; the registry keeps no partial records.
func (s *ArtistService) validate(in ArtistInput) (*catalog.Artist, Result) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Nationality) == "" ||
		strings.TrimSpace(in.Specialty) == "" || strings.TrimSpace(in.Biography) == "" {
		return nil, fail(CodeMissingField, "Todos os campos do artista são obrigatórios.")
	}
	if in.BirthDate == "" {
		return nil, fail(CodeMissingField, "Data de nascimento é obrigatória.")
	}
	birth, err := dates.Parse(in.BirthDate)
	if err != nil {
		return nil, fail(CodeInvalidDate, "Data de nascimento deve estar no formato DD/MM/YYYY.")
	}

	status := catalog.ArtistStatus(in.Status)
	if status == "" {
		status = catalog.ArtistActive
	}
	if status != catalog.ArtistActive && status != catalog.ArtistInactive {
		return nil, fail(CodeMissingField, "Status do artista inválido.")
	}

	return &catalog.Artist{
		Name:        name,
		BirthDate:   birth,
		Nationality: strings.TrimSpace(in.Nationality),
		Specialty:   strings.TrimSpace(in.Specialty),
		Status:      status,
		Biography:   strings.TrimSpace(in.Biography),
	}, ok("")
}
