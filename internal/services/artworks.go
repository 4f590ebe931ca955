package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gallery-app/internal/domain/catalog"
)

// ArtworkService handles cataloguing. Status is owned by the lifecycle
// managers; this service only ever writes the initial status.
type ArtworkService struct {
	DB  *gorm.DB
	Now func() time.Time
	Log zerolog.Logger
}

func NewArtworkService(db *gorm.DB, log zerolog.Logger) *ArtworkService {
	return &ArtworkService{DB: db, Now: time.Now, Log: log}
}

// ArtworkInput carries the cataloguing form fields. Year and price come
// in as the raw strings the form produced.
type ArtworkInput struct {
	Title      string
	Year       string
	Artists    []string
	Category   string
	Technique  string
	Dimensions string
	Location   string
	Price      string
	ImageRef   string
}

func (s *ArtworkService) Create(in ArtworkInput) Result {
	artists := cleanNames(in.Artists)
	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	technique := strings.TrimSpace(in.Technique)
	dimensions := strings.TrimSpace(in.Dimensions)
	location := strings.TrimSpace(in.Location)
	if title == "" || category == "" || technique == "" ||
		dimensions == "" || location == "" {
		return fail(CodeMissingField, "Todos os campos obrigatórios devem ser preenchidos.")
	}
	if len(artists) == 0 {
		return fail(CodeMissingField, "Adicione pelo menos um artista.")
	}

	year, res := s.parseYear(in.Year)
	if !res.OK {
		return res
	}
	price, res := parsePrice(in.Price)
	if !res.OK {
		return res
	}

	if s.exists(title, artists, year) {
		return fail(CodeDuplicateRecord, "Já existe uma obra com esse título, artista e ano.")
	}

	a := catalog.Artwork{
		Title:        title,
		Year:         year,
		Category:     category,
		Technique:    technique,
		Dimensions:   dimensions,
		Location:     location,
		Price:        price,
		Status:       catalog.StatusAvailable,
		ImageRef:     in.ImageRef,
		RegisteredAt: s.Now(),
	}
	for i, name := range artists {
		a.Artists = append(a.Artists, catalog.ArtworkArtist{SortIndex: i, Name: name})
	}

	if err := s.DB.Create(&a).Error; err != nil {
		s.Log.Error().Err(err).Str("title", a.Title).Msg("artwork insert failed")
		return fail(CodeStoreError, "Erro ao cadastrar obra.")
	}
	return okID("Obra cadastrada com sucesso!", a.ID)
}

func (s *ArtworkService) Update(id uint, in ArtworkInput) Result {
	a, found := s.Get(id)
	if !found {
		return fail(CodeNotFound, "Obra não encontrada.")
	}
	if a.Status == catalog.StatusSold {
		return fail(CodeImmutableArtwork, "Obras vendidas não podem ser editadas.")
	}

	artists := cleanNames(in.Artists)
	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	technique := strings.TrimSpace(in.Technique)
	dimensions := strings.TrimSpace(in.Dimensions)
	location := strings.TrimSpace(in.Location)
	if title == "" || category == "" || technique == "" ||
		dimensions == "" || location == "" {
		return fail(CodeMissingField, "Todos os campos obrigatórios devem ser preenchidos.")
	}
	if len(artists) == 0 {
		return fail(CodeMissingField, "Adicione pelo menos um artista.")
	}

	year, res := s.parseYear(in.Year)
	if !res.OK {
		return res
	}
	price, res := parsePrice(in.Price)
	if !res.OK {
		return res
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":      title,
			"year":       year,
			"category":   category,
			"technique":  technique,
			"dimensions": dimensions,
			"location":   location,
			"price":      price,
		}
		if in.ImageRef != "" {
			updates["image_ref"] = in.ImageRef
		}
		if err := tx.Model(&catalog.Artwork{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		// Replace the ordered artist list wholesale.
		if err := tx.Where("artwork_id = ?", id).Delete(&catalog.ArtworkArtist{}).Error; err != nil {
			return err
		}
		for i, name := range artists {
			row := catalog.ArtworkArtist{ArtworkID: id, SortIndex: i, Name: name}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.Log.Error().Err(err).Uint("artwork_id", id).Msg("artwork update failed")
		return fail(CodeStoreError, "Erro ao atualizar obra.")
	}
	return okID("Obra atualizada com sucesso!", id)
}

func (s *ArtworkService) List() ([]catalog.Artwork, error) {
	var out []catalog.Artwork
	err := s.DB.Preload("Artists", orderArtists).Order("id ASC").Find(&out).Error
	return out, err
}

func (s *ArtworkService) Get(id uint) (*catalog.Artwork, bool) {
	var a catalog.Artwork
	err := s.DB.Preload("Artists", orderArtists).First(&a, id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.Log.Error().Err(err).Uint("artwork_id", id).Msg("artwork load failed")
		}
		return nil, false
	}
	return &a, true
}

func (s *ArtworkService) parseYear(raw string) (int, Result) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fail(CodeInvalidNumeric, "Ano deve ser um número válido.")
	}
	if year > s.Now().Year() {
		return 0, fail(CodeInvalidNumeric, fmt.Sprintf("Ano não pode ser posterior a %d.", s.Now().Year()))
	}
	return year, ok("")
}

func parsePrice(raw string) (decimal.Decimal, Result) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return decimal.Zero, ok("")
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fail(CodeInvalidNumeric, "Preço deve ser um valor numérico válido.")
	}
	if price.IsNegative() {
		return decimal.Zero, fail(CodeInvalidNumeric, "Preço não pode ser negativo.")
	}
	return price, ok("")
}

func (s *ArtworkService) exists(title string, artists []string, year int) bool {
	var candidates []catalog.Artwork
	err := s.DB.Preload("Artists", orderArtists).
		Where("title = ? AND year = ?", strings.TrimSpace(title), year).
		Find(&candidates).Error
	if err != nil {
		s.Log.Error().Err(err).Msg("artwork duplicate check failed")
		return false
	}
	for _, c := range candidates {
		if equalNames(c.ArtistNames(), artists) {
			return true
		}
	}
	return false
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
