package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gallery-app/internal/dates"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/exhibitions"
)

// ExhibitionService manages exhibitions and the participation relation,
// moving artwork statuses as a side effect. Exhibition status is
// recomputed from the dates on every read; finished exhibitions release
// their artworks through a lazy reconciliation sweep that runs on each
// read path.
type ExhibitionService struct {
	DB     *gorm.DB
	Engine *AvailabilityEngine
	Now    func() time.Time
	Log    zerolog.Logger
}

func NewExhibitionService(db *gorm.DB, engine *AvailabilityEngine, log zerolog.Logger) *ExhibitionService {
	return &ExhibitionService{DB: db, Engine: engine, Now: time.Now, Log: log}
}

type ExhibitionInput struct {
	Name        string
	Theme       string
	Location    string
	Status      string
	StartDate   string
	EndDate     string
	Description string
}

// ExhibitionFilters narrows searches; empty fields match everything.
type ExhibitionFilters struct {
	Name     string
	Theme    string
	Location string
	Status   string
}

// Save creates (id == 0) or updates an exhibition. The status is
// derived from the dates; the caller-supplied status only matters when
// no date is known.
func (s *ExhibitionService) Save(id uint, in ExhibitionInput) Result {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fail(CodeMissingField, "Nome é obrigatório.")
	}

	start, err := dates.ParseOptional(in.StartDate)
	if err != nil {
		return fail(CodeInvalidDate, "Data Início deve estar no formato DD/MM/YYYY.")
	}
	end, err := dates.ParseOptional(in.EndDate)
	if err != nil {
		return fail(CodeInvalidDate, "Data Fim deve estar no formato DD/MM/YYYY.")
	}

	status, computed := exhibitions.ComputeStatus(s.Now(), start, end)
	if !computed {
		status = exhibitions.StatusPlanned
		for _, known := range exhibitions.AllStatuses() {
			if string(known) == strings.TrimSpace(in.Status) {
				status = known
				break
			}
		}
	}

	ex := exhibitions.Exhibition{
		Name:        name,
		Theme:       strings.TrimSpace(in.Theme),
		Location:    strings.TrimSpace(in.Location),
		Status:      status,
		StartDate:   start,
		EndDate:     end,
		Description: strings.TrimSpace(in.Description),
	}

	if id == 0 {
		ex.RegisteredAt = s.Now()
		if err := s.DB.Create(&ex).Error; err != nil {
			s.Log.Error().Err(err).Str("name", name).Msg("exhibition insert failed")
			return fail(CodeStoreError, "Erro ao salvar exposição.")
		}
		s.reconcile()
		return okID("Exposição cadastrada com sucesso.", ex.ID)
	}

	if _, found := s.get(id); !found {
		return fail(CodeNotFound, "Exposição não encontrada.")
	}
	updates := map[string]interface{}{
		"name":        ex.Name,
		"theme":       ex.Theme,
		"location":    ex.Location,
		"status":      ex.Status,
		"start_date":  ex.StartDate,
		"end_date":    ex.EndDate,
		"description": ex.Description,
	}
	if err := s.DB.Model(&exhibitions.Exhibition{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		s.Log.Error().Err(err).Uint("exhibition_id", id).Msg("exhibition update failed")
		return fail(CodeStoreError, "Erro ao salvar exposição.")
	}
	s.reconcile()
	return okID("Exposição atualizada com sucesso.", id)
}

// AddArtwork books an artwork into an exhibition. The booking is
// idempotent: adding the same artwork twice is a no-op, not an error.
func (s *ExhibitionService) AddArtwork(exhibitionID, artworkID uint, note string) Result {
	ex, found := s.get(exhibitionID)
	if !found {
		return fail(CodeNotFound, "Exposição não encontrada.")
	}
	if ex.EffectiveStatus(s.Now()) == exhibitions.StatusFinished {
		return fail(CodeExhibitionFinished, "Exposição finalizada não recebe obras.")
	}

	a, found := s.Engine.Resolve(fmt.Sprint(artworkID))
	if !found {
		return fail(CodeArtworkNotFound, "Obra não encontrada.")
	}

	// Re-adding is a no-op, never an error.
	if s.HasParticipation(ex.ID, a.ID) {
		return okID("Obra adicionada à exposição.", a.ID)
	}

	period := Period{Start: ex.StartDate, End: ex.EndDate}
	if !s.Engine.CanExhibit(a.ID, a.Status, period, ex.ID) {
		return fail(CodeArtworkNotAvailable,
			fmt.Sprintf("Obra '%s' não está disponível para exposição.", a.Title))
	}

	p := exhibitions.Participation{
		ExhibitionID: ex.ID,
		ArtworkID:    a.ID,
		IncludedAt:   s.Now(),
		Note:         strings.TrimSpace(note),
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error; err != nil {
			return err
		}
		return tx.Model(&catalog.Artwork{}).
			Where("id = ?", a.ID).
			Update("status", catalog.StatusOnExhibit).Error
	})
	if err != nil {
		s.Log.Error().Err(err).Uint("exhibition_id", ex.ID).Uint("artwork_id", a.ID).Msg("participation insert failed")
		return fail(CodeStoreError, "Erro ao adicionar obra à exposição.")
	}
	return okID("Obra adicionada à exposição.", a.ID)
}

// RemoveArtwork unbooks an artwork. The artwork only becomes available
// again when no other exhibition holds it today.
func (s *ExhibitionService) RemoveArtwork(exhibitionID, artworkID uint) Result {
	if _, found := s.get(exhibitionID); !found {
		return fail(CodeNotFound, "Exposição não encontrada.")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exhibition_id = ? AND artwork_id = ?", exhibitionID, artworkID).
			Delete(&exhibitions.Participation{}).Error; err != nil {
			return err
		}
		// The check must read through tx to see the row deleted above.
		if s.Engine.WithDB(tx).IsBookedInPeriod(artworkID, nil, nil, 0) {
			return nil
		}
		return tx.Model(&catalog.Artwork{}).
			Where("id = ? AND status = ?", artworkID, catalog.StatusOnExhibit).
			Update("status", catalog.StatusAvailable).Error
	})
	if err != nil {
		s.Log.Error().Err(err).Uint("exhibition_id", exhibitionID).Uint("artwork_id", artworkID).Msg("participation delete failed")
		return fail(CodeStoreError, "Erro ao remover obra da exposição.")
	}
	return okID("Obra removida da exposição.", artworkID)
}

// ListArtworks returns the participation rows of an exhibition.
func (s *ExhibitionService) ListArtworks(exhibitionID uint) ([]exhibitions.Participation, error) {
	var out []exhibitions.Participation
	err := s.DB.Where("exhibition_id = ?", exhibitionID).Order("included_at ASC, id ASC").Find(&out).Error
	return out, err
}

// HasParticipation reports whether the artwork is booked into the
// exhibition.
func (s *ExhibitionService) HasParticipation(exhibitionID, artworkID uint) bool {
	var count int64
	err := s.DB.Model(&exhibitions.Participation{}).
		Where("exhibition_id = ? AND artwork_id = ?", exhibitionID, artworkID).
		Count(&count).Error
	if err != nil {
		s.Log.Error().Err(err).Msg("participation check failed")
		return false
	}
	return count > 0
}

// List returns all exhibitions with freshly computed statuses, running
// the reconciliation sweep first.
func (s *ExhibitionService) List() ([]exhibitions.Exhibition, error) {
	s.reconcile()
	var out []exhibitions.Exhibition
	if err := s.DB.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	s.freshen(out)
	return out, nil
}

// Search filters exhibitions, reconciling first like every read path.
func (s *ExhibitionService) Search(f ExhibitionFilters) ([]exhibitions.Exhibition, error) {
	s.reconcile()

	q := s.DB.Model(&exhibitions.Exhibition{})
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+strings.TrimSpace(f.Name)+"%")
	}
	if f.Theme != "" {
		q = q.Where("theme LIKE ?", "%"+strings.TrimSpace(f.Theme)+"%")
	}
	if f.Location != "" {
		q = q.Where("location LIKE ?", "%"+strings.TrimSpace(f.Location)+"%")
	}

	var out []exhibitions.Exhibition
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	s.freshen(out)

	if f.Status != "" {
		filtered := out[:0]
		for _, ex := range out {
			if string(ex.Status) == f.Status {
				filtered = append(filtered, ex)
			}
		}
		out = filtered
	}
	return out, nil
}

// Get loads one exhibition with a freshly computed status.
func (s *ExhibitionService) Get(id uint) (*exhibitions.Exhibition, bool) {
	s.reconcile()
	ex, found := s.get(id)
	if !found {
		return nil, false
	}
	ex.Status = ex.EffectiveStatus(s.Now())
	return ex, true
}

func (s *ExhibitionService) get(id uint) (*exhibitions.Exhibition, bool) {
	var ex exhibitions.Exhibition
	if err := s.DB.First(&ex, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.Log.Error().Err(err).Uint("exhibition_id", id).Msg("exhibition load failed")
		}
		return nil, false
	}
	return &ex, true
}

// freshen overwrites stored statuses with computed ones for display.
func (s *ExhibitionService) freshen(list []exhibitions.Exhibition) {
	now := s.Now()
	for i := range list {
		list[i].Status = list[i].EffectiveStatus(now)
	}
}

// reconcile releases artworks held by finished exhibitions. An artwork
// stays on exhibit only while some other exhibition holds it today.
// Running the sweep twice changes nothing.
func (s *ExhibitionService) reconcile() {
	var all []exhibitions.Exhibition
	if err := s.DB.Find(&all).Error; err != nil {
		s.Log.Error().Err(err).Msg("reconciliation scan failed")
		return
	}
	now := s.Now()

	for _, ex := range all {
		if ex.EffectiveStatus(now) != exhibitions.StatusFinished {
			continue
		}
		parts, err := s.ListArtworks(ex.ID)
		if err != nil {
			s.Log.Error().Err(err).Uint("exhibition_id", ex.ID).Msg("reconciliation participation scan failed")
			continue
		}
		for _, p := range parts {
			if s.bookedElsewhereToday(p.ArtworkID, ex.ID) {
				continue
			}
			err := s.DB.Model(&catalog.Artwork{}).
				Where("id = ? AND status = ?", p.ArtworkID, catalog.StatusOnExhibit).
				Update("status", catalog.StatusAvailable).Error
			if err != nil {
				s.Log.Error().Err(err).Uint("artwork_id", p.ArtworkID).Msg("reconciliation status reset failed")
				continue
			}
			s.Log.Info().
				Uint("artwork_id", p.ArtworkID).
				Uint("exhibition_id", ex.ID).
				Msg("released artwork from finished exhibition")
		}
		if ex.Status != exhibitions.StatusFinished {
			if err := s.DB.Model(&exhibitions.Exhibition{}).
				Where("id = ?", ex.ID).
				Update("status", exhibitions.StatusFinished).Error; err != nil {
				s.Log.Error().Err(err).Uint("exhibition_id", ex.ID).Msg("reconciliation status persist failed")
			}
		}
	}
}

func (s *ExhibitionService) bookedElsewhereToday(artworkID, excludeExhibitionID uint) bool {
	return s.Engine.IsBookedInPeriod(artworkID, nil, nil, excludeExhibitionID)
}
