package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/exhibitions"
	"gallery-app/internal/domain/transactions"
)

// Period is a closed date interval. Open-ended periods cannot prove
// non-overlap and are treated conservatively by the engine.
type Period struct {
	Start *time.Time
	End   *time.Time
}

// AvailabilityEngine answers whether an artwork can be committed to a
// new transaction or exhibition. It only reads; status changes are the
// lifecycle managers' job.
//
// Failure policy: when the store misbehaves the engine answers the
// conservative way (occupied / not committable) instead of raising, so
// a flaky read can never cause a double booking. "No such artwork" stays
// a distinct outcome because callers report it differently.
type AvailabilityEngine struct {
	DB  *gorm.DB
	Now func() time.Time
	Log zerolog.Logger
}

func NewAvailabilityEngine(db *gorm.DB, log zerolog.Logger) *AvailabilityEngine {
	return &AvailabilityEngine{DB: db, Now: time.Now, Log: log}
}

// WithDB returns a copy of the engine reading through the given handle.
// Checks that run inside a store transaction must go through it, or they
// cannot see the transaction's own uncommitted writes.
func (e *AvailabilityEngine) WithDB(db *gorm.DB) *AvailabilityEngine {
	scoped := *e
	scoped.DB = db
	return &scoped
}

// Resolve finds an artwork by numeric id or, failing that, by exact
// title. Titles still arrive from older call sites that never learned
// about ids.
func (e *AvailabilityEngine) Resolve(ref string) (*catalog.Artwork, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, false
	}
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		if a, found := e.byID(uint(id)); found {
			return a, true
		}
	}
	return e.byTitle(ref)
}

// StatusByID resolves the stored status of an artwork.
func (e *AvailabilityEngine) StatusByID(id uint) (catalog.Status, bool) {
	a, found := e.byID(id)
	if !found {
		return "", false
	}
	return a.Status, true
}

// StatusByTitle resolves status for callers that only hold a title.
func (e *AvailabilityEngine) StatusByTitle(title string) (catalog.Status, bool) {
	a, found := e.byTitle(title)
	if !found {
		return "", false
	}
	return a.Status, true
}

// CanCommit reports whether the artwork may enter a transaction of the
// given type. Sale, rental and loan all require the artwork to be
// exactly available; a return requires it to be out on rental or loan.
func (e *AvailabilityEngine) CanCommit(status catalog.Status, t transactions.Type) bool {
	if t == transactions.TypeReturn {
		return status == catalog.StatusRented || status == catalog.StatusOnLoan
	}
	return status == catalog.StatusAvailable
}

// CanExhibit reports whether the artwork may be booked into an
// exhibition over the given period. An artwork already flagged as on
// exhibit may still be bookable: the flag can be stale, so the engine
// checks whether any other exhibition actually overlaps the period.
// Without both endpoints the overlap cannot be disproved and the
// artwork counts as occupied.
func (e *AvailabilityEngine) CanExhibit(artworkID uint, status catalog.Status, p Period, excludeExhibitionID uint) bool {
	switch status {
	case catalog.StatusAvailable:
		return true
	case catalog.StatusOnExhibit:
		if p.Start == nil || p.End == nil {
			return false
		}
		return !e.IsBookedInPeriod(artworkID, p.Start, p.End, excludeExhibitionID)
	}
	return false
}

// IsBookedInPeriod reports whether the artwork participates in any
// exhibition (optionally excluding one) whose interval overlaps
// [start, end]. With both endpoints nil the question degenerates to
// "is the artwork in any exhibition active today".
func (e *AvailabilityEngine) IsBookedInPeriod(artworkID uint, start, end *time.Time, excludeExhibitionID uint) bool {
	var parts []exhibitions.Participation
	q := e.DB.Where("artwork_id = ?", artworkID)
	if excludeExhibitionID != 0 {
		q = q.Where("exhibition_id <> ?", excludeExhibitionID)
	}
	if err := q.Find(&parts).Error; err != nil {
		e.Log.Error().Err(err).Uint("artwork_id", artworkID).Msg("participation scan failed, assuming booked")
		return true
	}
	if len(parts) == 0 {
		return false
	}

	now := e.Now()
	for _, p := range parts {
		var ex exhibitions.Exhibition
		if err := e.DB.First(&ex, p.ExhibitionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			e.Log.Error().Err(err).Uint("exhibition_id", p.ExhibitionID).Msg("exhibition load failed, assuming booked")
			return true
		}
		if start == nil && end == nil {
			if ex.ActiveOn(now) {
				return true
			}
			continue
		}
		if start == nil || end == nil {
			// Half-open query period: cannot prove non-overlap.
			return true
		}
		if ex.Overlaps(*start, *end) {
			return true
		}
	}
	return false
}

func (e *AvailabilityEngine) byID(id uint) (*catalog.Artwork, bool) {
	var a catalog.Artwork
	err := e.DB.Preload("Artists", orderArtists).First(&a, id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			e.Log.Error().Err(err).Uint("artwork_id", id).Msg("artwork lookup failed")
		}
		return nil, false
	}
	return &a, true
}

func (e *AvailabilityEngine) byTitle(title string) (*catalog.Artwork, bool) {
	var a catalog.Artwork
	err := e.DB.Preload("Artists", orderArtists).
		Where("title = ?", strings.TrimSpace(title)).
		First(&a).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			e.Log.Error().Err(err).Str("title", title).Msg("artwork lookup failed")
		}
		return nil, false
	}
	return &a, true
}

func orderArtists(db *gorm.DB) *gorm.DB {
	return db.Order("sort_index ASC")
}
