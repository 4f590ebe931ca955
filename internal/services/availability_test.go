package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/exhibitions"
	"gallery-app/internal/domain/transactions"
)

func TestResolveByIDAndTitle(t *testing.T) {
	f := newFixture(t)
	id := f.createArtwork(t, "Guernica", "Pablo Picasso")

	byID, found := f.engine.Resolve(fmt.Sprint(id))
	require.True(t, found)
	assert.Equal(t, "Guernica", byID.Title)

	byTitle, found := f.engine.Resolve("Guernica")
	require.True(t, found)
	assert.Equal(t, id, byTitle.ID)

	_, found = f.engine.Resolve("Obra Inexistente")
	assert.False(t, found)

	_, found = f.engine.Resolve("")
	assert.False(t, found)
}

func TestStatusByTitleFallback(t *testing.T) {
	f := newFixture(t)
	f.createArtwork(t, "Abaporu", "Tarsila do Amaral")

	status, found := f.engine.StatusByTitle("Abaporu")
	require.True(t, found)
	assert.Equal(t, catalog.StatusAvailable, status)

	_, found = f.engine.StatusByTitle("Abapuru")
	assert.False(t, found)
}

func TestCanCommit(t *testing.T) {
	f := newFixture(t)

	for _, commitType := range []transactions.Type{transactions.TypeSale, transactions.TypeRental, transactions.TypeLoan} {
		assert.True(t, f.engine.CanCommit(catalog.StatusAvailable, commitType))
		assert.False(t, f.engine.CanCommit(catalog.StatusSold, commitType))
		assert.False(t, f.engine.CanCommit(catalog.StatusRented, commitType))
		assert.False(t, f.engine.CanCommit(catalog.StatusOnExhibit, commitType))
	}

	assert.True(t, f.engine.CanCommit(catalog.StatusRented, transactions.TypeReturn))
	assert.True(t, f.engine.CanCommit(catalog.StatusOnLoan, transactions.TypeReturn))
	assert.False(t, f.engine.CanCommit(catalog.StatusAvailable, transactions.TypeReturn))
	assert.False(t, f.engine.CanCommit(catalog.StatusSold, transactions.TypeReturn))
}

func TestIsBookedInPeriod(t *testing.T) {
	f := newFixture(t)
	artworkID := f.createArtwork(t, "Guernica")
	exID := f.createExhibition(t, "Vanguardas", 5, 15)

	res := f.exhibitions.AddArtwork(exID, artworkID, "")
	require.True(t, res.OK, res.Message)

	during := f.clock.today.AddDate(0, 0, 10)
	after := f.clock.today.AddDate(0, 0, 20)
	wayAfter := f.clock.today.AddDate(0, 0, 30)

	assert.True(t, f.engine.IsBookedInPeriod(artworkID, &during, &after, 0))
	assert.False(t, f.engine.IsBookedInPeriod(artworkID, &after, &wayAfter, 0))

	// Excluding the booking exhibition frees the period.
	assert.False(t, f.engine.IsBookedInPeriod(artworkID, &during, &after, exID))

	// Half-open query periods cannot prove non-overlap.
	assert.True(t, f.engine.IsBookedInPeriod(artworkID, &after, nil, 0))

	// Both endpoints nil means "active today"; the exhibition starts in
	// five days, so today is free.
	assert.False(t, f.engine.IsBookedInPeriod(artworkID, nil, nil, 0))

	f.clock.advanceDays(6)
	assert.True(t, f.engine.IsBookedInPeriod(artworkID, nil, nil, 0))
}

func TestCanExhibitStaleFlag(t *testing.T) {
	f := newFixture(t)
	artworkID := f.createArtwork(t, "Guernica")
	exID := f.createExhibition(t, "Vanguardas", 5, 15)

	res := f.exhibitions.AddArtwork(exID, artworkID, "")
	require.True(t, res.OK, res.Message)
	require.Equal(t, catalog.StatusOnExhibit, f.artworkStatus(t, artworkID))

	// A disjoint period is bookable despite the OnExhibit flag.
	start := f.clock.today.AddDate(0, 0, 20)
	end := f.clock.today.AddDate(0, 0, 25)
	assert.True(t, f.engine.CanExhibit(artworkID, catalog.StatusOnExhibit, Period{Start: &start, End: &end}, 0))

	// An overlapping period is not.
	overlapStart := f.clock.today.AddDate(0, 0, 10)
	assert.False(t, f.engine.CanExhibit(artworkID, catalog.StatusOnExhibit, Period{Start: &overlapStart, End: &end}, 0))

	// An open-ended candidate period counts as occupied.
	assert.False(t, f.engine.CanExhibit(artworkID, catalog.StatusOnExhibit, Period{Start: &start}, 0))
	assert.False(t, f.engine.CanExhibit(artworkID, catalog.StatusOnExhibit, Period{}, 0))

	// Sold or rented artworks never exhibit.
	assert.False(t, f.engine.CanExhibit(artworkID, catalog.StatusSold, Period{Start: &start, End: &end}, 0))
	assert.False(t, f.engine.CanExhibit(artworkID, catalog.StatusRented, Period{Start: &start, End: &end}, 0))
}

func TestBookingCheckSeesInFlightRemoval(t *testing.T) {
	f := newFixture(t)
	artworkID := f.createArtwork(t, "Guernica")
	exID := f.createExhibition(t, "Atual", -2, 5)

	res := f.exhibitions.AddArtwork(exID, artworkID, "")
	require.True(t, res.OK, res.Message)
	require.True(t, f.engine.IsBookedInPeriod(artworkID, nil, nil, 0))

	// A check running inside a store transaction must observe the
	// participation deleted by that same transaction.
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exhibition_id = ? AND artwork_id = ?", exID, artworkID).
			Delete(&exhibitions.Participation{}).Error; err != nil {
			return err
		}
		assert.False(t, f.engine.WithDB(tx).IsBookedInPeriod(artworkID, nil, nil, 0))
		return nil
	})
	require.NoError(t, err)
}

func TestIsBookedInPeriodUnknownArtwork(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
	assert.False(t, f.engine.IsBookedInPeriod(999, &start, &end, 0))
}
