package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/exhibitions"
	"gallery-app/internal/domain/transactions"
)

// setupTestDB creates an in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&catalog.Artist{},
		&catalog.Artwork{},
		&catalog.ArtworkArtist{},
		&transactions.Transaction{},
		&transactions.TransactionItem{},
		&exhibitions.Exhibition{},
		&exhibitions.Participation{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// clock is a movable "today" shared by all services under test.
type clock struct {
	today time.Time
}

func newClock(y int, m time.Month, d int) *clock {
	return &clock{today: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (c *clock) now() time.Time { return c.today }

func (c *clock) advanceDays(n int) { c.today = c.today.AddDate(0, 0, n) }

type fixture struct {
	db          *gorm.DB
	clock       *clock
	engine      *AvailabilityEngine
	artworks    *ArtworkService
	artists     *ArtistService
	txns        *TransactionService
	exhibitions *ExhibitionService
	reports     *ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	log := zerolog.Nop()
	clk := newClock(2026, time.June, 15)

	engine := NewAvailabilityEngine(db, log)
	engine.Now = clk.now

	artworks := NewArtworkService(db, log)
	artworks.Now = clk.now

	artists := NewArtistService(db, log)
	artists.Now = clk.now

	txns := NewTransactionService(db, engine, log)
	txns.Now = clk.now

	exs := NewExhibitionService(db, engine, log)
	exs.Now = clk.now

	reports := NewReportService(db, log)
	reports.Now = clk.now

	return &fixture{
		db:          db,
		clock:       clk,
		engine:      engine,
		artworks:    artworks,
		artists:     artists,
		txns:        txns,
		exhibitions: exs,
		reports:     reports,
	}
}

// createArtwork seeds one available artwork and returns its id.
func (f *fixture) createArtwork(t *testing.T, title string, artistNames ...string) uint {
	t.Helper()

	if len(artistNames) == 0 {
		artistNames = []string{"Artista Desconhecido"}
	}
	res := f.artworks.Create(ArtworkInput{
		Title:      title,
		Year:       "1937",
		Artists:    artistNames,
		Category:   "Pintura",
		Technique:  "Óleo sobre tela",
		Dimensions: "349x776cm",
		Location:   "Sala 1",
		Price:      "1000000",
	})
	require.True(t, res.OK, res.Message)
	return res.ID
}

// createExhibition seeds an exhibition running over the given day
// offsets relative to the fixture clock.
func (f *fixture) createExhibition(t *testing.T, name string, startOffset, endOffset int) uint {
	t.Helper()

	start := f.clock.today.AddDate(0, 0, startOffset).Format("02/01/2006")
	end := f.clock.today.AddDate(0, 0, endOffset).Format("02/01/2006")
	res := f.exhibitions.Save(0, ExhibitionInput{
		Name:      name,
		Theme:     "Modernismo",
		Location:  "Ala Norte",
		StartDate: start,
		EndDate:   end,
	})
	require.True(t, res.OK, res.Message)
	return res.ID
}

func (f *fixture) artworkStatus(t *testing.T, id uint) catalog.Status {
	t.Helper()

	status, found := f.engine.StatusByID(id)
	require.True(t, found)
	return status
}
