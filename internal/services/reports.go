package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gallery-app/internal/dates"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/transactions"
)

// ReportService answers the catalogue search form: free combinations of
// filters over artworks, including cross-entity ones (artist names,
// clients that transacted the artwork). The catalogue is small, so the
// filtering happens in memory over a full load, the way the reporting
// screen always worked.
type ReportService struct {
	DB  *gorm.DB
	Now func() time.Time
	Log zerolog.Logger
}

func NewReportService(db *gorm.DB, log zerolog.Logger) *ReportService {
	return &ReportService{DB: db, Now: time.Now, Log: log}
}

// ReportFilters carries raw form values; empty means "no filter".
type ReportFilters struct {
	Title        string
	Year         string
	Technique    string
	Category     string
	Status       string
	Location     string
	Price        string
	RegisteredAt string
	Artists      []string
	Clients      []string
}

type reportCriteria struct {
	title        string
	year         *int
	technique    string
	category     string
	status       string
	location     string
	price        *decimal.Decimal
	registeredAt *time.Time
	artists      []string
	clients      []string
}

var titleCharset = regexp.MustCompile(`[^\p{L}\p{N}\s\-'",.]`)

// SearchArtworks validates the filters and returns the matching
// artworks. Validation failures surface as errors with the form's own
// wording; they never abort the process.
func (s *ReportService) SearchArtworks(f ReportFilters) ([]catalog.Artwork, error) {
	c, err := s.validate(f)
	if err != nil {
		return nil, err
	}

	var arts []catalog.Artwork
	if err := s.DB.Preload("Artists", orderArtists).Order("id ASC").Find(&arts).Error; err != nil {
		s.Log.Error().Err(err).Msg("report artwork load failed")
		return nil, fmt.Errorf("erro ao carregar obras")
	}

	var txns []transactions.Transaction
	if len(c.clients) > 0 {
		if err := s.DB.Preload("Items", orderItems).Find(&txns).Error; err != nil {
			s.Log.Error().Err(err).Msg("report transaction load failed")
			return nil, fmt.Errorf("erro ao carregar transações")
		}
	}

	out := make([]catalog.Artwork, 0, len(arts))
	for _, a := range arts {
		if s.matches(&a, c, txns) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *ReportService) validate(f ReportFilters) (reportCriteria, error) {
	var c reportCriteria

	if t := strings.TrimSpace(f.Title); t != "" {
		clean := titleCharset.ReplaceAllString(t, "")
		if len(clean) > 100 {
			return c, fmt.Errorf("título muito longo para busca")
		}
		c.title = strings.ToLower(strings.TrimSpace(clean))
	}

	if y := strings.TrimSpace(f.Year); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return c, fmt.Errorf("ano deve ser um número inteiro")
		}
		if year > s.Now().Year()+1 {
			return c, fmt.Errorf("ano inválido: não pode ser posterior a %d", s.Now().Year()+1)
		}
		c.year = &year
	}

	if v := strings.TrimSpace(f.Price); v != "" {
		price, err := decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
		if err != nil {
			return c, fmt.Errorf("valor deve ser um número decimal válido")
		}
		if price.IsNegative() {
			return c, fmt.Errorf("o valor não pode ser negativo")
		}
		c.price = &price
	}

	if d := strings.TrimSpace(f.RegisteredAt); d != "" {
		when, err := dates.Parse(d)
		if err != nil {
			return c, fmt.Errorf("formato de data inválido. Use DD/MM/AAAA")
		}
		if when.After(s.Now()) {
			return c, fmt.Errorf("a data de cadastro não pode ser futura")
		}
		c.registeredAt = &when
	}

	c.technique = strings.ToLower(strings.TrimSpace(f.Technique))
	c.category = strings.TrimSpace(f.Category)
	c.status = strings.TrimSpace(f.Status)
	c.location = strings.ToLower(strings.TrimSpace(f.Location))
	c.artists = cleanNames(f.Artists)
	c.clients = cleanNames(f.Clients)
	return c, nil
}

func (s *ReportService) matches(a *catalog.Artwork, c reportCriteria, txns []transactions.Transaction) bool {
	if c.title != "" && !strings.Contains(strings.ToLower(a.Title), c.title) {
		return false
	}
	if c.year != nil && a.Year != *c.year {
		return false
	}
	if c.technique != "" && !strings.Contains(strings.ToLower(a.Technique), c.technique) {
		return false
	}
	if c.category != "" && a.Category != c.category {
		return false
	}
	if c.status != "" && string(a.Status) != c.status {
		return false
	}
	if c.location != "" && !strings.Contains(strings.ToLower(a.Location), c.location) {
		return false
	}
	if c.price != nil && !a.Price.Equal(*c.price) {
		return false
	}
	if c.registeredAt != nil {
		y1, m1, d1 := a.RegisteredAt.Date()
		y2, m2, d2 := c.registeredAt.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	if len(c.artists) > 0 && !anyArtistMatches(a, c.artists) {
		return false
	}
	if len(c.clients) > 0 && !anyClientTransacted(a.ID, c.clients, txns) {
		return false
	}
	return true
}

func anyArtistMatches(a *catalog.Artwork, wanted []string) bool {
	for _, w := range wanted {
		w = strings.ToLower(w)
		for _, name := range a.ArtistNames() {
			if strings.Contains(strings.ToLower(name), w) {
				return true
			}
		}
	}
	return false
}

func anyClientTransacted(artworkID uint, clients []string, txns []transactions.Transaction) bool {
	for i := range txns {
		if !txns[i].HasArtwork(artworkID) {
			continue
		}
		for _, c := range clients {
			if txns[i].Client == c {
				return true
			}
		}
	}
	return false
}
