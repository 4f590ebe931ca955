package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gallery-app/internal/dates"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/transactions"
)

// DuplicateKey selects which field joins client+date in the duplicate
// heuristic. Both variants shipped at different times; the choice is an
// explicit deployment setting now.
type DuplicateKey string

const (
	DuplicateByType  DuplicateKey = "type"
	DuplicateByValue DuplicateKey = "value"
)

// TransactionService validates and records sale, rental, loan and
// return events, moving artwork statuses as a side effect. The record
// insert and the status updates always land in one store transaction.
type TransactionService struct {
	DB           *gorm.DB
	Engine       *AvailabilityEngine
	Now          func() time.Time
	Log          zerolog.Logger
	DuplicateKey DuplicateKey
}

func NewTransactionService(db *gorm.DB, engine *AvailabilityEngine, log zerolog.Logger) *TransactionService {
	return &TransactionService{
		DB:           db,
		Engine:       engine,
		Now:          time.Now,
		Log:          log,
		DuplicateKey: DuplicateByType,
	}
}

// TransactionInput carries the form fields; artworks may be referenced
// by id or by title.
type TransactionInput struct {
	Client   string
	Value    string
	Type     string
	Date     string
	Notes    string
	Artworks []string
}

// ReturnInfo describes a previously registered return.
type ReturnInfo struct {
	ID   uint      `json:"id"`
	Date time.Time `json:"date"`
}

func (s *TransactionService) Create(in TransactionInput) Result {
	v, res := s.validate(in)
	if !res.OK {
		return res
	}

	arts, res := s.resolveAll(in.Artworks)
	if !res.OK {
		return res
	}
	for _, a := range arts {
		if !s.Engine.CanCommit(a.Status, v.Type) {
			return commitFailure(a.Title, v.Type)
		}
	}

	if s.duplicateExists(v.Client, v.Date, v.Type, v.Value, 0) {
		return s.duplicateFailure()
	}

	txn := transactions.Transaction{
		Client:       v.Client,
		Value:        v.Value,
		Type:         v.Type,
		Date:         v.Date,
		Notes:        strings.TrimSpace(in.Notes),
		RegisteredAt: s.Now(),
	}
	for i, a := range arts {
		txn.Items = append(txn.Items, transactions.TransactionItem{
			ArtworkID: a.ID,
			Title:     a.Title,
			Position:  i,
		})
	}

	after, _ := transactions.StatusAfter(v.Type)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		return setStatuses(tx, arts, after)
	})
	if err != nil {
		s.Log.Error().Err(err).Str("client", v.Client).Msg("transaction insert failed")
		return fail(CodeStoreError, "Erro ao cadastrar transação.")
	}
	return okID("Transação cadastrada com sucesso!", txn.ID)
}

func (s *TransactionService) Update(id uint, in TransactionInput) Result {
	existing, found := s.Get(id)
	if !found {
		return fail(CodeNotFound, "Transação não encontrada.")
	}
	if existing.Type == transactions.TypeReturn || transactions.Type(in.Type) == transactions.TypeReturn {
		return fail(CodeImmutableTransaction, "Transações de Devolução não podem ser editadas.")
	}
	if _, returned := s.CheckReturn(id); returned {
		return fail(CodeImmutableTransaction, "Transações com devolução registrada não podem ser editadas.")
	}

	v, res := s.validate(in)
	if !res.OK {
		return res
	}

	arts, res := s.resolveAll(in.Artworks)
	if !res.OK {
		return res
	}
	// Artworks already on this transaction stay committed to it and are
	// exempt from the availability gate; only additions must be free.
	for _, a := range arts {
		if existing.HasArtwork(a.ID) {
			continue
		}
		if !s.Engine.CanCommit(a.Status, v.Type) {
			return commitFailure(a.Title, v.Type)
		}
	}

	if s.duplicateExists(v.Client, v.Date, v.Type, v.Value, id) {
		return s.duplicateFailure()
	}

	after, _ := transactions.StatusAfter(v.Type)
	// Items are replaced wholesale and only the new set is re-stamped;
	// an artwork dropped from the list keeps whatever status the
	// transaction last gave it.
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"client": v.Client,
			"value":  v.Value,
			"type":   v.Type,
			"date":   v.Date,
			"notes":  strings.TrimSpace(in.Notes),
		}
		if err := tx.Model(&transactions.Transaction{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("transaction_id = ?", id).Delete(&transactions.TransactionItem{}).Error; err != nil {
			return err
		}
		for i, a := range arts {
			item := transactions.TransactionItem{
				TransactionID: id,
				ArtworkID:     a.ID,
				Title:         a.Title,
				Position:      i,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return setStatuses(tx, arts, after)
	})
	if err != nil {
		s.Log.Error().Err(err).Uint("transaction_id", id).Msg("transaction update failed")
		return fail(CodeStoreError, "Erro ao atualizar transação.")
	}
	return okID("Transação atualizada com sucesso!", id)
}

// RegisterReturn creates a new return transaction referencing the
// original through the notes convention and frees the returned
// artworks. Returns are append-only: the original record never changes.
func (s *TransactionService) RegisterReturn(originalID uint, date, notes string, artworkRefs []string) Result {
	original, found := s.Get(originalID)
	if !found {
		return fail(CodeNotFound, "Transação original não encontrada.")
	}

	when, err := dates.Parse(date)
	if err != nil {
		return fail(CodeInvalidDate, "Data da devolução deve estar no formato DD/MM/YYYY.")
	}

	var subset []*catalog.Artwork
	if len(artworkRefs) == 0 {
		for _, it := range original.Items {
			a, itemFound := s.Engine.Resolve(fmt.Sprint(it.ArtworkID))
			if !itemFound {
				return fail(CodeArtworkNotFound, fmt.Sprintf("Obra '%s' não encontrada.", it.Title))
			}
			subset = append(subset, a)
		}
	} else {
		resolved, res := s.resolveAll(artworkRefs)
		if !res.OK {
			return res
		}
		for _, a := range resolved {
			if !original.HasArtwork(a.ID) {
				return fail(CodeArtworkNotReturnable, fmt.Sprintf("Obra '%s' não pertence à transação original.", a.Title))
			}
		}
		subset = resolved
	}

	if prior := s.priorReturnFor(originalID, subset); prior != nil {
		return fail(CodeDuplicateTransaction,
			fmt.Sprintf("Obra devolvida em %s na transação ID: %d", dates.Format(prior.Date), prior.ID))
	}

	if strings.TrimSpace(notes) == "" {
		notes = transactions.ReturnNoteFor(originalID)
	}

	ret := transactions.Transaction{
		Client:       original.Client,
		Value:        decimal.Zero,
		Type:         transactions.TypeReturn,
		Date:         when,
		Notes:        notes,
		RegisteredAt: s.Now(),
	}
	for i, a := range subset {
		ret.Items = append(ret.Items, transactions.TransactionItem{
			ArtworkID: a.ID,
			Title:     a.Title,
			Position:  i,
		})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ret).Error; err != nil {
			return err
		}
		return setStatuses(tx, subset, catalog.StatusAvailable)
	})
	if err != nil {
		s.Log.Error().Err(err).Uint("original_id", originalID).Msg("return insert failed")
		return fail(CodeStoreError, "Erro ao registrar devolução.")
	}
	return okID(fmt.Sprintf("Devolução registrada com sucesso! ID: %d", ret.ID), ret.ID)
}

// CheckReturn finds the first return registered against the given
// transaction, if any.
func (s *TransactionService) CheckReturn(originalID uint) (*ReturnInfo, bool) {
	all, err := s.List()
	if err != nil {
		return nil, false
	}
	for i := range all {
		if all[i].IsReturnOf(originalID) {
			return &ReturnInfo{ID: all[i].ID, Date: all[i].Date}, true
		}
	}
	return nil, false
}

func (s *TransactionService) List() ([]transactions.Transaction, error) {
	var out []transactions.Transaction
	err := s.DB.Preload("Items", orderItems).Order("id ASC").Find(&out).Error
	return out, err
}

func (s *TransactionService) Get(id uint) (*transactions.Transaction, bool) {
	var t transactions.Transaction
	err := s.DB.Preload("Items", orderItems).First(&t, id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.Log.Error().Err(err).Uint("transaction_id", id).Msg("transaction load failed")
		}
		return nil, false
	}
	return &t, true
}

type validatedTransaction struct {
	Client string
	Value  decimal.Decimal
	Type   transactions.Type
	Date   time.Time
}

func (s *TransactionService) validate(in TransactionInput) (validatedTransaction, Result) {
	var v validatedTransaction

	v.Client = strings.TrimSpace(in.Client)
	if v.Client == "" {
		return v, fail(CodeMissingField, "Cliente é obrigatório.")
	}
	if strings.TrimSpace(in.Value) == "" {
		return v, fail(CodeMissingField, "Valor é obrigatório.")
	}
	value, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(in.Value), ",", "."))
	if err != nil {
		return v, fail(CodeInvalidNumeric, "Valor deve ser um número válido.")
	}
	if value.IsNegative() {
		return v, fail(CodeInvalidNumeric, "Valor não pode ser negativo.")
	}
	v.Value = value

	v.Type = transactions.Type(strings.TrimSpace(in.Type))
	if v.Type == "" {
		return v, fail(CodeMissingField, "Tipo é obrigatório.")
	}
	if !transactions.ValidType(v.Type) {
		return v, fail(CodeMissingField, "Tipo de transação inválido.")
	}

	if strings.TrimSpace(in.Date) == "" {
		return v, fail(CodeMissingField, "Data da transação é obrigatória.")
	}
	when, err := dates.Parse(strings.TrimSpace(in.Date))
	if err != nil {
		return v, fail(CodeInvalidDate, "Data da transação deve estar no formato DD/MM/YYYY.")
	}
	v.Date = when

	if len(in.Artworks) == 0 {
		return v, fail(CodeMissingField, "É necessário informar ao menos uma obra.")
	}
	return v, ok("")
}

func (s *TransactionService) resolveAll(refs []string) ([]*catalog.Artwork, Result) {
	arts := make([]*catalog.Artwork, 0, len(refs))
	for _, ref := range refs {
		a, found := s.Engine.Resolve(ref)
		if !found {
			return nil, fail(CodeArtworkNotFound, fmt.Sprintf("Obra '%s' não encontrada.", strings.TrimSpace(ref)))
		}
		arts = append(arts, a)
	}
	return arts, ok("")
}

func (s *TransactionService) duplicateExists(client string, date time.Time, t transactions.Type, value decimal.Decimal, excludeID uint) bool {
	q := s.DB.Model(&transactions.Transaction{}).
		Where("client = ? AND date = ?", client, date)
	if s.DuplicateKey == DuplicateByValue {
		q = q.Where("value = ?", value)
	} else {
		q = q.Where("type = ?", t)
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		s.Log.Error().Err(err).Msg("transaction duplicate check failed")
		return false
	}
	return count > 0
}

func (s *TransactionService) duplicateFailure() Result {
	if s.DuplicateKey == DuplicateByValue {
		return fail(CodeDuplicateTransaction, "Já existe uma transação com este cliente, valor e data.")
	}
	return fail(CodeDuplicateTransaction, "Já existe uma transação com este cliente, tipo e data.")
}

// priorReturnFor finds a return of the original transaction whose items
// intersect the subset about to be returned.
func (s *TransactionService) priorReturnFor(originalID uint, subset []*catalog.Artwork) *transactions.Transaction {
	all, err := s.List()
	if err != nil {
		s.Log.Error().Err(err).Msg("return scan failed")
		return nil
	}
	for i := range all {
		if !all[i].IsReturnOf(originalID) {
			continue
		}
		for _, a := range subset {
			if all[i].HasArtwork(a.ID) {
				return &all[i]
			}
		}
	}
	return nil
}

func commitFailure(title string, t transactions.Type) Result {
	if t == transactions.TypeReturn {
		return fail(CodeArtworkNotReturnable, fmt.Sprintf("Obra '%s' não pode ser devolvida.", title))
	}
	return fail(CodeArtworkNotAvailable, fmt.Sprintf("Obra '%s' não está disponível para %s.", title, t))
}

func setStatuses(tx *gorm.DB, arts []*catalog.Artwork, status catalog.Status) error {
	for _, a := range arts {
		if err := tx.Model(&catalog.Artwork{}).Where("id = ?", a.ID).Update("status", status).Error; err != nil {
			return err
		}
	}
	return nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
