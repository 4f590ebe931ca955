package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/transactions"
)

func saleInput(refs ...string) TransactionInput {
	return TransactionInput{
		Client:   "Museu X",
		Value:    "250000",
		Type:     string(transactions.TypeSale),
		Date:     "15/06/2026",
		Artworks: refs,
	}
}

func TestCreateSaleHappyPath(t *testing.T) {
	f := newFixture(t)
	id := f.createArtwork(t, "Guernica", "Pablo Picasso")

	res := f.txns.Create(saleInput("Guernica"))
	require.True(t, res.OK, res.Message)
	assert.NotZero(t, res.ID)
	assert.Equal(t, catalog.StatusSold, f.artworkStatus(t, id))

	txn, found := f.txns.Get(res.ID)
	require.True(t, found)
	assert.Equal(t, transactions.TypeSale, txn.Type)
	require.Len(t, txn.Items, 1)
	assert.Equal(t, id, txn.Items[0].ArtworkID)
	assert.Equal(t, "Guernica", txn.Items[0].Title)
}

func TestSoldArtworkRejectsFurtherCommitments(t *testing.T) {
	f := newFixture(t)
	f.createArtwork(t, "Guernica")

	res := f.txns.Create(saleInput("Guernica"))
	require.True(t, res.OK, res.Message)

	second := f.txns.Create(TransactionInput{
		Client:   "Outro Cliente",
		Value:    "500",
		Type:     string(transactions.TypeRental),
		Date:     "16/06/2026",
		Artworks: []string{"Guernica"},
	})
	assert.False(t, second.OK)
	assert.Equal(t, CodeArtworkNotAvailable, second.Code)
	assert.Contains(t, second.Message, "Guernica")
}

func TestCreateValidations(t *testing.T) {
	f := newFixture(t)
	f.createArtwork(t, "Guernica")

	tests := []struct {
		name     string
		mutate   func(*TransactionInput)
		expected Code
	}{
		{"missing client", func(in *TransactionInput) { in.Client = " " }, CodeMissingField},
		{"missing value", func(in *TransactionInput) { in.Value = "" }, CodeMissingField},
		{"bad value", func(in *TransactionInput) { in.Value = "caro" }, CodeInvalidNumeric},
		{"negative value", func(in *TransactionInput) { in.Value = "-10" }, CodeInvalidNumeric},
		{"missing type", func(in *TransactionInput) { in.Type = "" }, CodeMissingField},
		{"unknown type", func(in *TransactionInput) { in.Type = "Permuta" }, CodeMissingField},
		{"missing date", func(in *TransactionInput) { in.Date = "" }, CodeMissingField},
		{"bad date", func(in *TransactionInput) { in.Date = "32/13/2026" }, CodeInvalidDate},
		{"no artworks", func(in *TransactionInput) { in.Artworks = nil }, CodeMissingField},
		{"unknown artwork", func(in *TransactionInput) { in.Artworks = []string{"Fantasma"} }, CodeArtworkNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := saleInput("Guernica")
			tt.mutate(&in)
			res := f.txns.Create(in)
			assert.False(t, res.OK)
			assert.Equal(t, tt.expected, res.Code)
		})
	}
}

func TestDuplicateTransactionHeuristic(t *testing.T) {
	f := newFixture(t)
	f.createArtwork(t, "Guernica")
	f.createArtwork(t, "Abaporu")

	first := f.txns.Create(saleInput("Guernica"))
	require.True(t, first.OK, first.Message)

	// Same client, date and type trips the default heuristic.
	dup := f.txns.Create(saleInput("Abaporu"))
	assert.False(t, dup.OK)
	assert.Equal(t, CodeDuplicateTransaction, dup.Code)

	// Matching on value instead lets a different value through.
	f.txns.DuplicateKey = DuplicateByValue
	in := saleInput("Abaporu")
	in.Value = "999"
	res := f.txns.Create(in)
	assert.True(t, res.OK, res.Message)
}

func TestReturnRequiresRentedOrOnLoan(t *testing.T) {
	f := newFixture(t)
	f.createArtwork(t, "Guernica")

	res := f.txns.Create(TransactionInput{
		Client:   "Museu X",
		Value:    "0",
		Type:     string(transactions.TypeReturn),
		Date:     "15/06/2026",
		Artworks: []string{"Guernica"},
	})
	assert.False(t, res.OK)
	assert.Equal(t, CodeArtworkNotReturnable, res.Code)
}

func TestRentalThenReturnViaCreate(t *testing.T) {
	f := newFixture(t)
	id := f.createArtwork(t, "Guernica")

	rental := f.txns.Create(TransactionInput{
		Client:   "Museu X",
		Value:    "500",
		Type:     string(transactions.TypeRental),
		Date:     "15/06/2026",
		Artworks: []string{"Guernica"},
	})
	require.True(t, rental.OK, rental.Message)
	require.Equal(t, catalog.StatusRented, f.artworkStatus(t, id))

	ret := f.txns.Create(TransactionInput{
		Client:   "Museu X",
		Value:    "0",
		Type:     string(transactions.TypeReturn),
		Date:     "20/06/2026",
		Artworks: []string{"Guernica"},
	})
	require.True(t, ret.OK, ret.Message)
	assert.Equal(t, catalog.StatusAvailable, f.artworkStatus(t, id))
}

func TestRegisterReturn(t *testing.T) {
	f := newFixture(t)
	id := f.createArtwork(t, "Guernica")

	rental := f.txns.Create(TransactionInput{
		Client:   "Museu X",
		Value:    "500",
		Type:     string(transactions.TypeLoan),
		Date:     "15/06/2026",
		Artworks: []string{"Guernica"},
	})
	require.True(t, rental.OK, rental.Message)
	require.Equal(t, catalog.StatusOnLoan, f.artworkStatus(t, id))

	res := f.txns.RegisterReturn(rental.ID, "20/06/2026", "", nil)
	require.True(t, res.OK, res.Message)
	assert.Equal(t, catalog.StatusAvailable, f.artworkStatus(t, id))

	ret, found := f.txns.Get(res.ID)
	require.True(t, found)
	assert.Equal(t, transactions.TypeReturn, ret.Type)
	assert.Equal(t, transactions.ReturnNoteFor(rental.ID), ret.Notes)
	assert.True(t, ret.Value.IsZero())
	require.Len(t, ret.Items, 1)
	assert.Equal(t, id, ret.Items[0].ArtworkID)

	info, found := f.txns.CheckReturn(rental.ID)
	require.True(t, found)
	assert.Equal(t, res.ID, info.ID)
}

func TestRegisterReturnTwiceFails(t *testing.T) {
	f := newFixture(t)
	f.createArtwork(t, "Guernica")

	rental := f.txns.Create(TransactionInput{
		Client:   "Museu X",
		Value:    "500",
		Type:     string(transactions.TypeRental),
		Date:     "15/06/2026",
		Artworks: []string{"Guernica"},
	})
	require.True(t, rental.OK, rental.Message)

	first := f.txns.RegisterReturn(rental.ID, "20/06/2026", "", nil)
	require.True(t, first.OK, first.Message)

	second := f.txns.RegisterReturn(rental.ID, "21/06/2026", "", nil)
	assert.False(t, second.OK)
	assert.Equal(t, CodeDuplicateTransaction, second.Code)
	assert.Contains(t, second.Message, "20/06/2026")
	assert.Contains(t, second.Message, fmt.Sprint(first.ID))
}

func TestRegisterReturnSubset(t *testing.T) {
	f := newFixture(t)
	idA := f.createArtwork(t, "Guernica")
	idB := f.createArtwork(t, "Abaporu")

	rental := f.txns.Create(TransactionInput{
		Client:   "Museu X",
		Value:    "500",
		Type:     string(transactions.TypeRental),
		Date:     "15/06/2026",
		Artworks: []string{"Guernica", "Abaporu"},
	})
	require.True(t, rental.OK, rental.Message)

	res := f.txns.RegisterReturn(rental.ID, "20/06/2026", "", []string{"Guernica"})
	require.True(t, res.OK, res.Message)
	assert.Equal(t, catalog.StatusAvailable, f.artworkStatus(t, idA))
	assert.Equal(t, catalog.StatusRented, f.artworkStatus(t, idB))

	// Remaining artwork can still be returned separately.
	res = f.txns.RegisterReturn(rental.ID, "21/06/2026", "", []string{"Abaporu"})
	require.True(t, res.OK, res.Message)
	assert.Equal(t, catalog.StatusAvailable, f.artworkStatus(t, idB))

	// An artwork outside the original transaction is rejected.
	f.createArtwork(t, "Intrusa")
	res = f.txns.RegisterReturn(rental.ID, "22/06/2026", "", []string{"Intrusa"})
	assert.False(t, res.OK)
	assert.Equal(t, CodeArtworkNotReturnable, res.Code)
}

func TestUpdateImmutableTransactions(t *testing.T) {
	f := newFixture(t)
	f.createArtwork(t, "Guernica")

	rental := f.txns.Create(TransactionInput{
		Client:   "Museu X",
		Value:    "500",
		Type:     string(transactions.TypeRental),
		Date:     "15/06/2026",
		Artworks: []string{"Guernica"},
	})
	require.True(t, rental.OK, rental.Message)

	ret := f.txns.RegisterReturn(rental.ID, "20/06/2026", "", nil)
	require.True(t, ret.OK, ret.Message)

	// Editing the return itself is forbidden.
	res := f.txns.Update(ret.ID, saleInput("Guernica"))
	assert.False(t, res.OK)
	assert.Equal(t, CodeImmutableTransaction, res.Code)

	// So is editing a transaction that already has a return.
	res = f.txns.Update(rental.ID, saleInput("Guernica"))
	assert.False(t, res.OK)
	assert.Equal(t, CodeImmutableTransaction, res.Code)
}

func TestUpdateExemptsExistingArtworks(t *testing.T) {
	f := newFixture(t)
	idA := f.createArtwork(t, "Guernica")
	idB := f.createArtwork(t, "Abaporu")

	rental := f.txns.Create(TransactionInput{
		Client:   "Museu X",
		Value:    "500",
		Type:     string(transactions.TypeRental),
		Date:     "15/06/2026",
		Artworks: []string{"Guernica"},
	})
	require.True(t, rental.OK, rental.Message)
	require.Equal(t, catalog.StatusRented, f.artworkStatus(t, idA))

	// Guernica is already on this rental; adding Abaporu works because
	// Abaporu is available.
	res := f.txns.Update(rental.ID, TransactionInput{
		Client:   "Museu X",
		Value:    "700",
		Type:     string(transactions.TypeRental),
		Date:     "15/06/2026",
		Artworks: []string{"Guernica", "Abaporu"},
	})
	require.True(t, res.OK, res.Message)
	assert.Equal(t, catalog.StatusRented, f.artworkStatus(t, idA))
	assert.Equal(t, catalog.StatusRented, f.artworkStatus(t, idB))

	txn, found := f.txns.Get(rental.ID)
	require.True(t, found)
	assert.Len(t, txn.Items, 2)
}

func TestUpdateKeepsStatusOfDroppedArtwork(t *testing.T) {
	f := newFixture(t)
	idA := f.createArtwork(t, "Guernica")
	idB := f.createArtwork(t, "Abaporu")

	rental := f.txns.Create(TransactionInput{
		Client:   "Museu X",
		Value:    "500",
		Type:     string(transactions.TypeRental),
		Date:     "15/06/2026",
		Artworks: []string{"Guernica", "Abaporu"},
	})
	require.True(t, rental.OK, rental.Message)

	res := f.txns.Update(rental.ID, TransactionInput{
		Client:   "Museu X",
		Value:    "500",
		Type:     string(transactions.TypeRental),
		Date:     "15/06/2026",
		Artworks: []string{"Guernica"},
	})
	require.True(t, res.OK, res.Message)

	txn, found := f.txns.Get(rental.ID)
	require.True(t, found)
	require.Len(t, txn.Items, 1)
	assert.Equal(t, idA, txn.Items[0].ArtworkID)

	// Only the new item set is re-stamped; the dropped artwork keeps the
	// status the rental gave it.
	assert.Equal(t, catalog.StatusRented, f.artworkStatus(t, idA))
	assert.Equal(t, catalog.StatusRented, f.artworkStatus(t, idB))
}

func TestUpdateRejectsCommittedAddition(t *testing.T) {
	f := newFixture(t)
	f.createArtwork(t, "Guernica")
	f.createArtwork(t, "Abaporu")

	sale := f.txns.Create(saleInput("Abaporu"))
	require.True(t, sale.OK, sale.Message)

	rental := f.txns.Create(TransactionInput{
		Client:   "Outro Museu",
		Value:    "500",
		Type:     string(transactions.TypeRental),
		Date:     "16/06/2026",
		Artworks: []string{"Guernica"},
	})
	require.True(t, rental.OK, rental.Message)

	res := f.txns.Update(rental.ID, TransactionInput{
		Client:   "Outro Museu",
		Value:    "500",
		Type:     string(transactions.TypeRental),
		Date:     "16/06/2026",
		Artworks: []string{"Guernica", "Abaporu"},
	})
	assert.False(t, res.OK)
	assert.Equal(t, CodeArtworkNotAvailable, res.Code)
}
