package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/settlement"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSettlementStore_CommitPayment(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	t.Run("saves payment and settles lots", func(t *testing.T) {
		db := setupTestDB(t)
		lots := NewGormLotRepository(db)
		payments := NewGormPaymentRepository(db)
		store := NewGormSettlementStore(db)

		a := newTestLot(t, "sup-1", "a", base)
		b := newTestLot(t, "sup-1", "b", base.Add(time.Minute))
		require.NoError(t, lots.Save(ctx, a))
		require.NoError(t, lots.Save(ctx, b))

		payment, _, err := settlement.NewSupplierPayment("sup-1", []*settlement.Lot{a, b}, decimal.NewFromInt(10),
			settlement.PaymentTender{PaidAmount: decimal.NewFromInt(500)}, "weekly")
		require.NoError(t, err)

		require.NoError(t, store.CommitPayment(ctx, payment, settleLots(t, payment, base.Add(time.Hour), a, b)))

		outstanding, err := lots.FindOutstandingBySupplier(ctx, "sup-1")
		require.NoError(t, err)
		assert.Empty(t, outstanding)

		saved, err := payments.FindBySupplier(ctx, "sup-1")
		require.NoError(t, err)
		require.Len(t, saved, 1)
		assert.Equal(t, payment.ID, saved[0].ID)
		assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, saved[0].LotIDs)
		assert.True(t, payment.PayableAmount.Equal(saved[0].PayableAmount))
		assert.Equal(t, "weekly", saved[0].Note)

		stored, err := lots.FindByIDs(ctx, "sup-1", []uuid.UUID{a.ID})
		require.NoError(t, err)
		require.Len(t, stored, 1)
		require.NotNil(t, stored[0].PaymentID)
		assert.Equal(t, payment.ID, *stored[0].PaymentID)
	})

	t.Run("rolls back when a lot is already settled", func(t *testing.T) {
		db := setupTestDB(t)
		lots := NewGormLotRepository(db)
		payments := NewGormPaymentRepository(db)
		store := NewGormSettlementStore(db)

		a := newTestLot(t, "sup-1", "a", base)
		b := newTestLot(t, "sup-1", "b", base.Add(time.Minute))
		require.NoError(t, lots.Save(ctx, a))
		require.NoError(t, lots.Save(ctx, b))

		payment, _, err := settlement.NewSupplierPayment("sup-1", []*settlement.Lot{a, b}, decimal.Zero,
			settlement.PaymentTender{}, "")
		require.NoError(t, err)

		// another payment settles b first
		rival, err := lots.FindByIDs(ctx, "sup-1", []uuid.UUID{b.ID})
		require.NoError(t, err)
		require.NoError(t, rival[0].MarkSettled(uuid.New(), base))
		n, err := lots.MarkSettled(ctx, "sup-1", rival)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		err = store.CommitPayment(ctx, payment, settleLots(t, payment, base.Add(time.Hour), a, b))
		assert.ErrorIs(t, err, shared.ErrLotSettled)

		saved, err := payments.FindBySupplier(ctx, "sup-1")
		require.NoError(t, err)
		assert.Empty(t, saved)

		outstanding, err := lots.FindOutstandingBySupplier(ctx, "sup-1")
		require.NoError(t, err)
		require.Len(t, outstanding, 1)
		assert.Equal(t, a.ID, outstanding[0].ID)
	})
}

func TestGormPaymentRepository_FindBySupplier(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()

	first := &settlement.SupplierPayment{BaseEntity: shared.NewBaseEntity(), SupplierID: "sup-1"}
	first.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := &settlement.SupplierPayment{BaseEntity: shared.NewBaseEntity(), SupplierID: "sup-1"}
	second.CreatedAt = first.CreatedAt.Add(time.Hour)
	other := &settlement.SupplierPayment{BaseEntity: shared.NewBaseEntity(), SupplierID: "sup-2"}

	for _, p := range []*settlement.SupplierPayment{first, second, other} {
		require.NoError(t, repo.Save(ctx, p))
	}

	found, err := repo.FindBySupplier(ctx, "sup-1")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, second.ID, found[0].ID, "newest first")
	assert.Equal(t, first.ID, found[1].ID)
	assert.Empty(t, found[1].LotIDs)
}
