package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/settlement"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/logger"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PaymentService settles supplier lots: it previews what is owed for a
// selection of lots and commits payments against them
type PaymentService struct {
	lots      settlement.LotRepository
	payments  settlement.PaymentRepository
	store     settlement.Store
	logger    *zap.Logger
	metrics   *telemetry.EngineMetrics
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	lots settlement.LotRepository,
	payments settlement.PaymentRepository,
	store settlement.Store,
	zl *zap.Logger,
	metrics *telemetry.EngineMetrics,
) *PaymentService {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &PaymentService{
		lots:      lots,
		payments:  payments,
		store:     store,
		logger:    zl,
		metrics:   metrics,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// RegisterLot records a new outstanding lot
func (s *PaymentService) RegisterLot(ctx context.Context, req RegisterLotRequest) (*LotResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "register_lot", telemetry.AttrSupplierID, req.SupplierID)
	defer span.End()

	lot, err := settlement.NewLot(
		req.SupplierID,
		req.ProductID,
		strings.TrimSpace(req.LotName),
		req.TotalSell.Decimal,
		req.TotalExpense.Decimal,
		req.ExtraExpense.Decimal,
		req.OriginalProfit.Decimal,
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.lots.Save(ctx, lot); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save lot: %w", err)
	}

	resp := ToLotResponse(lot)
	return &resp, nil
}

// ListOutstandingLots returns the supplier's unsettled lots, oldest first
func (s *PaymentService) ListOutstandingLots(ctx context.Context, supplierID string) ([]LotResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "list_outstanding_lots", telemetry.AttrSupplierID, supplierID)
	defer span.End()

	lots, err := s.lots.FindOutstandingBySupplier(ctx, supplierID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}
	return ToLotResponses(lots), nil
}

// Preview computes the settlement of the selected lots without storing
// anything
func (s *PaymentService) Preview(ctx context.Context, req PaymentRequest) (*PreviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "preview",
		telemetry.AttrSupplierID, req.SupplierID,
		telemetry.AttrLotCount, len(req.LotIDs),
	)
	defer span.End()

	lots, err := s.selectLots(ctx, req.SupplierID, req.LotIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	payment, summary, err := settlement.NewSupplierPayment(req.SupplierID, lots, req.DiscountPercentage.Decimal, req.Tender(), "")
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return &PreviewResponse{
		SupplierID:         req.SupplierID,
		LotIDs:             payment.LotIDs,
		DiscountPercentage: payment.DiscountPercentage.String(),
		Summary:            summary,
	}, nil
}

// Pay commits a payment for the selected lots and marks them settled.
// Lots settled by a concurrent payment make the whole payment fail.
func (s *PaymentService) Pay(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "pay",
		telemetry.AttrSupplierID, req.SupplierID,
		telemetry.AttrLotCount, len(req.LotIDs),
	)
	defer span.End()

	var resp *PaymentResponse
	var operationErr error
	telemetry.WithProfilingLabels(ctx, map[string]string{
		telemetry.ProfilingLabelOperation: "supplier_payment",
	}, func(c context.Context) {
		lots, err := s.selectLots(c, req.SupplierID, req.LotIDs)
		if err != nil {
			operationErr = err
			return
		}

		note := strings.TrimSpace(s.sanitizer.Sanitize(req.Note))
		payment, _, err := settlement.NewSupplierPayment(req.SupplierID, lots, req.DiscountPercentage.Decimal, req.Tender(), note)
		if err != nil {
			operationErr = err
			return
		}

		at := s.now()
		for _, lot := range lots {
			if err := lot.MarkSettled(payment.ID, at); err != nil {
				operationErr = err
				return
			}
		}
		if err := s.store.CommitPayment(c, payment, lots); err != nil {
			operationErr = fmt.Errorf("failed to commit payment: %w", err)
			return
		}

		s.metrics.RecordPayment(c, payment.PayableAmount)
		logger.WithLogger(c, s.logger).Info("Supplier payment committed",
			zap.String("payment_id", payment.ID.String()),
			zap.String("supplier_id", payment.SupplierID),
			zap.Int("lots", len(payment.LotIDs)),
			zap.String("payable_amount", payment.PayableAmount.String()),
			zap.String("due_amount", payment.DueAmount.String()),
		)
		out := ToPaymentResponse(payment)
		resp = &out
	})
	if operationErr != nil {
		telemetry.RecordError(span, operationErr)
		return nil, operationErr
	}
	return resp, nil
}

// ListPayments returns a supplier's payments, newest first
func (s *PaymentService) ListPayments(ctx context.Context, supplierID string) ([]PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "list_payments", telemetry.AttrSupplierID, supplierID)
	defer span.End()

	payments, err := s.payments.FindBySupplier(ctx, supplierID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return ToPaymentResponses(payments), nil
}

// selectLots loads the requested lots in request order. Every id must name
// a lot of the supplier.
func (s *PaymentService) selectLots(ctx context.Context, supplierID string, ids []uuid.UUID) ([]*settlement.Lot, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, shared.ErrNoLots
	}

	found, err := s.lots.FindByIDs(ctx, supplierID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load lots: %w", err)
	}

	byID := make(map[uuid.UUID]*settlement.Lot, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}
	lots := make([]*settlement.Lot, 0, len(ids))
	for _, id := range ids {
		l, ok := byID[id]
		if !ok {
			return nil, shared.NewDomainError(shared.ErrNotFound.Code, fmt.Sprintf("Lot %s not found for supplier", id))
		}
		lots = append(lots, l)
	}
	return lots, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
