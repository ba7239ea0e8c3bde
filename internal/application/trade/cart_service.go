package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/cart"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/expense"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/strategy"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/trade"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/logger"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/telemetry"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// DefaultMaxCartItems caps the number of lines in one cart
const DefaultMaxCartItems = 200

// maxSaveAttempts bounds how often a session update is replayed after
// another request saved the same session first
const maxSaveAttempts = 3

// CartService handles cart session operations: item mutations, expense
// distribution and checkout
type CartService struct {
	store           trade.CartSessionStore
	orders          trade.OrderRepository
	logger          *zap.Logger
	metrics         *telemetry.EngineMetrics
	maxItems        int
	defaultStrategy strategy.DistributionMethod
	sanitizer       *bluemonday.Policy
	newID           func() string
}

// CartServiceOption configures a CartService
type CartServiceOption func(*CartService)

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) CartServiceOption {
	return func(s *CartService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the engine metrics recorder
func WithMetrics(m *telemetry.EngineMetrics) CartServiceOption {
	return func(s *CartService) {
		s.metrics = m
	}
}

// WithMaxItems sets the item cap. Zero or less disables the cap.
func WithMaxItems(n int) CartServiceOption {
	return func(s *CartService) {
		s.maxItems = n
	}
}

// WithDefaultStrategy sets the method used for expense requests that name none
func WithDefaultStrategy(method strategy.DistributionMethod) CartServiceOption {
	return func(s *CartService) {
		if method.IsValid() {
			s.defaultStrategy = method
		}
	}
}

// NewCartService creates a new CartService
func NewCartService(store trade.CartSessionStore, orders trade.OrderRepository, opts ...CartServiceOption) *CartService {
	s := &CartService{
		store:           store,
		orders:          orders,
		logger:          zap.NewNop(),
		maxItems:        DefaultMaxCartItems,
		defaultStrategy: strategy.DistributionDivided,
		sanitizer:       bluemonday.StrictPolicy(),
		newID:           newSessionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newSessionID() string {
	return ulid.Make().String()
}

// NewSession starts an empty cart of the given type
func (s *CartService) NewSession(ctx context.Context, cartType string) (*CartResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "new_session", telemetry.AttrCartType, cartType)
	defer span.End()

	session := trade.NewCartSession(s.newID(), trade.CartType(cartType))
	if err := s.store.Save(ctx, session); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save cart session: %w", err)
	}

	telemetry.SetAttributes(span, telemetry.AttrSessionID, session.ID)
	logger.WithLogger(ctx, s.logger).Debug("Cart session created",
		zap.String("session_id", session.ID),
		zap.String("cart_type", session.Type.String()),
	)
	resp := ToCartResponse(session)
	return &resp, nil
}

// GetCart returns the cart stored under sessionID. Unknown or expired
// sessions read as an empty purchase cart.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "get", telemetry.AttrSessionID, sessionID)
	defer span.End()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp := ToCartResponse(session)
	return &resp, nil
}

// AddItem adds an item and redistributes the stored expenses
func (s *CartService) AddItem(ctx context.Context, sessionID string, input CartItemInput) (*CartResponse, error) {
	item := input.ToCartItem()
	return s.mutate(ctx, sessionID, "add_item", func(c *cart.Cart) error {
		if !item.IsPiece() && s.maxItems > 0 && c.Len() >= s.maxItems {
			return shared.ErrCartFull
		}
		return rejected(c.Add(item))
	})
}

// UpdateItem replaces an item's fields and redistributes the stored expenses
func (s *CartService) UpdateItem(ctx context.Context, sessionID string, input CartItemInput) (*CartResponse, error) {
	item := input.ToCartItem()
	return s.mutate(ctx, sessionID, "update_item", func(c *cart.Cart) error {
		return rejected(c.Update(item))
	})
}

// RemoveItem deletes an item and redistributes the stored expenses over the
// remaining ones
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, key cart.ItemKey) (*CartResponse, error) {
	return s.mutate(ctx, sessionID, "remove_item", func(c *cart.Cart) error {
		if !c.Remove(key) {
			return rejected(cart.Reject(key, cart.ReasonItemNotFound))
		}
		return nil
	})
}

// ClearCart drops every item and expense request of the session
func (s *CartService) ClearCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "clear", telemetry.AttrSessionID, sessionID)
	defer span.End()

	session, err := s.update(ctx, sessionID, func(session *trade.CartSession) error {
		session.Clear()
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp := ToCartResponse(session)
	return &resp, nil
}

// DistributeExpenses replaces the session's expense requests and spreads
// them over the current items. Categories missing from req are zeroed.
func (s *CartService) DistributeExpenses(ctx context.Context, sessionID string, req DistributeExpensesRequest) (*CartResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "distribute_expenses",
		telemetry.AttrSessionID, sessionID,
		"expense.request_count", len(req.Expenses),
	)
	defer span.End()

	var resp *CartResponse
	var operationErr error
	telemetry.WithProfilingLabels(ctx, map[string]string{
		telemetry.ProfilingLabelOperation: "distribute_expenses",
	}, func(c context.Context) {
		requests := ToRequests(req.Expenses, s.defaultStrategy)
		session, err := s.update(c, sessionID, func(session *trade.CartSession) error {
			session.SetExpenses(requests)
			return nil
		})
		if err != nil {
			operationErr = err
			return
		}

		for _, r := range session.Expenses {
			s.metrics.RecordDistribution(c, r.Category.String(), r.Strategy.String())
		}
		out := ToCartResponse(session)
		resp = &out
	})
	if operationErr != nil {
		telemetry.RecordError(span, operationErr)
		return nil, operationErr
	}
	return resp, nil
}

// Summary returns the totals, owner grouped payload and validation state of
// the cart without committing it
func (s *CartService) Summary(ctx context.Context, sessionID string) (*SummaryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "summary", telemetry.AttrSessionID, sessionID)
	defer span.End()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return &SummaryResponse{
		SessionID:  session.ID,
		Summary:    expense.Summarize(session.Items).Round(),
		Payload:    expense.BuildPayload(session.Items),
		Validation: cart.ValidatePurchaseCart(session.Items),
	}, nil
}

// Checkout validates the cart and turns it into an order. The session is
// discarded once the order is stored.
func (s *CartService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "checkout", telemetry.AttrSessionID, sessionID)
	defer span.End()

	var resp *OrderResponse
	var operationErr error
	telemetry.WithProfilingLabels(ctx, map[string]string{
		telemetry.ProfilingLabelOperation: "checkout",
		telemetry.ProfilingLabelCartType:  req.Type,
	}, func(c context.Context) {
		session, err := s.load(c, sessionID)
		if err != nil {
			operationErr = err
			return
		}

		cartType := session.Type
		if req.Type != "" {
			cartType = trade.CartType(req.Type)
		}
		telemetry.SetAttributes(span,
			telemetry.AttrCartType, cartType.String(),
			telemetry.AttrItemCount, len(session.Items),
		)

		if len(session.Items) == 0 {
			operationErr = shared.ErrEmptyCart
			return
		}
		if result := cart.ValidatePurchaseCart(session.Items); !result.OK {
			s.metrics.RecordRejection(c, string(result.Reason))
			telemetry.SetAttributes(span, telemetry.AttrReason, string(result.Reason))
			logger.WithLogger(c, s.logger).Warn("Cart rejected at checkout",
				zap.String("reason", string(result.Reason)),
				zap.String("product_id", result.ProductID),
				zap.String("owner_id", result.OwnerID),
			)
			operationErr = rejected(result)
			return
		}

		order, err := trade.NewOrder(cartType, session.ID, session.Items, s.sanitizeNote(req.Note))
		if err != nil {
			operationErr = err
			return
		}
		if err := s.orders.Save(c, order); err != nil {
			operationErr = fmt.Errorf("failed to save order: %w", err)
			return
		}
		if err := s.store.Delete(c, session.ID); err != nil {
			logger.WithLogger(c, s.logger).Warn("Failed to discard checked out cart",
				zap.Error(err),
			)
		}

		s.metrics.RecordCheckout(c, cartType.String())
		logger.WithLogger(c, s.logger).Info("Cart checked out",
			zap.String("order_id", order.ID.String()),
			zap.String("cart_type", cartType.String()),
			zap.Int("items", order.ItemCount),
			zap.String("grand_total", order.GrandTotal.String()),
		)
		out := ToOrderResponse(order)
		resp = &out
	})
	if operationErr != nil {
		telemetry.RecordError(span, operationErr)
		return nil, operationErr
	}
	return resp, nil
}

// GetOrder returns a committed order
func (s *CartService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "get", "order.id", id.String())
	defer span.End()

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

func (s *CartService) mutate(ctx context.Context, sessionID, method string, fn func(*cart.Cart) error) (*CartResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", method, telemetry.AttrSessionID, sessionID)
	defer span.End()

	session, err := s.update(ctx, sessionID, func(session *trade.CartSession) error {
		c := session.Cart()
		if err := fn(c); err != nil {
			return err
		}
		session.Apply(c)
		return nil
	})
	if err != nil {
		var rej *CartRejectedError
		if errors.As(err, &rej) {
			s.metrics.RecordRejection(ctx, string(rej.Result.Reason))
			telemetry.SetAttributes(span, telemetry.AttrReason, string(rej.Result.Reason))
		}
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrItemCount, len(session.Items))

	resp := ToCartResponse(session)
	return &resp, nil
}

// update loads the session, applies fn and saves the result. A save that
// loses a race with another request replays fn on the fresh session.
func (s *CartService) update(ctx context.Context, sessionID string, fn func(*trade.CartSession) error) (*trade.CartSession, error) {
	for attempt := 1; ; attempt++ {
		session, err := s.load(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if err := fn(session); err != nil {
			return nil, err
		}

		err = s.store.Save(ctx, session)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, shared.ErrConcurrentModification) || attempt >= maxSaveAttempts {
			return nil, fmt.Errorf("failed to save cart session: %w", err)
		}
		logger.WithLogger(ctx, s.logger).Debug("Cart session changed concurrently, retrying",
			zap.String("session_id", sessionID),
			zap.Int("attempt", attempt),
		)
	}
}

func (s *CartService) load(ctx context.Context, sessionID string) (*trade.CartSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, shared.NewDomainError("INVALID_SESSION", "Cart session ID is required")
	}
	session, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, shared.ErrNotFound) {
		return trade.NewCartSession(sessionID, trade.CartTypePurchase), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart session: %w", err)
	}
	return session, nil
}

func (s *CartService) sanitizeNote(note string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(note))
}
