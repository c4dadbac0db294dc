package checkout

import (
	"context"
	"fmt"
	"time"

	"masala-kart/internal/cart"
	"masala-kart/internal/coupon"
	"masala-kart/internal/kv"
	"masala-kart/internal/model"
	"masala-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// service implements Service.
type service struct {
	store     kv.Store
	book      coupon.Book
	orders    repository.OrderRepository
	totalizer Totalizer
	clock     func() time.Time
	logger    zerolog.Logger
}

// NewService creates a new checkout service. A nil clock defaults to
// time.Now.
func NewService(
	store kv.Store,
	book coupon.Book,
	orders repository.OrderRepository,
	totalizer Totalizer,
	clock func() time.Time,
	logger zerolog.Logger,
) Service {
	if clock == nil {
		clock = time.Now
	}
	return &service{
		store:     store,
		book:      book,
		orders:    orders,
		totalizer: totalizer,
		clock:     clock,
		logger:    logger.With().Str("service", "checkout").Logger(),
	}
}

// Quote computes a totals preview without side effects.
func (s *service) Quote(ctx context.Context, sessionID string, couponCode *string) (*model.QuoteResponse, error) {
	ledger := cart.Load(ctx, s.store, sessionID, s.logger)
	subtotal := ledger.Subtotal()

	applied, result := s.resolveCoupon(couponCode, subtotal)

	resp := &model.QuoteResponse{
		Totals:       s.totalizer.Totals(subtotal, applied),
		CouponValid:  result.Valid,
		CouponReason: result.Reason,
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Int("subtotal", subtotal).
		Int("total", resp.Totals.Total).
		Bool("coupon_valid", result.Valid).
		Msg("quote computed")

	return resp, nil
}

// PlaceOrder persists the cart as an order with its frozen totals.
func (s *service) PlaceOrder(ctx context.Context, sessionID string, couponCode *string) (*model.OrderResponse, error) {
	ledger := cart.Load(ctx, s.store, sessionID, s.logger)
	lines := ledger.Lines()
	if len(lines) == 0 {
		return nil, model.ErrCartEmpty
	}
	subtotal := ledger.Subtotal()

	var applied *model.Coupon
	if couponCode != nil && *couponCode != "" {
		c, ok := s.book.Lookup(*couponCode)
		if !ok {
			s.logger.Warn().Str("coupon_code", *couponCode).Msg("unknown coupon code")
			return nil, model.ErrCouponNotFound
		}

		result := coupon.Validate(c, subtotal, s.clock())
		if !result.Valid {
			s.logger.Warn().
				Str("coupon_code", c.Code).
				Str("reason", result.Reason).
				Msg("coupon rejected")
			return nil, model.NewDomainError(model.ErrCodeCouponRejected, result.Reason)
		}
		applied = c
	}

	totals := s.totalizer.Totals(subtotal, applied)

	tx, err := s.orders.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := s.clock()
	order := &model.Order{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Subtotal:    totals.Subtotal,
		DeliveryFee: totals.DeliveryFee,
		Discount:    totals.Discount,
		Total:       totals.Total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if applied != nil {
		code := applied.Code
		order.CouponCode = &code
	}

	if err = s.orders.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	orderLines := make([]model.OrderLine, len(lines))
	for i, line := range lines {
		orderLines[i] = model.OrderLine{
			ID:         uuid.New(),
			OrderID:    order.ID,
			Name:       line.Name,
			UnitPrice:  line.Price,
			Quantity:   line.Quantity,
			SpiceLevel: line.SpiceLevel,
			Addons:     line.Addons,
		}
	}

	if err = s.orders.CreateOrderLines(ctx, tx, orderLines); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("line_count", len(orderLines)).
			Msg("failed to create order lines")
		return nil, fmt.Errorf("failed to place order lines: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if applied != nil {
		s.book.RecordUse(applied.Code)
	}
	ledger.Clear(ctx)

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("session_id", sessionID).
		Int("line_count", len(orderLines)).
		Int("total", order.Total).
		Msg("order placed successfully")

	return &model.OrderResponse{Order: *order, Lines: orderLines}, nil
}

// GetOrder retrieves a placed order with its lines.
func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, lines, err := s.orders.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, nil
	}

	return &model.OrderResponse{Order: *order, Lines: lines}, nil
}

// resolveCoupon resolves and validates a coupon for a quote. The
// returned coupon is non-nil only when validation passed.
func (s *service) resolveCoupon(couponCode *string, subtotal int) (*model.Coupon, coupon.Result) {
	if couponCode == nil || *couponCode == "" {
		return nil, coupon.Result{}
	}

	c, ok := s.book.Lookup(*couponCode)
	if !ok {
		return nil, coupon.Result{Valid: false, Reason: model.ErrCouponNotFound.Message}
	}

	result := coupon.Validate(c, subtotal, s.clock())
	if !result.Valid {
		return nil, result
	}
	return c, result
}
