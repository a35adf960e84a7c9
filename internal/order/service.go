package order

import (
	"context"
	"time"

	"kisanmandi/internal/cart"
	"kisanmandi/internal/logger"
	"kisanmandi/internal/store"
	"kisanmandi/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Restore(ctx context.Context) error
	PlaceOrder(ctx context.Context, items []cart.Item, role user.Role) (*Order, error)
	Orders() []Order
}

type Option func(*service)

// WithClock overrides the time source used to stamp orders.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithIDGenerator overrides order id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *service) { s.newID = gen }
}

type service struct {
	repo   Repository
	now    func() time.Time
	newID  func() string
	orders []Order
}

func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return "ORD-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the saved history; unreadable history starts empty.
func (s *service) Restore(ctx context.Context) error {
	orders, err := s.repo.Load(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("discarding unreadable order history", zap.Error(err))
		orders = nil
	}
	s.orders = orders
	return nil
}

// PlaceOrder snapshots items into a new PENDING order at the head of the
// history. The order is committed in memory even when saving the history
// fails; the returned error then wraps store.ErrNotPersisted.
func (s *service) PlaceOrder(ctx context.Context, items []cart.Item, role user.Role) (*Order, error) {
	log := logger.FromCtx(ctx)

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	createdAt := s.now()
	o := Order{
		ID:        s.newID(),
		Date:      createdAt.Format(DateLayout),
		CreatedAt: createdAt,
		Items:     cart.CloneItems(items),
		Total:     cart.ComputeTotal(items),
		Status:    StatusPending,
		Type:      TypeForRole(role),
	}

	history := make([]Order, 0, len(s.orders)+1)
	history = append(history, o)
	history = append(history, s.orders...)
	s.orders = history

	placed := o.clone()
	if err := s.repo.Save(ctx, history); err != nil {
		log.Error("failed to persist order history",
			zap.String("order_id", o.ID), zap.Error(err))
		return &placed, store.NotPersisted(err)
	}

	log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.Float64("total", o.Total),
		zap.String("type", string(o.Type)),
	)
	return &placed, nil
}

// Orders returns a copy of the history, newest first.
func (s *service) Orders() []Order {
	return cloneOrders(s.orders)
}
