package inventory

import (
	"context"
	"time"

	"kisanmandi/internal/logger"
	"kisanmandi/internal/store"
	"kisanmandi/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DateLayout is the display format of Item.AddedDate.
const DateLayout = "2/1/2006"

// Service is an append-only stock ledger. Sales do not deplete it.
type Service interface {
	Restore(ctx context.Context) error
	AddToInventory(ctx context.Context, item Item) (Item, error)
	Items() []Item
}

type service struct {
	repo  Repository
	now   func() time.Time
	items []Item
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Restore(ctx context.Context) error {
	items, err := s.repo.Load(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("discarding unreadable inventory", zap.Error(err))
		items = nil
	}
	s.items = items
	return nil
}

// AddToInventory validates item, fills in a missing id and date, appends
// it and saves the whole ledger. A save failure keeps the item in memory
// and wraps store.ErrNotPersisted.
func (s *service) AddToInventory(ctx context.Context, item Item) (Item, error) {
	log := logger.FromCtx(ctx)

	if err := validate(item); err != nil {
		return Item{}, err
	}
	if item.ID == "" {
		item.ID = "inv-" + uuid.NewString()
	}
	if item.AddedDate == "" {
		item.AddedDate = s.now().Format(DateLayout)
	}
	if item.LossRecord != nil {
		loss := *item.LossRecord
		item.LossRecord = &loss
	}

	next := make([]Item, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, item)
	s.items = next

	if err := s.repo.Save(ctx, next); err != nil {
		log.Error("failed to persist inventory", zap.String("item_id", item.ID), zap.Error(err))
		return cloneItem(item), store.NotPersisted(err)
	}

	log.Info("inventory item added",
		zap.String("item_id", item.ID),
		zap.String("name", item.Name),
		zap.Int("quantity", item.Quantity),
	)
	return cloneItem(item), nil
}

func (s *service) Items() []Item {
	out := make([]Item, len(s.items))
	for i, it := range s.items {
		out[i] = cloneItem(it)
	}
	return out
}

func validate(item Item) error {
	switch {
	case utils.IsBlank(item.Name):
		return ErrInvalidName
	case item.Quantity < 0:
		return ErrInvalidQuantity
	case item.Price < 0:
		return ErrInvalidPrice
	case item.LossRecord != nil && *item.LossRecord < 0:
		return ErrInvalidLoss
	}
	return nil
}

func cloneItem(it Item) Item {
	if it.LossRecord != nil {
		loss := *it.LossRecord
		it.LossRecord = &loss
	}
	return it
}
