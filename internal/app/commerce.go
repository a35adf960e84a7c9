package app

import (
	"context"
	"fmt"

	"kisanmandi/internal/cart"
	"kisanmandi/internal/inventory"
	"kisanmandi/internal/logger"
	"kisanmandi/internal/order"
	"kisanmandi/internal/payment"
	"kisanmandi/internal/product"
	"kisanmandi/internal/user"
	"kisanmandi/internal/weather"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (a *App) Catalog() []product.Product {
	return a.catalog.List()
}

// Marketplace lists what the current user shops for: farmers buy inputs,
// everyone else buys crops.
func (a *App) Marketplace() []product.Product {
	a.mu.Lock()
	u := a.users.Current()
	a.mu.Unlock()

	if u != nil && u.Role == user.RoleFarmer {
		return a.catalog.ByCategory(product.CategoryInput)
	}
	return a.catalog.ByCategory(product.CategoryCrop)
}

// Weather never fails; the static forecast stands in when the provider does.
func (a *App) Weather(ctx context.Context) weather.Info {
	info, err := a.weather.Current(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("weather unavailable, using default", zap.Error(err))
		return weather.Default()
	}
	return info
}

func (a *App) AddToCart(ctx context.Context, p product.Product) (cart.Item, error) {
	var item cart.Item
	err := a.mutate(ctx, func() error {
		var err error
		item, err = a.cart.AddToCart(p)
		return err
	})
	return item, err
}

func (a *App) AddToCartByID(ctx context.Context, productID string) (cart.Item, error) {
	p, ok := a.catalog.Get(productID)
	if !ok {
		return cart.Item{}, fmt.Errorf("%w: %q", ErrUnknownProduct, productID)
	}
	return a.AddToCart(ctx, p)
}

func (a *App) RemoveFromCart(ctx context.Context, productID string) bool {
	var removed bool
	_ = a.mutate(ctx, func() error {
		removed = a.cart.RemoveFromCart(productID)
		return nil
	})
	return removed
}

func (a *App) ClearCart(ctx context.Context) {
	_ = a.mutate(ctx, func() error {
		a.cart.ClearCart()
		return nil
	})
}

func (a *App) Cart() []cart.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Items()
}

func (a *App) CartTotal() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Total()
}

// PlaceOrder charges the cart total, records the order and empties the
// cart as one step. An empty cart returns order.ErrEmptyCart and changes
// nothing. A declined charge leaves the cart untouched.
func (a *App) PlaceOrder(ctx context.Context) (*order.Order, error) {
	log := logger.FromCtx(ctx)

	var placed *order.Order
	err := a.mutate(ctx, func() error {
		items := a.cart.Items()
		if len(items) == 0 {
			return order.ErrEmptyCart
		}

		var role user.Role
		payer := ""
		if u := a.users.Current(); u != nil {
			role = u.Role
			payer = u.ID
		}

		receipt, err := a.payments.Charge(ctx, payment.ChargeRequest{
			Reference: "chk-" + uuid.NewString(),
			PayerID:   payer,
			Amount:    cart.ComputeTotal(items),
			Currency:  payment.DefaultCurrency,
		})
		if err != nil {
			log.Error("payment failed", zap.Error(err))
			return fmt.Errorf("%w: %w", ErrPaymentDeclined, err)
		}
		if receipt.Status != payment.StatusSucceeded {
			return ErrPaymentDeclined
		}

		o, err := a.orders.PlaceOrder(ctx, items, role)
		if o == nil {
			return err
		}
		placed = o
		a.cart.ClearCart()
		a.metrics.OrdersPlaced.Inc()

		log.Info("checkout completed",
			zap.String("order_id", o.ID),
			zap.String("payment_id", receipt.ID),
			zap.Float64("total", o.Total),
			zap.Int("lines", len(o.Items)))
		return err
	})
	return placed, err
}

func (a *App) Orders() []order.Order {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.orders.Orders()
}

// AddToInventory is open to farmers only.
func (a *App) AddToInventory(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	var added inventory.Item
	err := a.mutate(ctx, func() error {
		u := a.users.Current()
		if u == nil || u.Role != user.RoleFarmer {
			return ErrFarmerOnly
		}
		var err error
		added, err = a.inventory.AddToInventory(ctx, item)
		return err
	})
	return added, err
}

func (a *App) Inventory() []inventory.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inventory.Items()
}
