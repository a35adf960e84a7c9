// Package app is the single entry point the presentation layer talks to.
// It owns the engines, serializes every mutation and tells subscribers
// about the resulting state.
package app

import (
	"context"
	"errors"
	"sync"

	"kisanmandi/internal/assistant"
	"kisanmandi/internal/cart"
	"kisanmandi/internal/connectivity"
	"kisanmandi/internal/inventory"
	"kisanmandi/internal/logger"
	"kisanmandi/internal/metrics"
	"kisanmandi/internal/order"
	"kisanmandi/internal/payment"
	"kisanmandi/internal/product"
	"kisanmandi/internal/store"
	"kisanmandi/internal/user"
	"kisanmandi/internal/voice"
	"kisanmandi/internal/weather"

	"go.uber.org/zap"
)

// Deps are the collaborators of an App. Assistant and Voice may be nil.
type Deps struct {
	Users        user.Service
	Catalog      product.Catalog
	Cart         cart.Service
	Orders       order.Service
	Inventory    inventory.Service
	Connectivity *connectivity.Observer
	Payments     payment.Gateway
	Weather      weather.Provider
	Assistant    assistant.Service
	Voice        *voice.Assistant
	Metrics      *Metrics
}

type Metrics struct {
	OrdersPlaced    *metrics.Counter
	PersistFailures *metrics.Counter
	AIFallbacks     *metrics.Counter
}

// Counters lists every counter in reporting order.
func (m *Metrics) Counters() []*metrics.Counter {
	return []*metrics.Counter{m.OrdersPlaced, m.PersistFailures, m.AIFallbacks}
}

func NewMetrics() *Metrics {
	return &Metrics{
		OrdersPlaced:    metrics.NewCounter("orders_placed"),
		PersistFailures: metrics.NewCounter("persist_failures"),
		AIFallbacks:     metrics.NewCounter("ai_fallbacks"),
	}
}

type App struct {
	mu sync.Mutex

	users     user.Service
	catalog   product.Catalog
	cart      cart.Service
	orders    order.Service
	inventory inventory.Service
	online    *connectivity.Observer
	payments  payment.Gateway
	weather   weather.Provider
	assistant assistant.Service
	voice     *voice.Assistant
	metrics   *Metrics

	listenersMu sync.Mutex
	nextID      int
	listeners   map[int]Listener

	stopConnectivity func()
}

func New(d Deps) *App {
	if d.Catalog == nil {
		d.Catalog = product.NewCatalog(product.DefaultProducts())
	}
	if d.Cart == nil {
		d.Cart = cart.NewService()
	}
	if d.Connectivity == nil {
		d.Connectivity = connectivity.NewObserver(true)
	}
	if d.Payments == nil {
		d.Payments = payment.MockGateway{}
	}
	if d.Weather == nil {
		d.Weather = weather.StaticProvider{}
	}
	if d.Metrics == nil {
		d.Metrics = NewMetrics()
	}

	return &App{
		users:     d.Users,
		catalog:   d.Catalog,
		cart:      d.Cart,
		orders:    d.Orders,
		inventory: d.Inventory,
		online:    d.Connectivity,
		payments:  d.Payments,
		weather:   d.Weather,
		assistant: d.Assistant,
		voice:     d.Voice,
		metrics:   d.Metrics,
		listeners: make(map[int]Listener),
	}
}

// Start restores persisted state and forwards connectivity changes to
// subscribers. Unreadable state is dropped by the engines, so Start only
// fails when a restore itself errors.
func (a *App) Start(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	a.mu.Lock()
	_, userErr := a.users.Restore(ctx)
	orderErr := a.orders.Restore(ctx)
	invErr := a.inventory.Restore(ctx)
	a.mu.Unlock()

	if err := errors.Join(userErr, orderErr, invErr); err != nil {
		log.Error("failed to restore session", zap.Error(err))
		return err
	}

	a.stopConnectivity = a.online.Subscribe(func(bool) {
		a.notify()
	})
	a.notify()
	return nil
}

// Close detaches the App from the connectivity observer.
func (a *App) Close() {
	if a.stopConnectivity != nil {
		a.stopConnectivity()
	}
}

func (a *App) Metrics() *Metrics {
	return a.metrics
}

// Subscribe registers fn to run after every mutation, on the goroutine
// that made it and outside the facade lock.
func (a *App) Subscribe(fn Listener) (cancel func()) {
	a.listenersMu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.listenersMu.Lock()
			delete(a.listeners, id)
			a.listenersMu.Unlock()
		})
	}
}

func (a *App) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *App) snapshotLocked() State {
	items := a.cart.Items()
	return State{
		User:      a.users.Current(),
		Language:  a.users.Language(),
		Cart:      items,
		CartTotal: cart.ComputeTotal(items),
		Orders:    a.orders.Orders(),
		Inventory: a.inventory.Items(),
		Online:    a.online.Online(),
	}
}

func (a *App) notify() {
	a.listenersMu.Lock()
	if len(a.listeners) == 0 {
		a.listenersMu.Unlock()
		return
	}
	ls := make([]Listener, 0, len(a.listeners))
	for _, l := range a.listeners {
		ls = append(ls, l)
	}
	a.listenersMu.Unlock()

	st := a.Snapshot()
	for _, l := range ls {
		l(st)
	}
}

// mutate runs fn under the facade lock and then notifies subscribers when
// state may have changed.
func (a *App) mutate(ctx context.Context, fn func() error) error {
	a.mu.Lock()
	err := fn()
	a.mu.Unlock()

	if err != nil && !errors.Is(err, store.ErrNotPersisted) {
		return err
	}
	if err != nil {
		a.metrics.PersistFailures.Inc()
		logger.FromCtx(ctx).Warn("change kept for this session only", zap.Error(err))
	}
	a.notify()
	return err
}

func (a *App) Online() bool {
	return a.online.Online()
}
