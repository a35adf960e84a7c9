// Package connectivity tracks whether the device is online. The value is
// informational; nothing is queued or retried on reconnect.
package connectivity

import "sync"

type Listener func(online bool)

type Observer struct {
	mu        sync.Mutex
	online    bool
	nextID    int
	listeners map[int]Listener
}

func NewObserver(initial bool) *Observer {
	return &Observer{
		online:    initial,
		listeners: make(map[int]Listener),
	}
}

func (o *Observer) Online() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.online
}

// Set records the current state and notifies listeners when it changed.
// Listeners run on the caller's goroutine after the lock is released.
func (o *Observer) Set(online bool) {
	o.mu.Lock()
	if o.online == online {
		o.mu.Unlock()
		return
	}
	o.online = online
	ls := make([]Listener, 0, len(o.listeners))
	for _, l := range o.listeners {
		ls = append(ls, l)
	}
	o.mu.Unlock()

	for _, l := range ls {
		l(online)
	}
}

// Subscribe registers fn and returns a function that removes it.
func (o *Observer) Subscribe(fn Listener) (cancel func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.listeners, id)
			o.mu.Unlock()
		})
	}
}
