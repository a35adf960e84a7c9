package connectivity

import (
	"context"
	"net"
	"time"

	"kisanmandi/internal/logger"

	"go.uber.org/zap"
)

// Probe reports whether the network is reachable right now.
type Probe func(ctx context.Context) bool

// TCPProbe dials addr and treats a completed handshake as online.
func TCPProbe(addr string, timeout time.Duration) Probe {
	return func(ctx context.Context) bool {
		d := net.Dialer{Timeout: timeout}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}
}

// DefaultInterval replaces a non-positive Watch interval.
const DefaultInterval = 10 * time.Second

// Watch probes immediately and then every interval, feeding results into
// the observer until ctx is done.
func (o *Observer) Watch(ctx context.Context, probe Probe, interval time.Duration) {
	log := logger.FromCtx(ctx)
	if interval <= 0 {
		log.Warn("invalid connectivity interval, using default",
			zap.Duration("interval", interval), zap.Duration("default", DefaultInterval))
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		online := probe(ctx)
		if ctx.Err() != nil {
			return
		}
		if online != o.Online() {
			log.Info("connectivity changed", zap.Bool("online", online))
		}
		o.Set(online)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
