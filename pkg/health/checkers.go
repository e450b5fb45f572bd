package health

import (
	"context"
	"runtime"
	"time"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck flags a goroutine leak: unhealthy once the live
// goroutine count passes threshold.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		if n := runtime.NumGoroutine(); n > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", n, threshold)
		}
		return nil
	}
}

// PingCheck adapts a Ping-style function into a CheckFunc with an extra
// latency bound on top of the probe timeout.
func PingCheck(maxLatency time.Duration, ping func(ctx context.Context) error) CheckFunc {
	return func(ctx context.Context) error {
		start := time.Now()
		if err := ping(ctx); err != nil {
			return err
		}
		if took := time.Since(start); took > maxLatency {
			return errors.Errorf("ping took %s, above the %s latency bound", took, maxLatency)
		}
		return nil
	}
}
