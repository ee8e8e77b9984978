package matrix

import (
	"context"
	"time"
)

// Clock separates the two timing primitives the scan loop needs: a loose,
// yielding wait at the refresh-tick boundary and a short, bounded busy-wait
// for the per-row dwell. The two are never interchangeable; Dwell must not
// suspend because its precision requirement is tighter than the scheduler
// granularity.
type Clock interface {
	Now() time.Time
	// Sleep yields for d or until ctx is cancelled.
	Sleep(ctx context.Context, d time.Duration) error
	// Dwell holds the caller for d without yielding. Only for holds
	// shorter than one refresh tick.
	Dwell(d time.Duration)
}

// SystemClock is the wall-clock implementation used on hardware.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (SystemClock) Dwell(d time.Duration) {
	if d <= 0 {
		return
	}
	// Spin instead of sleeping; handing the row to the scheduler here
	// would smear the duty cycle and flicker the display.
	end := time.Now().Add(d)
	for time.Now().Before(end) {
	}
}
