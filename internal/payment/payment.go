package payment

import (
	"context"
	"time"

	"github.com/khushiag23/POS-System/internal/domain"
)

// DefaultDelay is how long a simulated confirmation takes.
const DefaultDelay = 1500 * time.Millisecond

// Confirmer approves a payment. The simulated implementations always succeed;
// an error only means the wait was cut short or the remote call failed.
type Confirmer interface {
	Confirm(ctx context.Context, method domain.PaymentMethod) error
}

// Simulator approves every payment after a fixed delay.
type Simulator struct {
	delay time.Duration
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{delay: delay}
}

func (s *Simulator) Confirm(ctx context.Context, _ domain.PaymentMethod) error {
	return wait(ctx, s.delay)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
