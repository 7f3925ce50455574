package ports

import (
	"context"

	"github.com/alejandrodnm/goalbot/internal/domain"
)

// OrderExecutor submits real orders against the shared exchange session.
// Implementations must rate-limit submissions: every concurrent monitor
// shares one session and the exchange enforces per-session request limits.
type OrderExecutor interface {
	// PlaceOrder submits a single LIMIT instruction and returns the
	// per-instruction report. A non-nil error means the submission itself
	// failed (network, auth); callers must not blindly retry — a duplicate
	// order doubles the exposure.
	PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (domain.PlacedOrder, error)
}
