package domain

import "time"

// Side is the direction of an exchange order.
type Side string

const (
	SideBack Side = "BACK"
	SideLay  Side = "LAY"
)

// OrderStatus is the exchange-reported outcome of a placement attempt.
type OrderStatus string

const (
	OrderStatusSuccess OrderStatus = "SUCCESS"
	OrderStatusFailure OrderStatus = "FAILURE"
)

// PlaceOrderRequest is one LIMIT order instruction for the exchange.
// Orders use LAPSE persistence: unmatched remainders die at in-play turnover.
type PlaceOrderRequest struct {
	MarketID    string
	SelectionID int64
	Side        Side
	Price       float64
	Size        float64
	CustomerRef string // local UUID, lets the exchange dedupe resubmissions
}

// PlacedOrder is the per-instruction report returned by the exchange.
type PlacedOrder struct {
	BetID       string
	Status      OrderStatus
	ErrorCode   string  // set when Status != SUCCESS
	SizeMatched float64 // as reported at placement time
	PlacedAt    time.Time
}

// OK returns true if the exchange accepted the order.
func (p PlacedOrder) OK() bool {
	return p.Status == OrderStatusSuccess
}
