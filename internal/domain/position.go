package domain

import "time"

// Position is an open BACK position on a selection. Created on successful
// entry placement; read-only afterwards except for Matched, which is
// confirmed once from the placement report.
//
// Matched is assumed equal to Requested when the exchange reports SUCCESS.
// This carries over the source design's simplification: a production system
// should poll order status for the true matched size before sizing the hedge.
type Position struct {
	ID         string // local UUID
	FixtureID  int64
	HomeTeam   string
	AwayTeam   string
	Market     MarketRef
	Selection  SelectionRef
	EntryPrice float64
	Requested  float64
	Matched    float64
	BetID      string
	OpenedAt   time.Time
}

// HedgeStake returns the stake to lay when closing the position.
func (p Position) HedgeStake() float64 {
	if p.Matched > 0 {
		return p.Matched
	}
	return p.Requested
}

// Liability returns the maximum loss exposed by the entry order.
func (p Position) Liability() float64 {
	return (p.EntryPrice - 1) * p.Requested
}

// ExitReason tags why a monitor decided to leave a position.
type ExitReason string

const (
	ExitGoalScored  ExitReason = "GOAL_SCORED"
	ExitTimeElapsed ExitReason = "TIME_ELAPSED"
)

// ExitTrigger is the terminal event that ends the monitoring loop.
// Once fired, at most one hedge attempt follows and the monitor terminates.
type ExitTrigger struct {
	Reason    ExitReason
	HomeGoals int
	AwayGoals int
	Minute    int
}

// PositionOutcome is the terminal state of one monitored fixture.
type PositionOutcome string

const (
	OutcomeAbandoned   PositionOutcome = "ABANDONED"    // no entry order was placed
	OutcomeHedged      PositionOutcome = "HEDGED"       // hedge order placed
	OutcomeUnhedged    PositionOutcome = "UNHEDGED"     // exit fired but no acceptable lay price
	OutcomeInterrupted PositionOutcome = "INTERRUPTED"  // shutdown before an exit trigger
)
