package trader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/goalbot/internal/domain"
	"github.com/alejandrodnm/goalbot/internal/ports"
)

// MonitorConfig drives one position's lifecycle.
type MonitorConfig struct {
	// MaxPrice is the highest acceptable back price at entry.
	MaxPrice float64
	// CashoutMinute triggers the time-based exit once elapsed reaches it.
	CashoutMinute int
	// PollInterval is the delay between fixture re-polls while monitoring.
	PollInterval time.Duration
	// Stake is the sizing policy for the entry order.
	Stake StakeConfig
	// DryRun logs every would-be order instead of placing it.
	DryRun bool
}

// Monitor owns the lifecycle of one open (or attempted) position:
// Searching → Resolved → Entered → Monitoring → Hedged | Abandoned.
// Transitions are strictly sequential; Hedged and Abandoned are terminal
// and end the monitor's goroutine.
type Monitor struct {
	cfg      MonitorConfig
	feed     ports.FixtureFeed
	resolver *Resolver
	books    ports.BookProvider
	executor ports.OrderExecutor
	notifier ports.Notifier
	store    ports.Storage
}

// NewMonitor creates a Monitor with all dependencies injected.
// notifier and store may be nil (dry runs, tests).
func NewMonitor(
	cfg MonitorConfig,
	feed ports.FixtureFeed,
	resolver *Resolver,
	books ports.BookProvider,
	executor ports.OrderExecutor,
	notifier ports.Notifier,
	store ports.Storage,
) *Monitor {
	return &Monitor{
		cfg:      cfg,
		feed:     feed,
		resolver: resolver,
		books:    books,
		executor: executor,
		notifier: notifier,
		store:    store,
	}
}

// Run drives the candidate to a terminal state and returns it.
func (m *Monitor) Run(ctx context.Context, cand domain.Candidate) domain.PositionOutcome {
	pos, entered := m.enter(ctx, cand)
	if !entered {
		return domain.OutcomeAbandoned
	}

	outcome := m.monitorLoop(ctx, pos)
	slog.Info("monitor finished",
		"fixture_id", pos.FixtureID,
		"match", cand.Fixture.Name(),
		"outcome", outcome,
	)
	return outcome
}

// enter runs Searching → Resolved → Entered. Any failure along the chain
// (no market, no book, no selection, no price, price too high, zero stake,
// placement error) abandons the fixture with no order on the exchange.
func (m *Monitor) enter(ctx context.Context, cand domain.Candidate) (domain.Position, bool) {
	fix := cand.Fixture

	market, found, err := m.resolver.ResolveMarket(ctx, cand)
	if err != nil && !found {
		slog.Warn("market resolution errored out", "fixture_id", fix.ID, "match", fix.Name(), "err", err)
		return domain.Position{}, false
	}
	if !found {
		slog.Warn("no over/under 1.5 market listed", "fixture_id", fix.ID, "match", fix.Name())
		return domain.Position{}, false
	}
	slog.Info("market resolved",
		"fixture_id", fix.ID,
		"market_id", market.MarketID,
		"market", market.Name,
	)

	book, ok, err := m.fetchBook(ctx, market.MarketID)
	if err != nil || !ok {
		slog.Warn("no market book at entry", "market_id", market.MarketID, "err", err)
		return domain.Position{}, false
	}

	sel, ok := ResolveSelection(market, book)
	if !ok {
		slog.Warn("no resolvable selection", "market_id", market.MarketID)
		return domain.Position{}, false
	}

	runner, ok := book.Runner(sel.SelectionID)
	if !ok {
		slog.Warn("selection missing from book", "market_id", market.MarketID, "selection_id", sel.SelectionID)
		return domain.Position{}, false
	}
	back, ok := runner.BestBack()
	if !ok {
		slog.Warn("no back price available", "market_id", market.MarketID, "selection_id", sel.SelectionID)
		return domain.Position{}, false
	}
	if back > m.cfg.MaxPrice {
		slog.Info("back price above max, skipping",
			"market_id", market.MarketID,
			"price", back,
			"max_price", m.cfg.MaxPrice,
		)
		return domain.Position{}, false
	}

	stake := ComputeStake(back, m.cfg.Stake)
	if stake <= 0 {
		slog.Warn("stake computed as 0, skipping placement",
			"market_id", market.MarketID,
			"price", back,
		)
		return domain.Position{}, false
	}

	m.notify(ctx, "Placing Over 1.5 BACK",
		fmt.Sprintf("%s — market %s — price %.2f — stake %.2f", fix.Name(), market.MarketID, back, stake))

	if m.cfg.DryRun {
		slog.Info("dry-run: would place BACK order",
			"market_id", market.MarketID,
			"selection_id", sel.SelectionID,
			"price", back,
			"stake", stake,
		)
		return domain.Position{}, false
	}

	req := domain.PlaceOrderRequest{
		MarketID:    market.MarketID,
		SelectionID: sel.SelectionID,
		Side:        domain.SideBack,
		Price:       back,
		Size:        stake,
		CustomerRef: uuid.NewString(),
	}
	placed, err := m.executor.PlaceOrder(ctx, req)
	if err != nil {
		// No automatic retry: a blind resubmit risks double exposure.
		slog.Error("entry order placement failed", "market_id", market.MarketID, "err", err)
		return domain.Position{}, false
	}
	if !placed.OK() {
		slog.Error("entry order rejected",
			"market_id", market.MarketID,
			"status", placed.Status,
			"error_code", placed.ErrorCode,
		)
		return domain.Position{}, false
	}

	pos := domain.Position{
		ID:         req.CustomerRef,
		FixtureID:  fix.ID,
		HomeTeam:   fix.HomeTeam,
		AwayTeam:   fix.AwayTeam,
		Market:     market,
		Selection:  sel,
		EntryPrice: back,
		Requested:  stake,
		// assume full match; the exchange's partial-fill semantics are
		// intentionally not modeled (see DESIGN.md)
		Matched:  stake,
		BetID:    placed.BetID,
		OpenedAt: time.Now().UTC(),
	}

	slog.Info("entry placed",
		"fixture_id", pos.FixtureID,
		"match", fix.Name(),
		"market_id", pos.Market.MarketID,
		"bet_id", pos.BetID,
		"price", pos.EntryPrice,
		"stake", pos.Requested,
		"liability", pos.Liability(),
		"test_mode", m.cfg.Stake.TestMode,
	)

	if m.store != nil {
		if err := m.store.SavePosition(ctx, pos); err != nil {
			slog.Warn("failed to journal position", "position_id", pos.ID, "err", err)
		}
	}

	return pos, true
}

// monitorLoop re-polls the fixture until an exit trigger fires, then makes
// the single hedge attempt. The first check runs immediately — a goal right
// after entry must not sit behind a full poll interval. Transient feed errors
// are logged and retried on the next tick — they never terminate the monitor.
func (m *Monitor) monitorLoop(ctx context.Context, pos domain.Position) domain.PositionOutcome {
	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	for {
		snap, ok, err := m.feed.FixtureByID(ctx, pos.FixtureID)
		switch {
		case err != nil:
			slog.Warn("fixture re-poll failed, retrying next tick", "fixture_id", pos.FixtureID, "err", err)
		case !ok:
			slog.Warn("fixture missing from feed, retrying next tick", "fixture_id", pos.FixtureID)
		default:
			minute, _ := snap.Elapsed()

			if !snap.Scoreless() {
				trigger := domain.ExitTrigger{
					Reason:    domain.ExitGoalScored,
					HomeGoals: snap.HomeGoals,
					AwayGoals: snap.AwayGoals,
					Minute:    minute,
				}
				slog.Info("goal detected, initiating cash-out",
					"fixture_id", pos.FixtureID,
					"score", fmt.Sprintf("%d-%d", snap.HomeGoals, snap.AwayGoals),
					"minute", minute,
				)
				m.notify(ctx, "Cash out triggered — goal",
					fmt.Sprintf("%s now %d-%d at %d' — cashing out.", snap.Name(), snap.HomeGoals, snap.AwayGoals, minute))
				return m.hedge(ctx, pos, trigger)
			}

			if minute >= m.cfg.CashoutMinute {
				trigger := domain.ExitTrigger{Reason: domain.ExitTimeElapsed, Minute: minute}
				slog.Info("cashout minute reached, initiating cash-out",
					"fixture_id", pos.FixtureID,
					"minute", minute,
					"cashout_minute", m.cfg.CashoutMinute,
				)
				m.notify(ctx, "Cash out triggered — time",
					fmt.Sprintf("%s reached %d' — cashing out.", snap.Name(), minute))
				return m.hedge(ctx, pos, trigger)
			}
		}

		select {
		case <-ctx.Done():
			slog.Warn("monitor interrupted with open position — NOT hedged",
				"position_id", pos.ID,
				"fixture_id", pos.FixtureID,
				"market_id", pos.Market.MarketID,
			)
			m.saveOutcome(pos.ID, domain.OutcomeInterrupted, nil, 0)
			return domain.OutcomeInterrupted
		case <-ticker.C:
		}
	}
}

// hedge is the single hedge attempt. The lay order is placed only when a lay
// price exists and is strictly better (lower) than the entry back price —
// laying above entry would lock in a loss instead of closing the position.
// An un-hedged open position is a legitimate terminal outcome and is
// surfaced loudly rather than hidden.
func (m *Monitor) hedge(ctx context.Context, pos domain.Position, trigger domain.ExitTrigger) domain.PositionOutcome {
	book, ok, err := m.fetchBook(ctx, pos.Market.MarketID)
	if err != nil || !ok {
		slog.Warn("no market book at cash-out time — position left open",
			"position_id", pos.ID,
			"market_id", pos.Market.MarketID,
			"err", err,
		)
		m.saveOutcome(pos.ID, domain.OutcomeUnhedged, &trigger, 0)
		return domain.OutcomeUnhedged
	}

	runner, ok := book.Runner(pos.Selection.SelectionID)
	if !ok {
		slog.Warn("selection missing from book at cash-out", "position_id", pos.ID)
		m.saveOutcome(pos.ID, domain.OutcomeUnhedged, &trigger, 0)
		return domain.OutcomeUnhedged
	}

	lay, ok := runner.BestLay()
	if !ok {
		slog.Warn("no lay price available — position left open", "position_id", pos.ID)
		m.notify(ctx, "Hedge skipped", fmt.Sprintf("%s v %s: no lay price available.", pos.HomeTeam, pos.AwayTeam))
		m.saveOutcome(pos.ID, domain.OutcomeUnhedged, &trigger, 0)
		return domain.OutcomeUnhedged
	}
	if lay >= pos.EntryPrice {
		slog.Warn("lay price worse than entry — refusing to lock in a loss",
			"position_id", pos.ID,
			"lay_price", lay,
			"entry_price", pos.EntryPrice,
		)
		m.notify(ctx, "Hedge skipped",
			fmt.Sprintf("%s v %s: lay %.2f >= entry %.2f, position left open.", pos.HomeTeam, pos.AwayTeam, lay, pos.EntryPrice))
		m.saveOutcome(pos.ID, domain.OutcomeUnhedged, &trigger, 0)
		return domain.OutcomeUnhedged
	}

	req := domain.PlaceOrderRequest{
		MarketID:    pos.Market.MarketID,
		SelectionID: pos.Selection.SelectionID,
		Side:        domain.SideLay,
		Price:       lay,
		Size:        pos.HedgeStake(),
		CustomerRef: uuid.NewString(),
	}
	placed, err := m.executor.PlaceOrder(ctx, req)
	if err != nil || !placed.OK() {
		// still terminal: one hedge attempt only
		slog.Error("hedge order failed — position left open",
			"position_id", pos.ID,
			"err", err,
			"status", placed.Status,
			"error_code", placed.ErrorCode,
		)
		m.saveOutcome(pos.ID, domain.OutcomeUnhedged, &trigger, 0)
		return domain.OutcomeUnhedged
	}

	slog.Info("hedge placed",
		"position_id", pos.ID,
		"bet_id", placed.BetID,
		"lay_price", lay,
		"stake", req.Size,
		"reason", trigger.Reason,
	)
	m.saveOutcome(pos.ID, domain.OutcomeHedged, &trigger, lay)
	return domain.OutcomeHedged
}

// fetchBook wraps the book provider with a short timeout per attempt.
func (m *Monitor) fetchBook(ctx context.Context, marketID string) (domain.MarketBook, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return m.books.FetchMarketBook(ctx, marketID)
}

// notify is fire-and-forget: failures are logged, never propagated.
func (m *Monitor) notify(ctx context.Context, subject, body string) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Notify(ctx, subject, body); err != nil {
		slog.Warn("notification failed", "subject", subject, "err", err)
	}
}

// saveOutcome journals the terminal state; storage errors are non-fatal.
func (m *Monitor) saveOutcome(positionID string, outcome domain.PositionOutcome, trigger *domain.ExitTrigger, layPrice float64) {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.store.SaveOutcome(ctx, positionID, outcome, trigger, layPrice); err != nil {
		slog.Warn("failed to journal outcome", "position_id", positionID, "err", err)
	}
}
