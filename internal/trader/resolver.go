package trader

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alejandrodnm/goalbot/internal/domain"
	"github.com/alejandrodnm/goalbot/internal/ports"
)

// Resolver maps a candidate fixture to a tradeable over/under 1.5 market
// and the "Over 1.5 Goals" selection inside it.
type Resolver struct {
	catalogue ports.MarketCatalogue
	retry     RetryPolicy
}

// NewResolver creates a Resolver. The retry policy covers catalogue lookups:
// in-play markets are often listed with a delay, so transient "not found"
// is expected and retried rather than treated as fatal.
func NewResolver(catalogue ports.MarketCatalogue, retry RetryPolicy) *Resolver {
	return &Resolver{catalogue: catalogue, retry: retry}
}

// ResolveMarket finds the over/under 1.5 goals market for the candidate.
// ok=false after the retry budget is exhausted means "no market" — a normal
// skip outcome, not an error.
func (r *Resolver) ResolveMarket(ctx context.Context, cand domain.Candidate) (domain.MarketRef, bool, error) {
	query := cand.Fixture.Name()

	var market domain.MarketRef
	found, err := r.retry.Do(ctx, func(ctx context.Context) (bool, error) {
		markets, err := r.catalogue.SearchMarkets(ctx, query)
		if err != nil {
			slog.Warn("market search failed, will retry",
				"fixture_id", cand.Fixture.ID,
				"query", query,
				"err", err,
			)
			return false, err
		}
		m, ok := pickOverUnder15(markets)
		if !ok {
			return false, nil
		}
		market = m
		return true, nil
	})
	if err != nil && !found {
		return domain.MarketRef{}, false, err
	}
	return market, found, nil
}

// pickOverUnder15 prefers the exact display-name match, falling back to the
// fuzzy contains match, mirroring how the catalogue names drift per region.
func pickOverUnder15(markets []domain.MarketRef) (domain.MarketRef, bool) {
	for _, m := range markets {
		if m.IsExactOverUnder15() {
			return m, true
		}
	}
	for _, m := range markets {
		if m.IsOverUnder15() {
			return m, true
		}
	}
	return domain.MarketRef{}, false
}

// ResolveSelection picks the runner to back inside the resolved market.
// Primary: the runner whose name contains both "over" and "1.5", as long as
// the book actually quotes that selection.
// Fallback: the first runner with a back price in the book — the catalogue's
// runner names are not reliable for every region.
// ok=false means no selection could be resolved and the fixture is abandoned.
func ResolveSelection(market domain.MarketRef, book domain.MarketBook) (domain.SelectionRef, bool) {
	for _, rd := range market.Runners {
		name := strings.ToLower(rd.Name)
		if strings.Contains(name, "over") && strings.Contains(name, "1.5") {
			if _, ok := book.Runner(rd.SelectionID); !ok {
				// named runner not in the book: distrust the catalogue
				// and fall back to whatever the book quotes
				break
			}
			return domain.SelectionRef{
				MarketID:    market.MarketID,
				SelectionID: rd.SelectionID,
				Name:        rd.Name,
			}, true
		}
	}

	for _, rb := range book.Runners {
		if _, ok := rb.BestBack(); !ok {
			continue
		}
		sel := domain.SelectionRef{MarketID: market.MarketID, SelectionID: rb.SelectionID}
		for _, rd := range market.Runners {
			if rd.SelectionID == rb.SelectionID {
				sel.Name = rd.Name
				break
			}
		}
		return sel, true
	}

	return domain.SelectionRef{}, false
}
