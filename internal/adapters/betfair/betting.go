package betfair

// betting.go — implements ports.MarketCatalogue, ports.BookProvider and
// ports.OrderExecutor against the exchange.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/goalbot/internal/domain"
)

// SearchMarkets queries the catalogue by free-text ("Home v Away"), scoped
// to football. An empty result is not an error: in-play markets can take a
// while to get listed.
func (c *Client) SearchMarkets(ctx context.Context, query string) ([]domain.MarketRef, error) {
	req := listMarketCatalogueRequest{
		Filter: marketFilter{
			TextQuery:    query,
			EventTypeIDs: []string{eventTypeFootball},
		},
		MarketProjection: []string{"RUNNER_DESCRIPTION"},
		MaxResults:       catalogueMaxResults,
	}

	var items []marketCatalogueItem
	if err := c.post(ctx, c.dataLimiter, "listMarketCatalogue", req, &items); err != nil {
		return nil, fmt.Errorf("betfair.SearchMarkets: %w", err)
	}

	out := make([]domain.MarketRef, 0, len(items))
	for _, item := range items {
		out = append(out, mapCatalogueItem(item))
	}
	return out, nil
}

// FetchMarketBook returns the live book with best-offer projection.
// ok=false when the exchange returns no book for the market.
func (c *Client) FetchMarketBook(ctx context.Context, marketID string) (domain.MarketBook, bool, error) {
	req := listMarketBookRequest{
		MarketIDs:       []string{marketID},
		PriceProjection: priceProjection{PriceData: []string{"EX_BEST_OFFERS"}},
	}

	var items []marketBookItem
	if err := c.post(ctx, c.dataLimiter, "listMarketBook", req, &items); err != nil {
		return domain.MarketBook{}, false, fmt.Errorf("betfair.FetchMarketBook: %w", err)
	}
	if len(items) == 0 {
		return domain.MarketBook{}, false, nil
	}
	return mapBookItem(items[0]), true, nil
}

// PlaceOrder submits one LIMIT instruction with LAPSE persistence through
// the order limiter. The caller must not retry on error.
func (c *Client) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (domain.PlacedOrder, error) {
	if req.Size <= 0 || req.Price <= 0 {
		return domain.PlacedOrder{}, fmt.Errorf("betfair.PlaceOrder: invalid size %.2f or price %.2f", req.Size, req.Price)
	}

	body := placeOrdersRequest{
		MarketID:    req.MarketID,
		CustomerRef: req.CustomerRef,
		Instructions: []placeInstruction{{
			OrderType:   "LIMIT",
			SelectionID: req.SelectionID,
			Side:        string(req.Side),
			LimitOrder: limitOrder{
				Size:            req.Size,
				Price:           req.Price,
				PersistenceType: "LAPSE",
			},
		}},
	}

	var resp placeOrdersResponse
	if err := c.post(ctx, c.orderLimiter, "placeOrders", body, &resp); err != nil {
		return domain.PlacedOrder{}, fmt.Errorf("betfair.PlaceOrder: %w", err)
	}

	placed := mapPlaceResponse(resp)
	slog.Info("order submitted",
		"market_id", req.MarketID,
		"selection_id", req.SelectionID,
		"side", req.Side,
		"price", req.Price,
		"size", req.Size,
		"status", placed.Status,
		"bet_id", placed.BetID,
	)
	return placed, nil
}

// mapCatalogueItem converts a catalogue wire item to the domain ref.
func mapCatalogueItem(item marketCatalogueItem) domain.MarketRef {
	ref := domain.MarketRef{
		MarketID: item.MarketID,
		Name:     item.MarketName,
		Runners:  make([]domain.RunnerDesc, 0, len(item.Runners)),
	}
	for _, r := range item.Runners {
		ref.Runners = append(ref.Runners, domain.RunnerDesc{
			SelectionID: r.SelectionID,
			Name:        r.RunnerName,
		})
	}
	return ref
}

// mapBookItem converts a book wire item, preserving ladder absence: a nil
// "ex" stays nil so the quote accessors report it as no price.
func mapBookItem(item marketBookItem) domain.MarketBook {
	book := domain.MarketBook{
		MarketID: item.MarketID,
		Status:   item.Status,
		Runners:  make([]domain.RunnerBook, 0, len(item.Runners)),
	}
	for _, r := range item.Runners {
		rb := domain.RunnerBook{SelectionID: r.SelectionID}
		if r.Ex != nil {
			ex := &domain.ExchangePrices{}
			for _, ps := range r.Ex.AvailableToBack {
				ex.AvailableToBack = append(ex.AvailableToBack, domain.PriceSize{Price: ps.Price, Size: ps.Size})
			}
			for _, ps := range r.Ex.AvailableToLay {
				ex.AvailableToLay = append(ex.AvailableToLay, domain.PriceSize{Price: ps.Price, Size: ps.Size})
			}
			rb.Ex = ex
		}
		book.Runners = append(book.Runners, rb)
	}
	return book
}

// mapPlaceResponse flattens the single-instruction report.
func mapPlaceResponse(resp placeOrdersResponse) domain.PlacedOrder {
	placed := domain.PlacedOrder{
		Status:    domain.OrderStatus(resp.Status),
		ErrorCode: resp.ErrorCode,
		PlacedAt:  time.Now().UTC(),
	}
	if len(resp.InstructionReports) > 0 {
		ir := resp.InstructionReports[0]
		placed.BetID = ir.BetID
		placed.SizeMatched = ir.SizeMatched
		if ir.Status != "SUCCESS" {
			placed.Status = domain.OrderStatusFailure
			if ir.ErrorCode != "" {
				placed.ErrorCode = ir.ErrorCode
			}
		}
	}
	return placed
}
