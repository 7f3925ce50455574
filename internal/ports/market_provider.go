package ports

import (
	"context"

	"github.com/alejandrodnm/goalbot/internal/domain"
)

// MarketCatalogue busca mercados en el catálogo del exchange.
type MarketCatalogue interface {
	// SearchMarkets devuelve los mercados que matchean el text query dado
	// ("Home v Away"), acotados al deporte configurado (fútbol).
	// Lista vacía si el mercado todavía no está listado — no es un error.
	SearchMarkets(ctx context.Context, query string) ([]domain.MarketRef, error)
}
