package ports

import (
	"context"

	"github.com/alejandrodnm/goalbot/internal/domain"
)

// BookProvider obtiene el market book en vivo de un mercado del exchange.
type BookProvider interface {
	// FetchMarketBook devuelve el book con proyección de mejores ofertas.
	// ok=false si el exchange no devolvió book para el mercado.
	FetchMarketBook(ctx context.Context, marketID string) (domain.MarketBook, bool, error)
}
