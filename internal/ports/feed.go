package ports

import (
	"context"

	"github.com/alejandrodnm/goalbot/internal/domain"
)

// FixtureFeed obtiene el estado de partidos en vivo desde el proveedor de datos.
type FixtureFeed interface {
	// LiveFixtures devuelve un batch con todos los partidos en vivo,
	// ya filtrados por la allow-list de países configurada.
	LiveFixtures(ctx context.Context) ([]domain.FixtureSnapshot, error)

	// FixtureByID devuelve el estado actual de un partido concreto.
	// ok=false si el feed ya no devuelve el fixture (terminado o purgado).
	FixtureByID(ctx context.Context, id int64) (domain.FixtureSnapshot, bool, error)
}
