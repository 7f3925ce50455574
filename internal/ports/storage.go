package ports

import (
	"context"

	"github.com/alejandrodnm/goalbot/internal/domain"
)

// Storage es el journal de trading: registra candidatos detectados,
// posiciones abiertas y su desenlace.
type Storage interface {
	// SaveCandidate registra un candidato detectado (una fila por detección).
	SaveCandidate(ctx context.Context, c domain.Candidate) error

	// SavePosition registra una posición recién abierta.
	SavePosition(ctx context.Context, p domain.Position) error

	// SaveOutcome cierra la posición con su trigger de salida y el precio
	// de lay usado (0 si no se colocó hedge).
	SaveOutcome(ctx context.Context, positionID string, outcome domain.PositionOutcome, trigger *domain.ExitTrigger, layPrice float64) error

	// ListPositions devuelve las posiciones registradas, más recientes primero.
	ListPositions(ctx context.Context, limit int) ([]domain.PositionRecord, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
