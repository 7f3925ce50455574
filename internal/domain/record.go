package domain

import "time"

// PositionRecord es la fila del journal para una posición, con su desenlace.
// Solo lectura, usada por los reportes de consola.
type PositionRecord struct {
	Position
	Outcome    PositionOutcome
	ExitReason ExitReason // vacío si Outcome == ABANDONED/INTERRUPTED
	ExitMinute int
	LayPrice   float64 // 0 si no se colocó hedge
	ClosedAt   *time.Time
}
