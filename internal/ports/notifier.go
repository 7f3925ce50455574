package ports

import "context"

// Notifier comunica eventos del ciclo de vida al operador (candidato
// encontrado, entrada colocada, cashout disparado). Es best-effort:
// los callers loguean el error y siguen — una notificación fallida
// nunca bloquea ni aborta la lógica de trading.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}
