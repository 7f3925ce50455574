package notify

import (
	"context"
	"errors"

	"github.com/alejandrodnm/goalbot/internal/ports"
)

// Multi distribuye cada notificación a varios canales. El fallo de un canal
// no impide la entrega en el resto; los errores se devuelven combinados para
// que el caller los loguee.
type Multi struct {
	channels []ports.Notifier
}

// NewMulti crea un fan-out sobre los canales dados.
func NewMulti(channels ...ports.Notifier) *Multi {
	return &Multi{channels: channels}
}

// Notify envía a todos los canales y combina los errores.
func (m *Multi) Notify(ctx context.Context, subject, body string) error {
	var errs []error
	for _, ch := range m.channels {
		if err := ch.Notify(ctx, subject, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
