package trader

import (
	"context"
	"time"
)

// RetryPolicy es un retry acotado con delay fijo entre intentos.
// Cada call site (resolución de mercado, poll de monitoreo) lleva su propia
// policy para que la semántica de reintento sea explícita y testeable.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// Do ejecuta fn hasta Attempts veces. fn devuelve done=true cuando el
// resultado está listo (éxito o fallo definitivo); un error con done=false
// se considera transitorio y se reintenta tras Delay.
// Devuelve ok=false si se agotaron los intentos o el contexto se canceló.
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) (done bool, err error)) (bool, error) {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		done, err := fn(ctx)
		if done {
			return true, err
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(p.Delay):
		}
	}
	return false, lastErr
}
