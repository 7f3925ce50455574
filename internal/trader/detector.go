package trader

import (
	"time"

	"github.com/alejandrodnm/goalbot/internal/domain"
)

// DetectorConfig contiene la ventana de minutos para la precondición de entrada.
type DetectorConfig struct {
	// MinMinute es el primer minuto (inclusive) en el que un 0-0 califica.
	MinMinute int
	// MaxMinute es el último minuto (inclusive) en el que un 0-0 califica.
	MaxMinute int
}

// Detector filtra un batch de snapshots a los que cumplen la precondición:
// minuto conocido, 0-0, y minuto dentro de la ventana configurada.
//
// Es stateless e idempotente por poll: el mismo snapshot evaluado dos veces
// da el mismo veredicto. La deduplicación contra fixtures ya monitoreados
// es responsabilidad del Orchestrator, no del Detector.
type Detector struct {
	cfg DetectorConfig
}

// NewDetector crea un Detector con la ventana dada.
func NewDetector(cfg DetectorConfig) *Detector {
	return &Detector{cfg: cfg}
}

// Detect devuelve los candidatos del batch, en el orden del feed.
func (d *Detector) Detect(snaps []domain.FixtureSnapshot) []domain.Candidate {
	now := time.Now().UTC()
	var out []domain.Candidate
	for _, snap := range snaps {
		minute, ok := d.passes(snap)
		if !ok {
			continue
		}
		out = append(out, domain.Candidate{
			Fixture:    snap,
			Minute:     minute,
			DetectedAt: now,
		})
	}
	return out
}

// passes devuelve el minuto y true si el snapshot supera todos los criterios.
func (d *Detector) passes(snap domain.FixtureSnapshot) (int, bool) {
	minute, known := snap.Elapsed()
	if !known {
		// minuto desconocido = no actuar
		return 0, false
	}
	if !snap.Scoreless() {
		return 0, false
	}
	if minute < d.cfg.MinMinute || minute > d.cfg.MaxMinute {
		return 0, false
	}
	return minute, true
}
