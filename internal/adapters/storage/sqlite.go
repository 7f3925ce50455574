package storage

// sqlite.go — journal de trading en SQLite (pure Go, sin CGo).
//
// Estrategia:
//   - `candidates`: una fila por detección. Histórico ligero para auditar
//     qué partidos dispararon la precondición y cuándo.
//   - `positions`: una fila por posición abierta; el desenlace (outcome,
//     trigger de salida, precio de lay) se completa con un UPDATE al cierre.
//   - Prune automático al arrancar: candidates > 30d, positions > 90d.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/goalbot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Una fila por candidato detectado
CREATE TABLE IF NOT EXISTS candidates (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    fixture_id INTEGER  NOT NULL,
    home_team  TEXT     NOT NULL,
    away_team  TEXT     NOT NULL,
    country    TEXT,
    minute     INTEGER  NOT NULL,
    detected_at DATETIME NOT NULL
);

-- Una fila por posición; outcome se completa al cierre
CREATE TABLE IF NOT EXISTS positions (
    id           TEXT PRIMARY KEY,
    fixture_id   INTEGER NOT NULL,
    home_team    TEXT    NOT NULL,
    away_team    TEXT    NOT NULL,
    market_id    TEXT    NOT NULL,
    market_name  TEXT,
    selection_id INTEGER NOT NULL,
    bet_id       TEXT,
    entry_price  REAL    NOT NULL,
    requested    REAL    NOT NULL,
    matched      REAL    NOT NULL,
    outcome      TEXT,
    exit_reason  TEXT,
    exit_minute  INTEGER NOT NULL DEFAULT 0,
    lay_price    REAL    NOT NULL DEFAULT 0,
    opened_at    DATETIME NOT NULL,
    closed_at    DATETIME
);

CREATE INDEX IF NOT EXISTS idx_candidates_at   ON candidates(detected_at DESC);
CREATE INDEX IF NOT EXISTS idx_positions_open  ON positions(opened_at DESC);
CREATE INDEX IF NOT EXISTS idx_positions_fixt  ON positions(fixture_id);
`

const (
	retentionCandidates = 30 * 24 * time.Hour
	retentionPositions  = 90 * 24 * time.Hour
)

// SQLiteStorage implementa ports.Storage usando SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada,
// aplica el schema y limpia datos antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveCandidate registra una detección.
func (s *SQLiteStorage) SaveCandidate(ctx context.Context, c domain.Candidate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidates (fixture_id, home_team, away_team, country, minute, detected_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.Fixture.ID, c.Fixture.HomeTeam, c.Fixture.AwayTeam, c.Fixture.Country, c.Minute, c.DetectedAt,
	)
	if err != nil {
		return fmt.Errorf("storage.SaveCandidate: %w", err)
	}
	return nil
}

// SavePosition registra una posición recién abierta.
func (s *SQLiteStorage) SavePosition(ctx context.Context, p domain.Position) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO positions (id, fixture_id, home_team, away_team, market_id, market_name,
			selection_id, bet_id, entry_price, requested, matched, opened_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.FixtureID, p.HomeTeam, p.AwayTeam, p.Market.MarketID, p.Market.Name,
		p.Selection.SelectionID, p.BetID, p.EntryPrice, p.Requested, p.Matched, p.OpenedAt,
	)
	if err != nil {
		return fmt.Errorf("storage.SavePosition: %w", err)
	}
	return nil
}

// SaveOutcome cierra la posición con su desenlace.
func (s *SQLiteStorage) SaveOutcome(ctx context.Context, positionID string, outcome domain.PositionOutcome, trigger *domain.ExitTrigger, layPrice float64) error {
	reason := ""
	minute := 0
	if trigger != nil {
		reason = string(trigger.Reason)
		minute = trigger.Minute
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE positions
		SET outcome = ?, exit_reason = ?, exit_minute = ?, lay_price = ?, closed_at = ?
		WHERE id = ?`,
		string(outcome), reason, minute, layPrice, time.Now().UTC(), positionID,
	)
	if err != nil {
		return fmt.Errorf("storage.SaveOutcome: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("storage.SaveOutcome: position %q not found", positionID)
	}
	return nil
}

// ListPositions devuelve las posiciones más recientes primero.
func (s *SQLiteStorage) ListPositions(ctx context.Context, limit int) ([]domain.PositionRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fixture_id, home_team, away_team, market_id, market_name,
			selection_id, bet_id, entry_price, requested, matched,
			COALESCE(outcome, ''), COALESCE(exit_reason, ''), exit_minute, lay_price,
			opened_at, closed_at
		FROM positions
		ORDER BY opened_at DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage.ListPositions: %w", err)
	}
	defer rows.Close()

	var out []domain.PositionRecord
	for rows.Next() {
		var r domain.PositionRecord
		var outcome, reason string
		var closedAt sql.NullTime
		err := rows.Scan(
			&r.ID, &r.FixtureID, &r.HomeTeam, &r.AwayTeam,
			&r.Market.MarketID, &r.Market.Name,
			&r.Selection.SelectionID, &r.BetID,
			&r.EntryPrice, &r.Requested, &r.Matched,
			&outcome, &reason, &r.ExitMinute, &r.LayPrice,
			&r.OpenedAt, &closedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("storage.ListPositions: scan: %w", err)
		}
		r.Outcome = domain.PositionOutcome(outcome)
		r.ExitReason = domain.ExitReason(reason)
		r.Selection.MarketID = r.Market.MarketID
		if closedAt.Valid {
			t := closedAt.Time
			r.ClosedAt = &t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld borra histórico viejo. Errores solo se ignoran: el prune es
// mantenimiento, no camino crítico.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutCandidates := time.Now().UTC().Add(-retentionCandidates)
	cutPositions := time.Now().UTC().Add(-retentionPositions)
	s.db.ExecContext(ctx, `DELETE FROM candidates WHERE detected_at < ?`, cutCandidates)
	s.db.ExecContext(ctx, `DELETE FROM positions WHERE opened_at < ?`, cutPositions)
}
