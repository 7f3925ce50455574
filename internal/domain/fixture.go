package domain

import (
	"fmt"
	"time"
)

// FixtureSnapshot es el estado de un partido en vivo en un instante del feed.
// Es inmutable por poll: un snapshot nuevo del mismo fixture reemplaza al anterior.
type FixtureSnapshot struct {
	ID        int64
	Country   string
	League    string
	HomeTeam  string
	AwayTeam  string
	Minute    *int // nil = minuto desconocido → no actuar
	HomeGoals int
	AwayGoals int
	Status    string // código corto del feed: "1H", "HT", "2H", ...
}

// Name devuelve el nombre del partido en el formato que usan los exchanges
// para sus catálogos ("Home v Away").
func (f FixtureSnapshot) Name() string {
	return fmt.Sprintf("%s v %s", f.HomeTeam, f.AwayTeam)
}

// Elapsed devuelve el minuto de juego y si es conocido.
func (f FixtureSnapshot) Elapsed() (int, bool) {
	if f.Minute == nil {
		return 0, false
	}
	return *f.Minute, true
}

// Scoreless devuelve true si el partido sigue 0-0.
func (f FixtureSnapshot) Scoreless() bool {
	return f.HomeGoals == 0 && f.AwayGoals == 0
}

// Candidate es un fixture que pasó la precondición de entrada
// (0-0 dentro de la ventana de minutos configurada).
type Candidate struct {
	Fixture    FixtureSnapshot
	Minute     int // minuto en el momento de la detección, siempre conocido
	DetectedAt time.Time
}
