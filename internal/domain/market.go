package domain

import "strings"

// MarketRef identifica un mercado tradeable en el exchange, con sus runners
// tal como los devuelve el catálogo.
type MarketRef struct {
	MarketID string
	Name     string // display name, ej. "Over/Under 1.5 Goals"
	Runners  []RunnerDesc
}

// RunnerDesc describe una selección dentro del catálogo de un mercado.
type RunnerDesc struct {
	SelectionID int64
	Name        string // ej. "Over 1.5 Goals"
}

// SelectionRef identifica la selección concreta sobre la que se opera.
type SelectionRef struct {
	MarketID    string
	SelectionID int64
	Name        string
}

// IsExactOverUnder15 devuelve true solo con el match exacto case-insensitive
// del display name del mercado over/under 1.5 goles.
func (m MarketRef) IsExactOverUnder15() bool {
	return strings.ToLower(strings.TrimSpace(m.Name)) == "over/under 1.5 goals"
}

// IsOverUnder15 devuelve true si el display name corresponde al mercado
// over/under 1.5 goles: primero match exacto, si no fuzzy contains.
func (m MarketRef) IsOverUnder15() bool {
	if m.IsExactOverUnder15() {
		return true
	}
	name := strings.ToLower(m.Name)
	return strings.Contains(name, "over/under") && strings.Contains(name, "1.5")
}
