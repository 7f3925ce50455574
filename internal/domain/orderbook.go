package domain

// MarketBook es el estado de precios en vivo de un mercado del exchange.
// Puede venir incompleto: runners sin ladder, ladders vacíos, lados ausentes.
type MarketBook struct {
	MarketID string
	Status   string // "OPEN", "SUSPENDED", ...
	Runners  []RunnerBook
}

// RunnerBook es el estado de precios de una selección dentro del book.
type RunnerBook struct {
	SelectionID int64
	Ex          *ExchangePrices // nil si el exchange no devolvió ladder
}

// ExchangePrices contiene los ladders de mejores ofertas de una selección.
type ExchangePrices struct {
	AvailableToBack []PriceSize // ordenados mejor a peor (mayor precio primero)
	AvailableToLay  []PriceSize // ordenados mejor a peor (menor precio primero)
}

// PriceSize es un nivel precio/volumen en un ladder.
type PriceSize struct {
	Price float64
	Size  float64
}

// Runner devuelve el runner book de una selección, si existe.
func (b MarketBook) Runner(selectionID int64) (RunnerBook, bool) {
	for _, r := range b.Runners {
		if r.SelectionID == selectionID {
			return r, true
		}
	}
	return RunnerBook{}, false
}

// BestBack devuelve el mejor precio de back disponible.
// Cualquier eslabón ausente de la cadena (ex → ladder → primer nivel)
// devuelve ok=false — la ausencia es un valor, nunca un error.
// Los books en vivo de selecciones ilíquidas omiten ladders con frecuencia.
func (r RunnerBook) BestBack() (float64, bool) {
	if r.Ex == nil || len(r.Ex.AvailableToBack) == 0 {
		return 0, false
	}
	p := r.Ex.AvailableToBack[0].Price
	if p <= 0 {
		return 0, false
	}
	return p, true
}

// BestLay devuelve el mejor precio de lay disponible.
func (r RunnerBook) BestLay() (float64, bool) {
	if r.Ex == nil || len(r.Ex.AvailableToLay) == 0 {
		return 0, false
	}
	p := r.Ex.AvailableToLay[0].Price
	if p <= 0 {
		return 0, false
	}
	return p, true
}
