package betfair

// types.go — wire types for the betting API calls we use.

const (
	// soccer event type in the Betfair catalogue
	eventTypeFootball = "1"

	catalogueMaxResults = 40
)

type marketFilter struct {
	TextQuery    string   `json:"textQuery,omitempty"`
	EventTypeIDs []string `json:"eventTypeIds,omitempty"`
}

type listMarketCatalogueRequest struct {
	Filter           marketFilter `json:"filter"`
	MarketProjection []string     `json:"marketProjection,omitempty"`
	MaxResults       int          `json:"maxResults"`
}

type marketCatalogueItem struct {
	MarketID   string              `json:"marketId"`
	MarketName string              `json:"marketName"`
	Runners    []runnerCatalogItem `json:"runners"`
}

type runnerCatalogItem struct {
	SelectionID int64  `json:"selectionId"`
	RunnerName  string `json:"runnerName"`
}

type priceProjection struct {
	PriceData []string `json:"priceData"`
}

type listMarketBookRequest struct {
	MarketIDs       []string        `json:"marketIds"`
	PriceProjection priceProjection `json:"priceProjection"`
}

type marketBookItem struct {
	MarketID string           `json:"marketId"`
	Status   string           `json:"status"`
	Runners  []runnerBookItem `json:"runners"`
}

type runnerBookItem struct {
	SelectionID int64           `json:"selectionId"`
	Ex          *exchangePrices `json:"ex"`
}

type exchangePrices struct {
	AvailableToBack []priceSize `json:"availableToBack"`
	AvailableToLay  []priceSize `json:"availableToLay"`
}

type priceSize struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

type limitOrder struct {
	Size            float64 `json:"size"`
	Price           float64 `json:"price"`
	PersistenceType string  `json:"persistenceType"`
}

type placeInstruction struct {
	OrderType   string     `json:"orderType"`
	SelectionID int64      `json:"selectionId"`
	Side        string     `json:"side"`
	LimitOrder  limitOrder `json:"limitOrder"`
}

type placeOrdersRequest struct {
	MarketID     string             `json:"marketId"`
	CustomerRef  string             `json:"customerRef,omitempty"`
	Instructions []placeInstruction `json:"instructions"`
}

type placeOrdersResponse struct {
	Status             string                  `json:"status"`
	ErrorCode          string                  `json:"errorCode"`
	InstructionReports []placeInstructionReport `json:"instructionReports"`
}

type placeInstructionReport struct {
	Status      string  `json:"status"`
	ErrorCode   string  `json:"errorCode"`
	BetID       string  `json:"betId"`
	SizeMatched float64 `json:"sizeMatched"`
}
