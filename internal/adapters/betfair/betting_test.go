package betfair_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alejandrodnm/goalbot/internal/adapters/betfair"
	"github.com/alejandrodnm/goalbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *betfair.Client {
	session := betfair.NewSession(srv.URL, "test-app-key", "user", "pass")
	return betfair.NewClient(srv.URL, session)
}

func jsonServer(t *testing.T, body string, capture *http.Request) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = *r
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestSearchMarketsMapping(t *testing.T) {
	fixture := `[
		{
			"marketId": "1.234",
			"marketName": "Over/Under 1.5 Goals",
			"runners": [
				{"selectionId": 47972, "runnerName": "Under 1.5 Goals"},
				{"selectionId": 47973, "runnerName": "Over 1.5 Goals"}
			]
		},
		{"marketId": "1.235", "marketName": "Match Odds", "runners": []}
	]`

	var got http.Request
	srv := jsonServer(t, fixture, &got)
	defer srv.Close()

	markets, err := newTestClient(srv).SearchMarkets(context.Background(), "Arsenal v Chelsea")
	require.NoError(t, err)
	require.Len(t, markets, 2)

	assert.Equal(t, "1.234", markets[0].MarketID)
	assert.Equal(t, "Over/Under 1.5 Goals", markets[0].Name)
	require.Len(t, markets[0].Runners, 2)
	assert.Equal(t, int64(47973), markets[0].Runners[1].SelectionID)
	assert.Equal(t, "Over 1.5 Goals", markets[0].Runners[1].Name)

	assert.Equal(t, "test-app-key", got.Header.Get("X-Application"))
}

func TestSearchMarketsEmptyIsNotAnError(t *testing.T) {
	srv := jsonServer(t, `[]`, nil)
	defer srv.Close()

	markets, err := newTestClient(srv).SearchMarkets(context.Background(), "Arsenal v Chelsea")
	require.NoError(t, err)
	assert.Empty(t, markets)
}

func TestFetchMarketBookPreservesLadderAbsence(t *testing.T) {
	// primer runner sin "ex", segundo con ladders
	fixture := `[
		{
			"marketId": "1.234",
			"status": "OPEN",
			"runners": [
				{"selectionId": 47972},
				{"selectionId": 47973, "ex": {
					"availableToBack": [{"price": 2.02, "size": 120}],
					"availableToLay":  [{"price": 2.06, "size": 80}]
				}}
			]
		}
	]`

	srv := jsonServer(t, fixture, nil)
	defer srv.Close()

	book, ok, err := newTestClient(srv).FetchMarketBook(context.Background(), "1.234")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "OPEN", book.Status)
	require.Len(t, book.Runners, 2)

	_, hasBack := book.Runners[0].BestBack()
	assert.False(t, hasBack)

	over, ok := book.Runner(47973)
	require.True(t, ok)
	back, ok := over.BestBack()
	require.True(t, ok)
	assert.Equal(t, 2.02, back)
	lay, ok := over.BestLay()
	require.True(t, ok)
	assert.Equal(t, 2.06, lay)
}

func TestFetchMarketBookMissingMarket(t *testing.T) {
	srv := jsonServer(t, `[]`, nil)
	defer srv.Close()

	_, ok, err := newTestClient(srv).FetchMarketBook(context.Background(), "1.999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlaceOrderSuccess(t *testing.T) {
	fixture := `{
		"status": "SUCCESS",
		"instructionReports": [
			{"status": "SUCCESS", "betId": "bet-1", "sizeMatched": 5.0}
		]
	}`

	srv := jsonServer(t, fixture, nil)
	defer srv.Close()

	placed, err := newTestClient(srv).PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		MarketID:    "1.234",
		SelectionID: 47973,
		Side:        domain.SideBack,
		Price:       2.0,
		Size:        5.0,
		CustomerRef: "ref-1",
	})
	require.NoError(t, err)
	assert.True(t, placed.OK())
	assert.Equal(t, "bet-1", placed.BetID)
	assert.Equal(t, 5.0, placed.SizeMatched)
}

func TestPlaceOrderInstructionFailureDowngradesStatus(t *testing.T) {
	// la respuesta global dice SUCCESS pero la instrucción fue rechazada
	fixture := `{
		"status": "SUCCESS",
		"instructionReports": [
			{"status": "FAILURE", "errorCode": "INSUFFICIENT_FUNDS"}
		]
	}`

	srv := jsonServer(t, fixture, nil)
	defer srv.Close()

	placed, err := newTestClient(srv).PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		MarketID:    "1.234",
		SelectionID: 47973,
		Side:        domain.SideLay,
		Price:       1.8,
		Size:        5.0,
	})
	require.NoError(t, err)
	assert.False(t, placed.OK())
	assert.Equal(t, "INSUFFICIENT_FUNDS", placed.ErrorCode)
}

func TestPlaceOrderRejectsInvalidSizeOrPrice(t *testing.T) {
	srv := jsonServer(t, `{}`, nil)
	defer srv.Close()

	client := newTestClient(srv)

	_, err := client.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		MarketID: "1.234", SelectionID: 1, Side: domain.SideBack, Price: 2.0, Size: 0,
	})
	require.Error(t, err)

	_, err = client.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		MarketID: "1.234", SelectionID: 1, Side: domain.SideBack, Price: 0, Size: 5.0,
	})
	require.Error(t, err)
}

func TestSessionLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "user", r.FormValue("username"))
		assert.Equal(t, "test-app-key", r.Header.Get("X-Application"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token": "tok-123", "product": "test-app-key", "status": "SUCCESS"}`))
	}))
	defer srv.Close()

	session := betfair.NewSession(srv.URL, "test-app-key", "user", "pass")
	require.NoError(t, session.Login(context.Background()))
	assert.Equal(t, "tok-123", session.Token())
}

func TestSessionLoginFailure(t *testing.T) {
	srv := jsonServer(t, `{"status": "FAIL", "error": "INVALID_USERNAME_OR_PASSWORD"}`, nil)
	defer srv.Close()

	session := betfair.NewSession(srv.URL, "test-app-key", "user", "bad")
	err := session.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_USERNAME_OR_PASSWORD")
	assert.Empty(t, session.Token())
}
