package domain_test

import (
	"testing"

	"github.com/alejandrodnm/goalbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestBackAbsenceChain(t *testing.T) {
	tests := []struct {
		name   string
		runner domain.RunnerBook
	}{
		{"nil exchange prices", domain.RunnerBook{SelectionID: 1}},
		{"empty ladder", domain.RunnerBook{SelectionID: 1, Ex: &domain.ExchangePrices{}}},
		{"zero price entry", domain.RunnerBook{SelectionID: 1, Ex: &domain.ExchangePrices{
			AvailableToBack: []domain.PriceSize{{Price: 0}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.runner.BestBack()
			assert.False(t, ok)
			_, ok = tt.runner.BestLay()
			assert.False(t, ok)
		})
	}
}

func TestBestBackAndLayTopOfLadder(t *testing.T) {
	runner := domain.RunnerBook{
		SelectionID: 1,
		Ex: &domain.ExchangePrices{
			AvailableToBack: []domain.PriceSize{{Price: 2.02, Size: 120}, {Price: 2.0, Size: 400}},
			AvailableToLay:  []domain.PriceSize{{Price: 2.04, Size: 80}, {Price: 2.06, Size: 300}},
		},
	}

	back, ok := runner.BestBack()
	require.True(t, ok)
	assert.Equal(t, 2.02, back)

	lay, ok := runner.BestLay()
	require.True(t, ok)
	assert.Equal(t, 2.04, lay)
}

func TestBestSideIndependentAbsence(t *testing.T) {
	// solo lay disponible — back ausente, lay presente
	runner := domain.RunnerBook{
		SelectionID: 1,
		Ex: &domain.ExchangePrices{
			AvailableToLay: []domain.PriceSize{{Price: 1.9, Size: 50}},
		},
	}

	_, ok := runner.BestBack()
	assert.False(t, ok)

	lay, ok := runner.BestLay()
	require.True(t, ok)
	assert.Equal(t, 1.9, lay)
}

func TestMarketBookRunnerLookup(t *testing.T) {
	book := domain.MarketBook{
		MarketID: "1.1",
		Runners:  []domain.RunnerBook{{SelectionID: 10}, {SelectionID: 20}},
	}

	r, ok := book.Runner(20)
	require.True(t, ok)
	assert.Equal(t, int64(20), r.SelectionID)

	_, ok = book.Runner(99)
	assert.False(t, ok)
}

func TestMarketRefOverUnderMatching(t *testing.T) {
	assert.True(t, domain.MarketRef{Name: "Over/Under 1.5 Goals"}.IsExactOverUnder15())
	assert.True(t, domain.MarketRef{Name: "  over/under 1.5 goals "}.IsExactOverUnder15())
	assert.False(t, domain.MarketRef{Name: "Over/Under 1.5 Goals - 2nd Half"}.IsExactOverUnder15())

	assert.True(t, domain.MarketRef{Name: "Over/Under 1.5 Goals - 2nd Half"}.IsOverUnder15())
	assert.False(t, domain.MarketRef{Name: "Over/Under 2.5 Goals"}.IsOverUnder15())
	assert.False(t, domain.MarketRef{Name: "Match Odds"}.IsOverUnder15())
}
