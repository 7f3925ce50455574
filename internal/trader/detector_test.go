package trader_test

import (
	"testing"

	"github.com/alejandrodnm/goalbot/internal/domain"
	"github.com/alejandrodnm/goalbot/internal/trader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minutePtr(m int) *int { return &m }

func makeSnapshot(id int64, minute *int, homeGoals, awayGoals int) domain.FixtureSnapshot {
	return domain.FixtureSnapshot{
		ID:        id,
		HomeTeam:  "Arsenal",
		AwayTeam:  "Chelsea",
		Minute:    minute,
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
	}
}

func TestDetectorPasses(t *testing.T) {
	d := trader.NewDetector(trader.DetectorConfig{MinMinute: 1, MaxMinute: 80})

	cands := d.Detect([]domain.FixtureSnapshot{makeSnapshot(7, minutePtr(10), 0, 0)})

	require.Len(t, cands, 1)
	assert.Equal(t, int64(7), cands[0].Fixture.ID)
	assert.Equal(t, 10, cands[0].Minute)
	assert.False(t, cands[0].DetectedAt.IsZero())
}

func TestDetectorRejects(t *testing.T) {
	d := trader.NewDetector(trader.DetectorConfig{MinMinute: 25, MaxMinute: 60})

	tests := []struct {
		name string
		snap domain.FixtureSnapshot
	}{
		{"unknown minute", makeSnapshot(1, nil, 0, 0)},
		{"home goal", makeSnapshot(2, minutePtr(30), 1, 0)},
		{"away goal", makeSnapshot(3, minutePtr(30), 0, 2)},
		{"before window", makeSnapshot(4, minutePtr(24), 0, 0)},
		{"after window", makeSnapshot(5, minutePtr(61), 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, d.Detect([]domain.FixtureSnapshot{tt.snap}))
		})
	}
}

func TestDetectorWindowBoundsInclusive(t *testing.T) {
	d := trader.NewDetector(trader.DetectorConfig{MinMinute: 25, MaxMinute: 60})

	assert.Len(t, d.Detect([]domain.FixtureSnapshot{makeSnapshot(1, minutePtr(25), 0, 0)}), 1)
	assert.Len(t, d.Detect([]domain.FixtureSnapshot{makeSnapshot(2, minutePtr(60), 0, 0)}), 1)
}

// El mismo snapshot evaluado dos veces da el mismo veredicto.
func TestDetectorDeterministic(t *testing.T) {
	d := trader.NewDetector(trader.DetectorConfig{MinMinute: 1, MaxMinute: 80})
	batch := []domain.FixtureSnapshot{
		makeSnapshot(1, minutePtr(10), 0, 0),
		makeSnapshot(2, minutePtr(10), 1, 0),
		makeSnapshot(3, nil, 0, 0),
	}

	first := d.Detect(batch)
	second := d.Detect(batch)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Fixture.ID, second[0].Fixture.ID)
	assert.Equal(t, first[0].Minute, second[0].Minute)
}

func TestDetectorMixedBatch(t *testing.T) {
	d := trader.NewDetector(trader.DetectorConfig{MinMinute: 1, MaxMinute: 80})

	cands := d.Detect([]domain.FixtureSnapshot{
		makeSnapshot(1, minutePtr(10), 0, 0),
		makeSnapshot(2, minutePtr(50), 0, 1),
		makeSnapshot(3, minutePtr(79), 0, 0),
		makeSnapshot(4, minutePtr(81), 0, 0),
	})

	require.Len(t, cands, 2)
	assert.Equal(t, int64(1), cands[0].Fixture.ID)
	assert.Equal(t, int64(3), cands[1].Fixture.ID)
}
