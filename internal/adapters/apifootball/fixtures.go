package apifootball

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/goalbot/internal/domain"
)

// LiveFixtures devuelve todos los partidos en vivo, filtrados por la
// allow-list de países configurada.
func (c *Client) LiveFixtures(ctx context.Context) ([]domain.FixtureSnapshot, error) {
	url := c.baseURL + "/fixtures?live=all"

	var resp fixturesResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("apifootball.LiveFixtures: %w", err)
	}

	var out []domain.FixtureSnapshot
	for _, item := range resp.Response {
		if len(c.countries) > 0 && !c.countries[item.League.Country] {
			continue
		}
		out = append(out, mapFixture(item))
	}

	slog.Debug("live fixtures fetched", "total", len(resp.Response), "allowed", len(out))
	return out, nil
}

// FixtureByID devuelve el estado actual de un partido concreto.
// ok=false si el feed ya no devuelve el fixture.
func (c *Client) FixtureByID(ctx context.Context, id int64) (domain.FixtureSnapshot, bool, error) {
	url := fmt.Sprintf("%s/fixtures?id=%d", c.baseURL, id)

	var resp fixturesResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return domain.FixtureSnapshot{}, false, fmt.Errorf("apifootball.FixtureByID: %w", err)
	}
	if len(resp.Response) == 0 {
		return domain.FixtureSnapshot{}, false, nil
	}
	return mapFixture(resp.Response[0]), true, nil
}

// mapFixture convierte el wire type al snapshot de dominio.
// Goles null se normalizan a 0; el minuto se conserva como puntero
// porque "desconocido" es una señal de no actuar, no un cero.
func mapFixture(item fixtureItem) domain.FixtureSnapshot {
	snap := domain.FixtureSnapshot{
		ID:       item.Fixture.ID,
		Country:  item.League.Country,
		League:   item.League.Name,
		HomeTeam: item.Teams.Home.Name,
		AwayTeam: item.Teams.Away.Name,
		Minute:   item.Fixture.Status.Elapsed,
		Status:   item.Fixture.Status.Short,
	}
	if item.Goals.Home != nil {
		snap.HomeGoals = *item.Goals.Home
	}
	if item.Goals.Away != nil {
		snap.AwayGoals = *item.Goals.Away
	}
	return snap
}
