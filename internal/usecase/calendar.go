package usecase

import (
	"github.com/arkadito/clash-league/internal/domain/league"
	"github.com/arkadito/clash-league/internal/domain/team"
)

// generateCalendar builds the regular-season schedule: every team owes
// GamesPerTeam games, days pair as many quota-holding teams as possible, and
// home advantage is drawn per fixture. A day that pairs nobody while quotas
// remain ends generation so a lopsided quota distribution cannot loop
// forever.
func (e *Engine) generateCalendar() {
	quotas := make(map[string]int, len(e.state.Teams))
	for _, t := range e.state.Teams {
		quotas[t.ID] = e.cfg.GamesPerTeam
	}

	e.state.Schedule = e.state.Schedule[:0]
	day := 1
	for {
		remaining := 0
		for _, q := range quotas {
			remaining += q
		}
		if remaining == 0 {
			break
		}

		pool := make([]*team.Team, 0, len(e.state.Teams))
		for _, t := range e.state.Teams {
			if quotas[t.ID] > 0 {
				pool = append(pool, t)
			}
		}
		e.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		paired := 0
		for i := 0; i+1 < len(pool); i += 2 {
			a, b := pool[i], pool[i+1]
			home, away := a, b
			if e.rng.Bool() {
				home, away = b, a
			}
			e.state.Schedule = append(e.state.Schedule, league.ScheduleEntry{
				Day:        day,
				HomeTeamID: home.ID,
				AwayTeamID: away.ID,
			})
			quotas[a.ID]--
			quotas[b.ID]--
			paired++
		}

		if paired == 0 {
			e.logger.Warn("calendar generation stopped with unmet quotas",
				"day", day,
				"remainingGames", remaining,
			)
			break
		}
		day++
	}

	e.logger.Info("calendar generated",
		"fixtures", len(e.state.Schedule),
		"days", day-1,
	)
}
