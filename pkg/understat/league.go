package understat

import (
	"fmt"
	"strings"
)

// League identifies a supported competition. The numeric IDs predate this
// server and are kept for compatibility with existing callers.
type League struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"-"`    // understat URL slug, e.g. "La_liga"
	DisplaySlug string `json:"slug"` // user-facing slug, e.g. "LaLiga"
}

// Leagues is the ordered registry of supported leagues.
var Leagues = []League{
	{ID: "9", Name: "Premier League", Slug: "EPL", DisplaySlug: "EPL"},
	{ID: "12", Name: "La Liga", Slug: "La_liga", DisplaySlug: "LaLiga"},
	{ID: "11", Name: "Serie A", Slug: "Serie_A", DisplaySlug: "SerieA"},
	{ID: "20", Name: "Bundesliga", Slug: "Bundesliga", DisplaySlug: "Bundesliga"},
	{ID: "13", Name: "Ligue 1", Slug: "Ligue_1", DisplaySlug: "Ligue1"},
}

// ResolveLeague maps a query to a League. Accepts the numeric ID ("9"), a
// slug ("EPL", "LaLiga"), or a full or partial name ("Premier League",
// "premier"), checked in that order.
func ResolveLeague(query string) (League, error) {
	q := strings.TrimSpace(query)
	qLower := strings.ToLower(q)

	for _, league := range Leagues {
		if league.ID == q {
			return league, nil
		}
	}

	for _, league := range Leagues {
		if qLower == strings.ToLower(league.Slug) || qLower == strings.ToLower(league.DisplaySlug) {
			return league, nil
		}
	}

	for _, league := range Leagues {
		name := strings.ToLower(league.Name)
		if strings.Contains(name, qLower) || strings.Contains(qLower, name) {
			return league, nil
		}
	}

	var available []string
	for _, league := range Leagues {
		available = append(available, fmt.Sprintf("%s (%s)", league.DisplaySlug, league.Name))
	}
	return League{}, fmt.Errorf("unknown league %q, available: %s", query, strings.Join(available, ", "))
}

// LeagueByID returns the league with the given numeric ID.
func LeagueByID(id string) (League, error) {
	for _, league := range Leagues {
		if league.ID == id {
			return league, nil
		}
	}
	return League{}, fmt.Errorf("unsupported league ID: %s", id)
}
