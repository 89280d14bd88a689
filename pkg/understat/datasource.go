package understat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/goalgorithm/mcp/internal/logger"
	"github.com/goalgorithm/mcp/pkg/transport"
)

// Datasource fetches xG team data from understat.com, caching aggregated
// stats in sqlite with a TTL so repeated tool calls don't hammer the site.
type Datasource struct {
	baseURL string
	pageURL string
}

var (
	datasourceInstance *Datasource
	datasourceOnce     sync.Once
)

// GetDatasourceInstance returns the singleton Datasource.
func GetDatasourceInstance() *Datasource {
	datasourceOnce.Do(func() {
		datasourceInstance = &Datasource{
			baseURL: Config.BaseURL,
			pageURL: Config.PageURL,
		}
		if err := CreateTable(&TeamStats{}); err != nil {
			logger.Error("Failed to create stats cache table", err)
		}
	})
	return datasourceInstance
}

// GetLeagueData returns the current season's team stats for a league, in
// feed order, using the cache when fresh.
func (ds *Datasource) GetLeagueData(leagueID string) ([]*TeamStats, error) {
	league, err := LeagueByID(leagueID)
	if err != nil {
		return nil, err
	}
	season := CurrentSeason()

	if cached := ds.readCache(leagueID, season); cached != nil {
		return cached, nil
	}

	stats, err := ds.fetchLeague(league, season)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("no team data available for league %s season %d", league.Name, season)
	}

	if err := ds.writeCache(leagueID, season, stats); err != nil {
		// A broken cache must not break predictions
		logger.Warn("Failed to write stats cache", err)
	}
	return stats, nil
}

// RefreshAll force-fetches every supported league, bypassing the cache.
func (ds *Datasource) RefreshAll() error {
	season := CurrentSeason()
	for _, league := range Leagues {
		logger.Info("Refreshing league", league.Name, "season", season)
		stats, err := ds.fetchLeague(league, season)
		if err != nil {
			return fmt.Errorf("failed to refresh %s: %w", league.Name, err)
		}
		if err := ds.writeCache(league.ID, season, stats); err != nil {
			return fmt.Errorf("failed to cache %s: %w", league.Name, err)
		}
		logger.Info("Cached teams for", league.Name, len(stats))
	}
	return nil
}

// readCache returns cached rows for the league/season if they are within
// the TTL, or nil on any miss or error (errors fall through to a fetch).
func (ds *Datasource) readCache(leagueID string, season int) []*TeamStats {
	rows, err := FindWhere(&TeamStats{}, "league_id = ? AND season = ? ORDER BY rank", leagueID, season)
	if err != nil {
		logger.Warn("Stats cache read failed", err)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if time.Since(row.UpdatedAt) > Config.CacheTTL {
			logger.Debug("Stats cache stale for league", leagueID)
			return nil
		}
	}
	logger.Debug("Stats cache hit for league", leagueID)
	return rows
}

func (ds *Datasource) writeCache(leagueID string, season int, stats []*TeamStats) error {
	if err := DeleteWhere(&TeamStats{}, "league_id = ? AND season = ?", leagueID, season); err != nil {
		return err
	}
	return SaveAll(stats)
}

// fetchLeague tries the JSON endpoint first and falls back to scraping the
// league page when the endpoint is unavailable.
func (ds *Datasource) fetchLeague(league League, season int) ([]*TeamStats, error) {
	teams, err := ds.fetchLeagueJSON(league, season)
	if err != nil {
		logger.Warn("JSON endpoint failed, falling back to page scrape", err)
		teams, err = ds.fetchLeaguePage(league, season)
		if err != nil {
			return nil, err
		}
	}
	return AggregateTeamStats(teams, league.ID, season), nil
}

// fetchLeagueJSON hits understat's getLeagueData endpoint, which returns
// {"teams": [...]} with per-match history for each team.
func (ds *Datasource) fetchLeagueJSON(league League, season int) ([]teamSeason, error) {
	url := fmt.Sprintf("%s%s/%d", ds.baseURL, league.Slug, season)
	body, err := transport.GetJSON(url)
	if err != nil {
		return nil, err
	}

	var response struct {
		Teams []teamSeason `json:"teams"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("could not parse understat response: %w", err)
	}
	if response.Teams == nil {
		return nil, fmt.Errorf("understat response has no teams field")
	}
	return response.Teams, nil
}

var teamsDataRe = regexp.MustCompile(`teamsData\s*=\s*JSON\.parse\('(.*?)'\)`)

// fetchLeaguePage scrapes the league page, whose scripts embed the same
// team data as a hex-escaped JSON.parse literal keyed by team id.
func (ds *Datasource) fetchLeaguePage(league League, season int) ([]teamSeason, error) {
	url := fmt.Sprintf("%s%s/%d", ds.pageURL, league.Slug, season)
	body, err := transport.GetHTML(url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse league page: %w", err)
	}

	var raw string
	doc.Find("script").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if m := teamsDataRe.FindStringSubmatch(s.Text()); m != nil {
			raw = m[1]
			return false
		}
		return true
	})
	if raw == "" {
		return nil, fmt.Errorf("teamsData not found in league page")
	}

	decoded, err := decodeHexEscaped(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode teamsData: %w", err)
	}
	return decodeOrderedTeams([]byte(decoded))
}

// decodeHexEscaped resolves \xNN escapes in understat's embedded JSON.
func decodeHexEscaped(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if i+3 < len(s) && s[i] == '\\' && s[i+1] == 'x' {
			n, err := strconv.ParseUint(s[i+2:i+4], 16, 8)
			if err != nil {
				return "", fmt.Errorf("bad hex escape at %d: %w", i, err)
			}
			b.WriteByte(byte(n))
			i += 4
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String(), nil
}

// decodeOrderedTeams parses the teamsData object preserving key order,
// which a plain map unmarshal would lose.
func decodeOrderedTeams(data []byte) ([]teamSeason, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("could not parse teamsData: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("teamsData is not a JSON object")
	}

	var teams []teamSeason
	for dec.More() {
		if _, err := dec.Token(); err != nil { // team id key
			return nil, fmt.Errorf("could not parse teamsData key: %w", err)
		}
		var team teamSeason
		if err := dec.Decode(&team); err != nil {
			return nil, fmt.Errorf("could not parse teamsData entry: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, nil
}
