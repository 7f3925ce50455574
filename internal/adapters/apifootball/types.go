package apifootball

// Wire types del endpoint /fixtures de API-Football v3.
// Los campos nullable del JSON (elapsed, goals) se mapean a punteros
// y se normalizan en fixtures.go.

type fixturesResponse struct {
	Response []fixtureItem `json:"response"`
}

type fixtureItem struct {
	Fixture fixtureInfo `json:"fixture"`
	League  leagueInfo  `json:"league"`
	Teams   teamsInfo   `json:"teams"`
	Goals   goalsInfo   `json:"goals"`
}

type fixtureInfo struct {
	ID     int64         `json:"id"`
	Status fixtureStatus `json:"status"`
}

type fixtureStatus struct {
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

type leagueInfo struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type teamsInfo struct {
	Home teamInfo `json:"home"`
	Away teamInfo `json:"away"`
}

type teamInfo struct {
	Name string `json:"name"`
}

type goalsInfo struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
