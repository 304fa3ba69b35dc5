package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/services/scoring"
	"github.com/mcoot/findingfriends/internal/web/templates/markup"
)

// Standings renders the ranking table
func Standings(rankings []model.Ranking) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<table id="standings" class="standings"><thead><tr>`)
		m.Raw(`<th>#</th><th>Player</th><th>Total</th><th>Played</th><th>Host</th><th>Friend</th>`)
		m.Raw(`</tr></thead><tbody>`)
		for i, r := range rankings {
			m.Raw(`<tr class="standing"`)
			m.Attr("data-player", r.Name)
			m.Raw(`><td class="rank">`)
			m.Text(strconv.Itoa(i + 1))
			m.Raw(`</td><td class="name">`)
			m.Text(r.Name)
			m.Raw(`</td><td class="total">`)
			m.Text(scoring.FormatPoints(r.Total))
			m.Raw(`</td><td class="played">`)
			m.Text(strconv.Itoa(r.Played))
			m.Raw(`</td><td class="host">`)
			m.Text(record(r.HostWins, r.Hosted, r.HostRate))
			m.Raw(`</td><td class="friend">`)
			m.Text(record(r.FriendWins, r.FriendGames, r.FriendRate))
			m.Raw(`</td></tr>`)
		}
		m.Raw(`</tbody></table>`)
	})
}

// Highlights renders the best host, best friend and most games callouts
func Highlights(summary model.Summary) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<dl id="highlights" class="highlights">`)
		highlight(m, "best-host", "Best host", summary.BestHost, func(r *model.Ranking) string {
			return record(r.HostWins, r.Hosted, r.HostRate)
		})
		highlight(m, "best-friend", "Best friend", summary.BestFriend, func(r *model.Ranking) string {
			return record(r.FriendWins, r.FriendGames, r.FriendRate)
		})
		highlight(m, "most-games", "Most games", summary.MostGamesPlayed, func(r *model.Ranking) string {
			return strconv.Itoa(r.Played) + " rounds"
		})
		m.Raw(`</dl>`)
	})
}

func highlight(m *markup.Writer, class, label string, r *model.Ranking, detail func(*model.Ranking) string) {
	m.Raw(`<div`)
	m.Attr("class", class)
	m.Raw(`><dt>`)
	m.Text(label)
	m.Raw(`</dt><dd>`)
	if r == nil {
		m.Raw(`<span class="muted">Not enough games</span>`)
	} else {
		m.Raw(`<span class="name">`)
		m.Text(r.Name)
		m.Raw(`</span> <span class="detail">`)
		m.Text(detail(r))
		m.Raw(`</span>`)
	}
	m.Raw(`</dd></div>`)
}

// record formats "wins/games (rate%)", or a dash when there are no games
func record(wins, games, rate int) string {
	if games == 0 {
		return "-"
	}
	return strconv.Itoa(wins) + "/" + strconv.Itoa(games) + " (" + strconv.Itoa(rate) + "%)"
}
