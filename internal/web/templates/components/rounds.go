package components

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/web/templates/markup"
)

// RoundTable renders a session's rounds, most recent first
func RoundTable(rounds []model.Round) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<table id="rounds" class="rounds"><thead><tr>`)
		m.Raw(`<th>Round</th><th>Mode</th><th>Host</th><th>Friends</th><th>Bid</th><th>Opponents</th><th>Result</th>`)
		m.Raw(`</tr></thead><tbody>`)
		if len(rounds) == 0 {
			m.Raw(`<tr class="empty"><td colspan="7">No rounds yet</td></tr>`)
		}
		for i := len(rounds) - 1; i >= 0; i-- {
			m.Component(RoundRow(rounds[i]))
		}
		m.Raw(`</tbody></table>`)
	})
}

// RoundRow renders a single round
func RoundRow(r model.Round) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<tr class="round"`)
		m.Attr("data-round", strconv.Itoa(r.Round))
		m.Raw(`><td class="number">`)
		m.Text(strconv.Itoa(r.Round))
		m.Raw(`</td><td class="mode">`)
		m.Text(string(r.Mode))
		m.Raw(`</td><td class="host">`)
		m.Text(r.Host)
		m.Raw(`</td><td class="friends">`)
		m.Text(strings.Join(r.Friends, ", "))
		m.Raw(`</td><td class="bid">`)
		m.Text(BidLabel(r.Bid))
		m.Raw(`</td><td class="opponents">`)
		m.Text(strconv.Itoa(r.OpponentScore))
		m.Raw(`</td><td class="result"><span`)
		m.Attr("class", "winner "+winnerClass(r.Winner))
		m.Raw(`>`)
		m.Text(string(r.Winner))
		m.Raw(`</span><div class="distribution">`)
		m.Text(r.Distribution)
		m.Raw(`</div></td></tr>`)
	})
}

// BidLabel shows the no-bids sentinel by name
func BidLabel(bid int) string {
	if bid == model.NoBidsSentinel {
		return "No Bids"
	}
	return strconv.Itoa(bid)
}

func winnerClass(w model.Winner) string {
	if w.HostSideWon() {
		return "winner-host"
	}
	return "winner-opponents"
}
