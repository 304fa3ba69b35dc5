package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/web/templates/markup"
)

// Roster renders the six seats as rename forms
func Roster(date model.SessionDate, players []string) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<ol id="roster" class="roster">`)
		for i, name := range players {
			m.Raw(`<li class="seat">`)
			m.Raw(`<form method="post" class="rename"`)
			m.Attr("action", "/sessions/"+string(date)+"/players/"+strconv.Itoa(i))
			m.Raw(`><input type="text" name="name" required maxlength="40"`)
			m.Attr("value", name)
			m.Raw(`><button type="submit">Rename</button></form></li>`)
		}
		m.Raw(`</ol>`)
	})
}

// RoundForm renders the round entry form for today's session
func RoundForm(date model.SessionDate, players []string) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<form id="round-form" method="post" class="round-form"`)
		m.Attr("action", "/sessions/"+string(date)+"/rounds")
		m.Raw(`>`)

		m.Raw(`<fieldset class="mode"><legend>Mode</legend>`)
		m.Raw(`<label><input type="radio" name="mode" value="Normal" checked> Normal</label>`)
		m.Raw(`<label><input type="radio" name="mode" value="1v5"> 1v5</label>`)
		m.Raw(`</fieldset>`)

		m.Raw(`<label>Host <select name="host" required>`)
		for i, name := range players {
			m.Raw(`<option`)
			m.Attr("value", strconv.Itoa(i))
			m.Raw(`>`)
			m.Text(name)
			m.Raw(`</option>`)
		}
		m.Raw(`</select></label>`)

		m.Raw(`<fieldset class="friends"><legend>Friends (up to 2)</legend>`)
		for i, name := range players {
			m.Raw(`<label><input type="checkbox" name="friend"`)
			m.Attr("value", strconv.Itoa(i))
			m.Raw(`> `)
			m.Text(name)
			m.Raw(`</label>`)
		}
		m.Raw(`</fieldset>`)

		m.Raw(`<label>Bid <select name="bid">`)
		for bid := model.MinBid; bid <= 155; bid += 5 {
			m.Raw(`<option`)
			m.Attr("value", strconv.Itoa(bid))
			m.Raw(`>`)
			m.Text(strconv.Itoa(bid))
			m.Raw(`</option>`)
		}
		m.Raw(`<option`)
		m.Attr("value", strconv.Itoa(model.NoBidsSentinel))
		m.Raw(`>No Bids</option></select></label>`)

		m.Raw(`<label>Opponent points <input type="number" name="opponent_score" min="0" step="5" required`)
		m.Attr("max", strconv.Itoa(model.MaxOpponentScore))
		m.Raw(`></label>`)

		m.Raw(`<button type="submit">Add round</button></form>`)
	})
}
