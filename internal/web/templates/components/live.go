package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/web/templates/markup"
)

// LiveBoard is the part of a session page that live updates replace
func LiveBoard(summary model.Summary, rounds []model.Round) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<div id="live-board" class="live-board">`)
		m.Raw(`<p class="round-count">`)
		m.Text(strconv.Itoa(summary.RoundCount))
		m.Raw(` rounds played</p>`)
		m.Component(Standings(summary.Rankings))
		m.Component(Highlights(summary))
		m.Component(RoundTable(rounds))
		m.Raw(`</div>`)
	})
}
