package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/web/templates/components"
	"github.com/mcoot/findingfriends/internal/web/templates/layout"
	"github.com/mcoot/findingfriends/internal/web/templates/markup"
)

// StatsData contains data for the all-time leaderboard
type StatsData struct {
	layout.PageData
	Summary model.Summary
}

// Stats renders the all-time leaderboard
func Stats(data StatsData) templ.Component {
	content := markup.Func(func(m *markup.Writer) {
		m.Raw(`<section class="stats"><h1>All time</h1><p class="counts">`)
		m.Text(strconv.Itoa(data.Summary.RoundCount))
		m.Raw(` rounds over `)
		m.Text(strconv.Itoa(data.Summary.SessionCount))
		m.Raw(` sessions</p>`)
		m.Component(components.Highlights(data.Summary))
		m.Component(components.Standings(data.Summary.Rankings))
		m.Raw(`</section>`)
	})
	return layout.Base(data.PageData, content)
}
