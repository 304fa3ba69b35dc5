package pages

import (
	"github.com/a-h/templ"

	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/web/templates/components"
	"github.com/mcoot/findingfriends/internal/web/templates/layout"
	"github.com/mcoot/findingfriends/internal/web/templates/markup"
)

// SessionData contains data for the session page
type SessionData struct {
	layout.PageData
	Session  *model.Session
	Summary  model.Summary
	Editable bool // rounds can only be added to today's session
}

// Session renders a session's roster, standings and rounds
func Session(data SessionData) templ.Component {
	base := "/sessions/" + string(data.Session.Date)
	content := markup.Func(func(m *markup.Writer) {
		m.Raw(`<section class="session"><header><h1>`)
		m.Text(string(data.Session.Date))
		m.Raw(`</h1>`)
		if !data.Editable {
			m.Raw(`<p class="locked">This session is closed to new rounds.</p>`)
		}
		m.Raw(`<img class="qr" alt="QR code for this session" width="128" height="128"`)
		m.Attr("src", base+"/qr.png")
		m.Raw(`></header>`)

		m.Raw(`<h2>Players</h2>`)
		m.Component(components.Roster(data.Session.Date, data.Session.Players))

		if data.Editable {
			m.Raw(`<h2>New round</h2>`)
			m.Component(components.RoundForm(data.Session.Date, data.Session.Players))
		}

		m.Raw(`<div hx-ext="sse"`)
		m.Attr("sse-connect", base+"/events")
		m.Raw(`><div sse-swap="round-added,roster-updated" hx-target="#live-board" hx-swap="outerHTML"></div>`)
		m.Component(components.LiveBoard(data.Summary, data.Session.Rounds))
		m.Raw(`</div></section>`)
	})
	return layout.Base(data.PageData, content)
}
