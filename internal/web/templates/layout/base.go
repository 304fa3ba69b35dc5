package layout

import (
	"github.com/a-h/templ"

	"github.com/mcoot/findingfriends/internal/web/templates/markup"
)

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // success, error, info
	Message string
}

// PageData is common to every page
type PageData struct {
	Title string
	Flash *FlashMessage
	Today string // date of the current session, for the nav link
}

// Base wraps page content in the document shell
func Base(data PageData, content templ.Component) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		m.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.Raw(`<title>`)
		m.Text(data.Title)
		m.Raw(` | Finding Friends</title>`)
		m.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		m.Raw(`<script src="https://unpkg.com/htmx-ext-sse@2.2.2/sse.js"></script>`)
		m.Raw(`</head><body>`)

		m.Raw(`<nav class="nav"><a href="/" class="brand">Finding Friends</a>`)
		if data.Today != "" {
			m.Raw(`<a`)
			m.Attr("href", "/sessions/"+data.Today)
			m.Raw(`>Today</a>`)
		}
		m.Raw(`<a href="/stats">All time</a></nav>`)

		if data.Flash != nil {
			m.Raw(`<div`)
			m.Attr("class", "flash flash-"+data.Flash.Type)
			m.Raw(` role="alert">`)
			m.Text(data.Flash.Message)
			m.Raw(`</div>`)
		}

		m.Raw(`<main>`)
		m.Component(content)
		m.Raw(`</main></body></html>`)
	})
}
