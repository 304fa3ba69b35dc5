package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/findingfriends/internal/web/templates/layout"
	"github.com/mcoot/findingfriends/internal/web/templates/markup"
)

// ErrorData contains data for error pages
type ErrorData struct {
	layout.PageData
	Status  int
	Message string
}

// Error renders an error page
func Error(data ErrorData) templ.Component {
	content := markup.Func(func(m *markup.Writer) {
		m.Raw(`<section class="error"><h1>`)
		m.Text(strconv.Itoa(data.Status))
		m.Raw(`</h1><p class="message">`)
		m.Text(data.Message)
		m.Raw(`</p><p><a href="/">Back to today</a></p></section>`)
	})
	return layout.Base(data.PageData, content)
}
