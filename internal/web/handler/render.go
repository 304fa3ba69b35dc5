package handler

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/findingfriends/internal/api/apierr"
	"github.com/mcoot/findingfriends/internal/model"
	"github.com/mcoot/findingfriends/internal/services/session"
	"github.com/mcoot/findingfriends/internal/web/middleware"
	"github.com/mcoot/findingfriends/internal/web/templates/layout"
	"github.com/mcoot/findingfriends/internal/web/templates/pages"
)

// todayAlias may be used in place of a date in session URLs
const todayAlias = "today"

// resolveDate parses a {date} path value, resolving the today alias
func resolveDate(controller *session.Controller, raw string) (model.SessionDate, error) {
	if raw == todayAlias {
		return controller.Today(), nil
	}
	return model.ParseSessionDate(raw)
}

// render writes a full HTML page
func render(w http.ResponseWriter, r *http.Request, status int, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = page.Render(r.Context(), w)
}

// renderError renders the error page with a status derived from err
func renderError(w http.ResponseWriter, r *http.Request, controller *session.Controller, err error) {
	status := apierr.Status(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Something went wrong. Please try again later."
	}
	render(w, r, status, pages.Error(pages.ErrorData{
		PageData: pageData(r, controller, http.StatusText(status)),
		Status:   status,
		Message:  message,
	}))
}

// pageData builds the common layout fields for a request
func pageData(r *http.Request, controller *session.Controller, title string) layout.PageData {
	return layout.PageData{
		Title: title,
		Flash: middleware.GetFlash(r.Context()),
		Today: string(controller.Today()),
	}
}

// flashError turns a service error into a user-facing flash message
func flashError(err error) string {
	if errors.Is(err, model.ErrStore) {
		return "Could not save, please try again"
	}
	return err.Error()
}
