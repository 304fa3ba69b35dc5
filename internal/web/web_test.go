package web_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/findingfriends/internal/factory"
	"github.com/mcoot/findingfriends/internal/testutil"
	"github.com/mcoot/findingfriends/internal/web"
)

const today = "2024-03-09"

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := web.NewRouter(web.RouterConfig{
		Logger:            testutil.NopLogger(),
		SessionController: app.SessionController,
		StatsService:      app.StatsService,
		HubManager:        app.HubManager,
		PublicURL:         "https://scores.example.com",
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	ts.cookies.extract(rr)

	return rr
}

func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// followRedirect requests the Location of a redirect response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	require.Equal(ts.t, http.StatusSeeOther, rr.Code)
	return ts.get(rr.Header().Get("Location"))
}

// addRound posts the round form for today and follows the redirect
func (ts *webTestServer) addRound(form url.Values) *goquery.Document {
	ts.t.Helper()
	rr := ts.followRedirect(ts.post("/sessions/"+today+"/rounds", form))
	require.Equal(ts.t, http.StatusOK, rr.Code)
	return parseHTML(rr.Body)
}

func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// standingFor returns the standings row for a player
func standingFor(doc *goquery.Document, name string) *goquery.Selection {
	return doc.Find(`#standings tr.standing`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("data-player", "") == name
	})
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{cookies: make(map[string]*http.Cookie)}
}

func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

func TestHomeRedirectsToToday(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/sessions/"+today, rr.Header().Get("Location"))

	rr = ts.get("/sessions/today")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/sessions/"+today, rr.Header().Get("Location"))
}

func TestSessionPageForToday(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/sessions/" + today)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	doc := parseHTML(rr.Body)
	assert.Equal(t, today, doc.Find("h1").First().Text())
	assert.Equal(t, 6, doc.Find("#roster li.seat").Length())
	assert.Equal(t, "Player 1", doc.Find(`#roster input[name="name"]`).First().AttrOr("value", ""))
	assert.Equal(t, 1, doc.Find("#round-form").Length())
	assert.Equal(t, 6, doc.Find("#standings tr.standing").Length())
	assert.Contains(t, doc.Find("#rounds").Text(), "No rounds yet")
	assert.Equal(t, "/sessions/"+today+"/events", doc.Find("[sse-connect]").AttrOr("sse-connect", ""))
	assert.Equal(t, 0, doc.Find(".locked").Length())
}

func TestPastSessionHasNoRoundForm(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/sessions/2024-03-08")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 0, doc.Find("#round-form").Length())
	assert.Equal(t, 1, doc.Find(".locked").Length())
}

func TestInvalidDateRendersErrorPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/sessions/2024-13-45")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, "400", doc.Find("section.error h1").Text())
}

func TestAddRoundForm(t *testing.T) {
	ts := newWebTestServer(t)

	doc := ts.addRound(url.Values{
		"mode":           {"Normal"},
		"host":           {"0"},
		"friend":         {"1"},
		"bid":            {"150"},
		"opponent_score": {"130"},
	})

	flash := doc.Find(".flash-success")
	require.Equal(t, 1, flash.Length())
	assert.Contains(t, flash.Text(), "Round 1")

	rows := doc.Find("#rounds tr.round")
	require.Equal(t, 1, rows.Length())
	assert.Equal(t, "Host Team", rows.Find(".winner").Text())

	assert.Equal(t, "203", standingFor(doc, "Player 1").Find(".total").Text())
	assert.Equal(t, "67", standingFor(doc, "Player 2").Find(".total").Text())
	assert.Equal(t, "1", doc.Find("#standings tr.standing").First().Find(".rank").Text())
	assert.Equal(t, "Player 1", doc.Find("#standings tr.standing").First().Find(".name").Text())

	// Flash is shown once
	doc = parseHTML(ts.get("/sessions/" + today).Body)
	assert.Equal(t, 0, doc.Find(".flash").Length())
}

func TestAddRoundFormRejectsInvalidRound(t *testing.T) {
	ts := newWebTestServer(t)

	doc := ts.addRound(url.Values{
		"mode":           {"Normal"},
		"host":           {"0"},
		"friend":         {"1", "2", "3"},
		"bid":            {"150"},
		"opponent_score": {"100"},
	})

	assert.Equal(t, 1, doc.Find(".flash-error").Length())
	assert.Equal(t, 0, doc.Find("#rounds tr.round").Length())
}

func TestAddRoundFormRequiresOpponentScore(t *testing.T) {
	ts := newWebTestServer(t)

	doc := ts.addRound(url.Values{"mode": {"Normal"}, "host": {"0"}, "bid": {"150"}})

	assert.Contains(t, doc.Find(".flash-error").Text(), "opponent points")
}

func TestAddRoundToPastSessionIsLocked(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/sessions/2024-03-08/rounds", url.Values{
		"mode": {"Normal"}, "host": {"0"}, "bid": {"100"}, "opponent_score": {"50"},
	})
	doc := parseHTML(ts.followRedirect(rr).Body)

	assert.Equal(t, 1, doc.Find(".flash-error").Length())
}

func TestSoloRoundFromForm(t *testing.T) {
	ts := newWebTestServer(t)

	doc := ts.addRound(url.Values{
		"mode":           {"1v5"},
		"host":           {"3"},
		"friend":         {"1"},
		"opponent_score": {"120"},
	})

	row := doc.Find("#rounds tr.round").First()
	assert.Equal(t, "1v5", row.Find(".mode").Text())
	assert.Equal(t, "200", row.Find(".bid").Text())
	assert.Equal(t, "", row.Find(".friends").Text())
	assert.Equal(t, "400", standingFor(doc, "Player 4").Find(".total").Text())
}

func TestRenameForm(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/sessions/"+today+"/players/2", url.Values{"name": {"  Cat  "}})
	doc := parseHTML(ts.followRedirect(rr).Body)

	assert.Equal(t, 1, doc.Find(".flash-success").Length())
	assert.Equal(t, "Cat", doc.Find(`#roster input[name="name"]`).Eq(2).AttrOr("value", ""))
}

func TestRenameFormRejectsDuplicate(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/sessions/"+today+"/players/0", url.Values{"name": {"Player 2"}})
	doc := parseHTML(ts.followRedirect(rr).Body)

	assert.Equal(t, 1, doc.Find(".flash-error").Length())
	assert.Equal(t, "Player 1", doc.Find(`#roster input[name="name"]`).First().AttrOr("value", ""))
}

func TestBidLabelForNoBids(t *testing.T) {
	ts := newWebTestServer(t)

	doc := ts.addRound(url.Values{
		"mode": {"Normal"}, "host": {"0"}, "bid": {"160"}, "opponent_score": {"100"},
	})

	assert.Equal(t, "No Bids", doc.Find("#rounds tr.round .bid").Text())
}

func TestStatsPage(t *testing.T) {
	ts := newWebTestServer(t)

	for range 3 {
		ts.addRound(url.Values{
			"mode": {"Normal"}, "host": {"0"}, "friend": {"1"}, "bid": {"100"}, "opponent_score": {"50"},
		})
	}

	rr := ts.get("/stats")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Contains(t, doc.Find(".counts").Text(), "3 rounds over 1 sessions")
	assert.Equal(t, "Player 1", doc.Find("#highlights .best-host .name").Text())
	assert.Contains(t, doc.Find("#highlights .best-host .detail").Text(), "100%")
	assert.Equal(t, "Player 2", doc.Find("#highlights .best-friend .name").Text())
	assert.Equal(t, 6, doc.Find("#standings tr.standing").Length())
}

func TestStatsPageWithoutQualifyingPlayers(t *testing.T) {
	ts := newWebTestServer(t)

	doc := parseHTML(ts.get("/stats").Body)
	assert.Contains(t, doc.Find("#highlights .best-host").Text(), "Not enough games")
	assert.Equal(t, 0, doc.Find("#standings tr.standing").Length())
}

func TestPlayerNamesAreEscaped(t *testing.T) {
	ts := newWebTestServer(t)

	ts.post("/sessions/"+today+"/players/0", url.Values{"name": {"<b>Bold</b>"}})
	rr := ts.get("/sessions/" + today)

	assert.NotContains(t, rr.Body.String(), "<b>Bold</b>")
	assert.Contains(t, rr.Body.String(), "&lt;b&gt;Bold&lt;/b&gt;")
}

func TestQRCode(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/sessions/" + today + "/qr.png")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")))

	rr = ts.get("/sessions/not-a-date/qr.png")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPanicRendersErrorPage(t *testing.T) {
	// A nil stats service panics inside the stats handler
	app := factory.NewTestApp()
	router := web.NewRouter(web.RouterConfig{
		Logger:            testutil.NopLogger(),
		SessionController: app.SessionController,
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Something went wrong")
}
