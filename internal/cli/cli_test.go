package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/findingfriends/internal/api"
	"github.com/mcoot/findingfriends/internal/factory"
	"github.com/mcoot/findingfriends/internal/testutil"
	"github.com/mcoot/findingfriends/internal/web"
)

const today = "2024-03-09"

func startServer(t *testing.T) (*httptest.Server, *factory.TestApp) {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(api.RouterConfig{
		Logger:            testutil.NopLogger(),
		SessionController: app.SessionController,
		StatsService:      app.StatsService,
		RecentLimit:       10,
	}))
	mux.Handle("/", web.NewRouter(web.RouterConfig{
		Logger:            testutil.NopLogger(),
		SessionController: app.SessionController,
		StatsService:      app.StatsService,
		HubManager:        app.HubManager,
	}))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, app
}

// run executes the CLI against server and returns stdout
func run(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--server", server.URL}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func TestHealth(t *testing.T) {
	server, _ := startServer(t)

	out, err := run(t, server, "health")
	require.NoError(t, err)
	assert.Equal(t, "Status: ok\n", out)
}

func TestRoundAddAndStandings(t *testing.T) {
	server, _ := startServer(t)

	out, err := run(t, server, "round", "add", "--host", "0", "--friend", "1", "--bid", "150", "--opponent", "130")
	require.NoError(t, err)
	assert.Contains(t, out, "Round 1 (Normal)")
	assert.Contains(t, out, "Player 1 +203, Player 2 +67")

	out, err = run(t, server, "-o", "json", "standings")
	require.NoError(t, err)

	var standings Standings
	require.NoError(t, json.Unmarshal([]byte(out), &standings))
	assert.Equal(t, today, standings.Date)
	assert.True(t, standings.Editable)
	require.NotEmpty(t, standings.Rankings)
	assert.Equal(t, "Player 1", standings.Rankings[0].Name)
	assert.Equal(t, 203.0, standings.Rankings[0].Total)
}

func TestRoundAddSoloIgnoresBid(t *testing.T) {
	server, _ := startServer(t)

	out, err := run(t, server, "-o", "json", "round", "add", "--mode", "1v5", "--host", "2", "--bid", "90", "--opponent", "120")
	require.NoError(t, err)

	var round Round
	require.NoError(t, json.Unmarshal([]byte(out), &round))
	assert.Equal(t, 200, round.Bid)
	assert.Equal(t, 400.0, round.Scores["Player 3"])
}

func TestRoundAddRequiresHostAndOpponent(t *testing.T) {
	server, _ := startServer(t)

	_, err := run(t, server, "round", "add", "--opponent", "100", "--bid", "120")
	assert.ErrorContains(t, err, "--host is required")

	_, err = run(t, server, "round", "add", "--host", "0", "--bid", "120")
	assert.ErrorContains(t, err, "--opponent is required")
}

func TestRoundAddReportsAPIError(t *testing.T) {
	server, _ := startServer(t)

	_, err := run(t, server, "round", "add", "--host", "0", "--friend", "1", "--friend", "2", "--friend", "3", "--bid", "120", "--opponent", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_ROUND")
}

func TestRoundAddToPastSessionFails(t *testing.T) {
	server, _ := startServer(t)

	_, err := run(t, server, "round", "add", "--date", "2024-03-08", "--host", "0", "--bid", "120", "--opponent", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_LOCKED")
}

func TestSessionShowAndRename(t *testing.T) {
	server, _ := startServer(t)

	out, err := run(t, server, "session", "rename", today, "2", "Carol")
	require.NoError(t, err)
	assert.Contains(t, out, "2. Carol")

	out, err = run(t, server, "session", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Session: "+today+" (open)")
	assert.Contains(t, out, "No rounds yet")

	_, err = run(t, server, "session", "rename", today, "seat", "Dan")
	assert.ErrorContains(t, err, "invalid seat")
}

func TestSessionList(t *testing.T) {
	server, _ := startServer(t)

	_, err := run(t, server, "round", "add", "--host", "0", "--bid", "120", "--opponent", "60")
	require.NoError(t, err)

	out, err := run(t, server, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Today: "+today)
	assert.Contains(t, out, today)
}

func TestStatsAndRecords(t *testing.T) {
	server, _ := startServer(t)

	for range 3 {
		_, err := run(t, server, "round", "add", "--host", "0", "--bid", "120", "--opponent", "60")
		require.NoError(t, err)
	}

	out, err := run(t, server, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Rounds: 3")
	assert.Contains(t, out, "Best host: Player 1 (100%)")

	out, err = run(t, server, "-o", "json", "records", "--limit", "2")
	require.NoError(t, err)

	var records RecordList
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records.Records, 2)
	assert.Equal(t, 3, records.Records[0].Round)

	_, err = run(t, server, "records", "--limit", "0")
	assert.ErrorContains(t, err, "INVALID_REQUEST")
}

func TestVerboseTracesRequests(t *testing.T) {
	server, _ := startServer(t)

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--server", server.URL, "-v", "health"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "> GET "+server.URL+"/api/v1/health")
	assert.Contains(t, stderr.String(), "< 200 OK")
}

// syncBuffer is a bytes.Buffer safe for concurrent writes and reads
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchPrintsRoundEvents(t *testing.T) {
	server, app := startServer(t)
	client = NewClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- watchSession(ctx, &out, "today", true)
	}()

	require.Eventually(t, func() bool {
		hub := app.HubManager.GetHub(today)
		return hub != nil && hub.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	var round Round
	require.NoError(t, client.Post("/api/v1/sessions/today/rounds", addRoundRequest{
		Mode:          "Normal",
		Host:          intPtr(0),
		Friends:       []int{1},
		Bid:           150,
		OpponentScore: intPtr(130),
	}, &round))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `"round-added"`)
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	var event FeedEvent
	line := strings.TrimSpace(strings.SplitN(out.String(), "\n", 2)[0])
	require.NoError(t, json.Unmarshal([]byte(line), &event))
	assert.Equal(t, today, event.Date)
	require.NotNil(t, event.Round)
	assert.Equal(t, 203.0, event.Round.Scores["Player 1"])
}

func intPtr(v int) *int { return &v }

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://localhost:8080", "ws://localhost:8080/sessions/today/ws"},
		{"https://scores.example.com/", "wss://scores.example.com/sessions/today/ws"},
	}
	for _, tt := range tests {
		if got := NewClient(tt.base).WebsocketURL("/sessions/today/ws"); got != tt.want {
			t.Errorf("WebsocketURL(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}

func TestPrintFeedEventText(t *testing.T) {
	var buf bytes.Buffer
	printFeedEvent(&buf, FeedEvent{
		Type:      "roster-updated",
		Timestamp: time.Date(2024, 3, 9, 20, 0, 0, 0, time.Local),
		Summary:   Summary{Rankings: []Ranking{{Name: "Ann", Total: 52.5}, {Name: "Bob"}}},
	}, false)

	assert.Equal(t, "[2024-03-09 20:00:00] roster-updated: players: Ann, Bob\n  leader: Ann (52.5)\n", buf.String())
}

func TestTopScore(t *testing.T) {
	assert.Equal(t, "-", topScore(map[string]float64{"A": 0, "B": 0}))
	assert.Equal(t, "B +400", topScore(map[string]float64{"A": 0, "B": 400}))
	assert.Equal(t, "A +42.5", topScore(map[string]float64{"B": 42.5, "A": 42.5}))
}
