package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/findingfriends/internal/api"
	"github.com/mcoot/findingfriends/internal/factory"
	"github.com/mcoot/findingfriends/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "ffscore-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ffscore")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	app      *factory.App
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Create application with an on-disk archive
	app, err := factory.New(context.Background(), factory.Config{
		Logger:      logger,
		ArchivePath: filepath.Join(t.TempDir(), "archive.db"),
	})
	require.NoError(t, err)

	// Create routers
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		SessionController: app.SessionController,
		StatsService:      app.StatsService,
		RecentLimit:       20,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:            logger,
		SessionController: app.SessionController,
		StatsService:      app.StatsService,
		HubManager:        app.HubManager,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		app:    app,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type roundResponse struct {
	Round        int                `json:"round"`
	Mode         string             `json:"mode"`
	Bid          int                `json:"bid"`
	Friends      []string           `json:"friends"`
	Scores       map[string]float64 `json:"scores"`
	Winner       string             `json:"winner"`
	Distribution string             `json:"distribution"`
}

type sessionResponse struct {
	Date     string          `json:"date"`
	Players  []string        `json:"players"`
	Rounds   []roundResponse `json:"rounds"`
	Editable bool            `json:"editable"`
}

type rankingResponse struct {
	Name     string  `json:"name"`
	Total    float64 `json:"total"`
	Played   int     `json:"played"`
	Hosted   int     `json:"hosted"`
	HostWins int     `json:"host_wins"`
}

type summaryResponse struct {
	Rankings     []rankingResponse `json:"rankings"`
	BestHost     *rankingResponse  `json:"best_host"`
	RoundCount   int               `json:"round_count"`
	SessionCount int               `json:"session_count"`
}

type standingsResponse struct {
	Date string `json:"date"`
	summaryResponse
}

type recordsResponse struct {
	Records []struct {
		SessionDate string             `json:"session_date"`
		Round       int                `json:"round"`
		Scores      map[string]float64 `json:"scores"`
	} `json:"records"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func decodeJSON[T any](t *testing.T, output string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(output), &v), "output: %s", output)
	return v
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	resp := decodeJSON[healthResponse](t, output)
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_SessionCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Today's session is created with the default roster
	output, err := cli.run("session", "show")
	require.NoError(t, err, "output: %s", output)
	session := decodeJSON[sessionResponse](t, output)
	assert.Equal(t, string(ts.app.SessionController.Today()), session.Date)
	assert.True(t, session.Editable)
	assert.Equal(t, []string{"Player 1", "Player 2", "Player 3", "Player 4", "Player 5", "Player 6"}, session.Players)

	// Rename a seat
	output, err = cli.run("session", "rename", session.Date, "0", "Alice")
	require.NoError(t, err, "output: %s", output)
	session = decodeJSON[sessionResponse](t, output)
	assert.Equal(t, "Alice", session.Players[0])

	// Duplicate names are rejected
	output, err = cli.run("session", "rename", session.Date, "1", "Alice")
	assert.Error(t, err)
	assert.Contains(t, output, "DUPLICATE_PLAYER_NAME")

	// The session is listed
	output, err = cli.run("session", "list")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, session.Date)
}

func TestCLI_FullEvening(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	_, err := cli.run("session", "rename", "today", "0", "Alice")
	require.NoError(t, err)

	// Alice hosts with one friend and wins: pool 270 split 203/67
	output, err := cli.run("round", "add", "--host", "0", "--friend", "1", "--bid", "150", "--opponent", "130")
	require.NoError(t, err, "output: %s", output)
	round := decodeJSON[roundResponse](t, output)
	assert.Equal(t, 1, round.Round)
	assert.Equal(t, 203.0, round.Scores["Alice"])
	assert.Equal(t, 67.0, round.Scores["Player 2"])

	// No Bids, opponents take it
	output, err = cli.run("round", "add", "--host", "2", "--bid", "160", "--opponent", "170")
	require.NoError(t, err, "output: %s", output)
	round = decodeJSON[roundResponse](t, output)
	assert.Equal(t, 160, round.Bid)
	assert.Equal(t, "Opponents", round.Winner)
	assert.Equal(t, 51.0, round.Scores["Alice"])

	// 1v5 forces the bid and wins 400
	output, err = cli.run("round", "add", "--mode", "1v5", "--host", "0", "--friend", "3", "--opponent", "100")
	require.NoError(t, err, "output: %s", output)
	round = decodeJSON[roundResponse](t, output)
	assert.Equal(t, 200, round.Bid)
	assert.Empty(t, round.Friends)
	assert.Equal(t, 400.0, round.Scores["Alice"])

	// Standings reflect all three rounds
	output, err = cli.run("standings")
	require.NoError(t, err, "output: %s", output)
	standings := decodeJSON[standingsResponse](t, output)
	assert.Equal(t, 3, standings.RoundCount)
	require.NotEmpty(t, standings.Rankings)
	assert.Equal(t, "Alice", standings.Rankings[0].Name)
	assert.Equal(t, 203.0+51+400, standings.Rankings[0].Total)

	// All-time stats
	output, err = cli.run("stats")
	require.NoError(t, err, "output: %s", output)
	summary := decodeJSON[summaryResponse](t, output)
	assert.Equal(t, 3, summary.RoundCount)
	assert.Equal(t, 1, summary.SessionCount)

	// Records come from the archive, newest first
	output, err = cli.run("records", "--limit", "2")
	require.NoError(t, err, "output: %s", output)
	records := decodeJSON[recordsResponse](t, output)
	require.Len(t, records.Records, 2)
	assert.Equal(t, 3, records.Records[0].Round)
	assert.Equal(t, 2, records.Records[1].Round)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Three friends is never valid
	output, err := cli.run("round", "add", "--host", "0", "--friend", "1", "--friend", "2", "--friend", "3", "--bid", "120", "--opponent", "100")
	assert.Error(t, err)
	assert.Contains(t, output, "INVALID_ROUND")

	// Past sessions are read-only
	yesterday := time.Now().AddDate(0, 0, -2).Format("2006-01-02")
	output, err = cli.run("round", "add", "--date", yesterday, "--host", "0", "--bid", "120", "--opponent", "100")
	assert.Error(t, err)
	assert.Contains(t, output, "SESSION_LOCKED")

	// Malformed dates
	output, err = cli.run("session", "show", "last-tuesday")
	assert.Error(t, err)
	assert.Contains(t, output, "INVALID_DATE")

	// Missing required flags never reach the server
	output, err = cli.run("round", "add", "--bid", "120")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "--host is required")
}
