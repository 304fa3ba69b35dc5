package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case SessionList:
		o.printSessionList(v)
	case Round:
		o.printRound(v)
	case Standings:
		o.printStandings(v)
	case Summary:
		o.printSummary(v)
	case RecordList:
		o.printRecords(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Round response type (matches API)
type Round struct {
	Round         int                `json:"round"`
	Mode          string             `json:"mode"`
	Players       []string           `json:"players"`
	Host          string             `json:"host"`
	Friends       []string           `json:"friends"`
	Bid           int                `json:"bid"`
	OpponentScore int                `json:"opponent_score"`
	Scores        map[string]float64 `json:"scores"`
	Winner        string             `json:"winner"`
	Distribution  string             `json:"distribution"`
	RecordedAt    time.Time          `json:"recorded_at"`
}

// Session response type
type Session struct {
	Date      string   `json:"date"`
	Players   []string `json:"players"`
	Rounds    []Round  `json:"rounds"`
	NextRound int      `json:"next_round"`
	Editable  bool     `json:"editable"`
}

// SessionListItem response type
type SessionListItem struct {
	Date       string   `json:"date"`
	Players    []string `json:"players"`
	RoundCount int      `json:"round_count"`
}

// SessionList response type
type SessionList struct {
	Today    string            `json:"today"`
	Sessions []SessionListItem `json:"sessions"`
}

// Ranking response type
type Ranking struct {
	Name        string  `json:"name"`
	Total       float64 `json:"total"`
	Played      int     `json:"played"`
	Hosted      int     `json:"hosted"`
	HostWins    int     `json:"host_wins"`
	HostRate    int     `json:"host_rate"`
	FriendGames int     `json:"friend_games"`
	FriendWins  int     `json:"friend_wins"`
	FriendRate  int     `json:"friend_rate"`
}

// Summary response type
type Summary struct {
	Rankings        []Ranking `json:"rankings"`
	BestHost        *Ranking  `json:"best_host"`
	BestFriend      *Ranking  `json:"best_friend"`
	MostGamesPlayed *Ranking  `json:"most_games_played"`
	RoundCount      int       `json:"round_count"`
	SessionCount    int       `json:"session_count"`
}

// Standings response type
type Standings struct {
	Date     string `json:"date"`
	Editable bool   `json:"editable"`
	Summary
}

// Record response type
type Record struct {
	ID          string             `json:"id"`
	SessionDate string             `json:"session_date"`
	Round       int                `json:"round"`
	Mode        string             `json:"mode"`
	Players     []string           `json:"players"`
	Scores      map[string]float64 `json:"scores"`
	CreatedAt   time.Time          `json:"created_at"`
}

// RecordList response type
type RecordList struct {
	Records []Record `json:"records"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// formatPoints drops a trailing .0 from whole scores
func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func bidLabel(bid int) string {
	if bid == 160 {
		return "No Bids"
	}
	return strconv.Itoa(bid)
}

func (o *Output) printSession(s Session) {
	status := "open"
	if !s.Editable {
		status = "closed"
	}
	_, _ = fmt.Fprintf(o.w, "Session: %s (%s)\n", s.Date, status)
	_, _ = fmt.Fprintln(o.w, "Players:")
	for i, p := range s.Players {
		_, _ = fmt.Fprintf(o.w, "  %d. %s\n", i, p)
	}
	if len(s.Rounds) == 0 {
		_, _ = fmt.Fprintln(o.w, "No rounds yet")
		return
	}
	_, _ = fmt.Fprintf(o.w, "Rounds (%d):\n", len(s.Rounds))
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  #\tMODE\tHOST\tFRIENDS\tBID\tOPP\tWINNER")
	for _, r := range s.Rounds {
		_, _ = fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.Round, r.Mode, r.Host, strings.Join(r.Friends, ", "), bidLabel(r.Bid), r.OpponentScore, r.Winner)
	}
	_ = tw.Flush()
}

func (o *Output) printSessionList(l SessionList) {
	_, _ = fmt.Fprintf(o.w, "Today: %s\n", l.Today)
	if len(l.Sessions) == 0 {
		_, _ = fmt.Fprintln(o.w, "No sessions recorded")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DATE\tROUNDS\tPLAYERS")
	for _, s := range l.Sessions {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Date, s.RoundCount, strings.Join(s.Players, ", "))
	}
	_ = tw.Flush()
}

func (o *Output) printRound(r Round) {
	_, _ = fmt.Fprintf(o.w, "Round %d (%s)\n", r.Round, r.Mode)
	_, _ = fmt.Fprintln(o.w, r.Distribution)
}

func (o *Output) printStandings(s Standings) {
	_, _ = fmt.Fprintf(o.w, "Standings for %s\n", s.Date)
	o.printSummary(s.Summary)
}

func (o *Output) printSummary(s Summary) {
	_, _ = fmt.Fprintf(o.w, "Rounds: %d", s.RoundCount)
	if s.SessionCount > 1 {
		_, _ = fmt.Fprintf(o.w, " over %d sessions", s.SessionCount)
	}
	_, _ = fmt.Fprintln(o.w)

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tPLAYER\tTOTAL\tPLAYED\tHOST\tFRIEND")
	for i, r := range s.Rankings {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			i+1, r.Name, formatPoints(r.Total), r.Played,
			record(r.HostWins, r.Hosted, r.HostRate), record(r.FriendWins, r.FriendGames, r.FriendRate))
	}
	_ = tw.Flush()

	if s.BestHost != nil {
		_, _ = fmt.Fprintf(o.w, "Best host: %s (%d%%)\n", s.BestHost.Name, s.BestHost.HostRate)
	}
	if s.BestFriend != nil {
		_, _ = fmt.Fprintf(o.w, "Best friend: %s (%d%%)\n", s.BestFriend.Name, s.BestFriend.FriendRate)
	}
	if s.MostGamesPlayed != nil {
		_, _ = fmt.Fprintf(o.w, "Most games: %s (%d)\n", s.MostGamesPlayed.Name, s.MostGamesPlayed.Played)
	}
}

func record(wins, games, rate int) string {
	if games == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d (%d%%)", wins, games, rate)
}

func (o *Output) printRecords(l RecordList) {
	if len(l.Records) == 0 {
		_, _ = fmt.Fprintln(o.w, "No records")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RECORDED\tSESSION\tROUND\tMODE\tTOP SCORE")
	for _, r := range l.Records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.SessionDate, r.Round, r.Mode, topScore(r.Scores))
	}
	_ = tw.Flush()
}

// topScore names the highest scorer of a round, or "-" if nobody scored
func topScore(scores map[string]float64) string {
	best, bestName := 0.0, ""
	for name, v := range scores {
		if v > best || (v == best && v > 0 && name < bestName) {
			best, bestName = v, name
		}
	}
	if bestName == "" {
		return "-"
	}
	return bestName + " +" + formatPoints(best)
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
