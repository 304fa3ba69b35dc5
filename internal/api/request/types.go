package request

// RenamePlayerRequest is the request body for renaming a roster slot
type RenamePlayerRequest struct {
	Name string `json:"name"`
}

// AddRoundRequest is the request body for recording a round.
// Host and Friends are roster seat indices; Bid is ignored for 1v5.
type AddRoundRequest struct {
	Mode          string `json:"mode"`
	Host          *int   `json:"host"`
	Friends       []int  `json:"friends,omitempty"`
	Bid           int    `json:"bid"`
	OpponentScore *int   `json:"opponent_score"`
}
