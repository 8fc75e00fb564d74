package match

import "time"

// SelectMoveRequest describes a position as the moves that led to it, in GTP
// notation ("D4", "pass", "resign").
type SelectMoveRequest struct {
	BoardSize int      `json:"board_size"`
	Moves     []string `json:"moves"`
	Komi      *float64 `json:"komi,omitempty"`
}

type BotMoveResponse struct {
	BotMove     string         `json:"bot_move"`
	Diagnostics map[string]any `json:"diagnostics"`
	RequestID   string         `json:"request_id"`
}

type BotsResponse struct {
	Bots []string `json:"bots"`
}

type ScoreResponse struct {
	BlackStones    int     `json:"black_stones"`
	WhiteStones    int     `json:"white_stones"`
	BlackTerritory int     `json:"black_territory"`
	WhiteTerritory int     `json:"white_territory"`
	Dame           int     `json:"dame"`
	Komi           float64 `json:"komi"`
	Winner         string  `json:"winner"`
	Margin         float64 `json:"margin"`
	Result         string  `json:"result"`
}

type SelfPlayRequest struct {
	Black     string
	White     string
	BoardSize int
}

type MoveRecord struct {
	MoveNumber int    `json:"move_number" bson:"move_number"`
	Color      string `json:"color" bson:"color"`
	Move       string `json:"move" bson:"move"`
}

// MoveFrame is streamed to self-play watchers after every move.
type MoveFrame struct {
	MoveRecord
	Board string `json:"board"`
}

type FinalFrame struct {
	GameID string  `json:"game_id"`
	Winner string  `json:"winner"`
	Margin float64 `json:"margin"`
	Result string  `json:"result"`
}

type ArchivedGame struct {
	GameID     string       `json:"game_id" bson:"game_id"`
	BoardSize  int          `json:"board_size" bson:"board_size"`
	Komi       float64      `json:"komi" bson:"komi"`
	Black      string       `json:"black" bson:"black"`
	White      string       `json:"white" bson:"white"`
	Moves      []MoveRecord `json:"moves" bson:"moves"`
	Winner     string       `json:"winner" bson:"winner"`
	Margin     float64      `json:"margin" bson:"margin"`
	Result     string       `json:"result" bson:"result"`
	SGF        string       `json:"sgf" bson:"sgf"`
	CreatedAt  time.Time    `json:"created_at" bson:"created_at"`
	FinishedAt time.Time    `json:"finished_at" bson:"finished_at"`
}
