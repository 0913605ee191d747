package models

import "time"

// Bases is the realized base occupancy after an event. A nil slot is empty.
type Bases struct {
	First  *string `json:"first"`
	Second *string `json:"second"`
	Third  *string `json:"third"`
}

// Snapshot is the game state projection handed to consumers after each
// processed event: base occupancy, the box score so far, and the runner
// queue. It is a value; mutable internals stay with the processor.
type Snapshot struct {
	GameID     string      `json:"game_id"`
	LastIndex  int         `json:"last_index"`
	Inning     int         `json:"inning"`
	InningSide int         `json:"inning_side"`
	AwayScore  int         `json:"away_score"`
	HomeScore  int         `json:"home_score"`
	Bases      Bases       `json:"bases"`
	BoxScore   *BoxScore   `json:"box_score"`
	Queue      RunnerQueue `json:"queue"`
	Complete   bool        `json:"complete"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
