package models

// Rosters are the ordered known-player name lists for a game's two teams,
// supplied by the roster collaborator. Order matters: inning-start seeding
// pushes runners in roster order, not textual order.
type Rosters struct {
	Away []string `json:"away"`
	Home []string `json:"home"`
}
