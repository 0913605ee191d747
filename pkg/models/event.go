package models

// KindRecordkeeping is the reserved terminal event kind. Once an event with
// this kind is merged, a game's feed will never grow again.
const KindRecordkeeping = "Recordkeeping"

// PlayEvent is one atomic entry in a game's chronological play-by-play log.
// Index is the sole ordering and identity key: monotonically increasing and
// gapless within a game.
type PlayEvent struct {
	Index      int    `json:"index"`
	Kind       string `json:"event"`
	Message    string `json:"message"`
	Inning     int    `json:"inning"`
	InningSide int    `json:"inning_side"` // 0 = away batting, 1 = home batting
	Outs       *int   `json:"outs"`        // nil signals an inning boundary
	OnFirst    bool   `json:"on_1b"`
	OnSecond   bool   `json:"on_2b"`
	OnThird    bool   `json:"on_3b"`
	Batter     string `json:"batter"`
	Pitcher    string `json:"pitcher"`
	OnDeck     string `json:"on_deck,omitempty"`
	AwayScore  int    `json:"away_score"`
	HomeScore  int    `json:"home_score"`
}

// IsTerminal reports whether this event closes the feed.
func (e PlayEvent) IsTerminal() bool {
	return e.Kind == KindRecordkeeping
}

// InningEnd reports whether this event marks an inning boundary. Upstream
// signals it by omitting the outs field, never by message text.
func (e PlayEvent) InningEnd() bool {
	return e.Outs == nil
}

// EventPage is the wire shape of one feed response: entries sorted ascending
// by index, starting strictly after the requested cursor.
type EventPage struct {
	Entries []PlayEvent `json:"entries"`
}
