package models

// UnknownPlayer is the placeholder for a runner or batter upstream did not
// name. Unknown runners occupy base slots but never receive stat credit.
const UnknownPlayer = "Unknown"

// Baserunner is one occupant of the bases. CreditedPitcher is the pitcher
// charged an earned run if this runner later scores; it is empty when the
// runner reached base without a chargeable pitching event.
type Baserunner struct {
	Runner          string `json:"runner"`
	CreditedPitcher string `json:"credited_pitcher,omitempty"`
}

// RunnerQueue holds the current baserunners ordered oldest-on-base first,
// so the front entries are closest to scoring.
type RunnerQueue []Baserunner

// Clone returns an independent copy of the queue.
func (q RunnerQueue) Clone() RunnerQueue {
	out := make(RunnerQueue, len(q))
	copy(out, q)
	return out
}

// BatterStats holds one batter's running totals for a game.
type BatterStats struct {
	AtBats   int  `json:"at_bats"`
	Hits     int  `json:"hits"`
	HomeRuns int  `json:"home_runs"`
	Runs     int  `json:"runs"`
	RBI      int  `json:"rbi"`
	Ejected  bool `json:"ejected"`
}

// PitcherStats holds one pitcher's running totals for a game.
type PitcherStats struct {
	PitchCount    int  `json:"pitch_count"`
	StrikesThrown int  `json:"strikes_thrown"`
	Hits          int  `json:"hits"`
	EarnedRuns    int  `json:"earned_runs"`
	OutsRecorded  int  `json:"outs_recorded"`
	Strikeouts    int  `json:"strikeouts"`
	Walks         int  `json:"walks"`
	Ejected       bool `json:"ejected"`
}

// TeamSheet is one team's side of the box score. Batter and pitcher rows are
// created lazily on first appearance; the order slices record that first
// appearance for lineup displays.
type TeamSheet struct {
	RunsByInning  []int                    `json:"runs_by_inning"`
	Hits          int                      `json:"hits"`
	Errors        int                      `json:"errors"`
	LeftOnBase    int                      `json:"left_on_base"`
	BattingOrder  []string                 `json:"batting_order"`
	PitchingOrder []string                 `json:"pitching_order"`
	Batters       map[string]*BatterStats  `json:"batters"`
	Pitchers      map[string]*PitcherStats `json:"pitchers"`
}

// NewTeamSheet returns an empty team sheet with initialized maps.
func NewTeamSheet() *TeamSheet {
	return &TeamSheet{
		Batters:  make(map[string]*BatterStats),
		Pitchers: make(map[string]*PitcherStats),
	}
}

// Batter returns the stats row for name, creating it (and recording batting
// order) on first reference.
func (t *TeamSheet) Batter(name string) *BatterStats {
	if b, ok := t.Batters[name]; ok {
		return b
	}
	b := &BatterStats{}
	t.Batters[name] = b
	t.BattingOrder = append(t.BattingOrder, name)
	return b
}

// Pitcher returns the stats row for name, creating it (and recording
// pitching order) on first reference.
func (t *TeamSheet) Pitcher(name string) *PitcherStats {
	if p, ok := t.Pitchers[name]; ok {
		return p
	}
	p := &PitcherStats{}
	t.Pitchers[name] = p
	t.PitchingOrder = append(t.PitchingOrder, name)
	return p
}

// AddRuns adds n runs to the given 1-based inning, growing the per-inning
// column list with zero fill as the game advances.
func (t *TeamSheet) AddRuns(inning, n int) {
	if inning < 1 {
		return
	}
	for len(t.RunsByInning) < inning {
		t.RunsByInning = append(t.RunsByInning, 0)
	}
	t.RunsByInning[inning-1] += n
}

// Clone returns an independent deep copy of the sheet.
func (t *TeamSheet) Clone() *TeamSheet {
	out := &TeamSheet{
		RunsByInning:  append([]int(nil), t.RunsByInning...),
		Hits:          t.Hits,
		Errors:        t.Errors,
		LeftOnBase:    t.LeftOnBase,
		BattingOrder:  append([]string(nil), t.BattingOrder...),
		PitchingOrder: append([]string(nil), t.PitchingOrder...),
		Batters:       make(map[string]*BatterStats, len(t.Batters)),
		Pitchers:      make(map[string]*PitcherStats, len(t.Pitchers)),
	}
	for name, b := range t.Batters {
		copied := *b
		out.Batters[name] = &copied
	}
	for name, p := range t.Pitchers {
		copied := *p
		out.Pitchers[name] = &copied
	}
	return out
}

// BoxScore is the aggregate batting and pitching record for one game.
type BoxScore struct {
	Away *TeamSheet `json:"away"`
	Home *TeamSheet `json:"home"`
}

// NewBoxScore returns an empty box score for both teams.
func NewBoxScore() *BoxScore {
	return &BoxScore{
		Away: NewTeamSheet(),
		Home: NewTeamSheet(),
	}
}

// Clone returns an independent deep copy of the box score.
func (b *BoxScore) Clone() *BoxScore {
	return &BoxScore{
		Away: b.Away.Clone(),
		Home: b.Home.Clone(),
	}
}

// Batting returns the sheet for the team at bat on the given side.
func (b *BoxScore) Batting(side int) *TeamSheet {
	if side == 1 {
		return b.Home
	}
	return b.Away
}

// Fielding returns the sheet for the team in the field on the given side.
func (b *BoxScore) Fielding(side int) *TeamSheet {
	if side == 1 {
		return b.Away
	}
	return b.Home
}
