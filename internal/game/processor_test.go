package game

import (
	"reflect"
	"testing"

	"github.com/Echoviax/emmolb/pkg/models"
)

func intPtr(n int) *int { return &n }

func baseName(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func awayRosters(names ...string) models.Rosters {
	return models.Rosters{Away: names}
}

func TestApplySeedsInningStart(t *testing.T) {
	p := NewProcessor("g1", awayRosters("Alice", "Bob"))

	snap := p.Apply(models.PlayEvent{
		Index:    0,
		Message:  "Alice starts the inning on second.",
		Inning:   1,
		Outs:     intPtr(0),
		OnSecond: true,
	})

	wantQueue := models.RunnerQueue{{Runner: "Alice"}}
	if !reflect.DeepEqual(snap.Queue, wantQueue) {
		t.Errorf("queue = %+v, want %+v", snap.Queue, wantQueue)
	}
	if baseName(snap.Bases.Second) != "Alice" {
		t.Errorf("second = %q, want Alice", baseName(snap.Bases.Second))
	}
	if snap.Bases.First != nil || snap.Bases.Third != nil {
		t.Errorf("first/third should be empty, got %+v", snap.Bases)
	}
}

func TestApplySeedsInRosterOrder(t *testing.T) {
	p := NewProcessor("g1", awayRosters("Alice", "Bob", "Cara"))

	// Textual order is Cara first; roster order must win.
	snap := p.Apply(models.PlayEvent{
		Index:    0,
		Message:  "Cara starts the inning on second. Alice starts the inning on first.",
		Inning:   1,
		Outs:     intPtr(0),
		OnFirst:  true,
		OnSecond: true,
	})

	wantQueue := models.RunnerQueue{{Runner: "Alice"}, {Runner: "Cara"}}
	if !reflect.DeepEqual(snap.Queue, wantQueue) {
		t.Errorf("queue = %+v, want %+v", snap.Queue, wantQueue)
	}
}

func TestApplySingleReachesBase(t *testing.T) {
	p := NewProcessor("g1", models.Rosters{})

	snap := p.Apply(models.PlayEvent{
		Index:   0,
		Message: "Bob singles on a line drive to left field.",
		Inning:  1,
		Outs:    intPtr(0),
		Batter:  "Bob",
		Pitcher: "Carl",
		OnFirst: true,
	})

	wantQueue := models.RunnerQueue{{Runner: "Bob", CreditedPitcher: "Carl"}}
	if !reflect.DeepEqual(snap.Queue, wantQueue) {
		t.Errorf("queue = %+v, want %+v", snap.Queue, wantQueue)
	}

	bob := snap.BoxScore.Away.Batters["Bob"]
	if bob == nil {
		t.Fatal("expected batter row for Bob")
	}
	if bob.AtBats != 1 || bob.Hits != 1 {
		t.Errorf("Bob = %+v, want AtBats=1 Hits=1", bob)
	}
	if snap.BoxScore.Away.Hits != 1 {
		t.Errorf("team hits = %d, want 1", snap.BoxScore.Away.Hits)
	}
}

func TestApplyHomerScoresQueueAndBatter(t *testing.T) {
	p := NewProcessor("g1", models.Rosters{})

	p.Apply(models.PlayEvent{
		Index:   0,
		Message: "Eve singles on a ground ball to right field.",
		Inning:  1,
		Outs:    intPtr(0),
		Batter:  "Eve",
		Pitcher: "Carl",
		OnFirst: true,
	})

	snap := p.Apply(models.PlayEvent{
		Index:   1,
		Message: "Dana homers on a fly ball to center field. <strong>Eve scores!</strong>",
		Inning:  1,
		Outs:    intPtr(0),
		Batter:  "Dana",
		Pitcher: "Frank",
	})

	if len(snap.Queue) != 0 {
		t.Errorf("queue should be cleared after homer, got %+v", snap.Queue)
	}

	away := snap.BoxScore.Away
	if eve := away.Batters["Eve"]; eve == nil || eve.Runs != 1 {
		t.Errorf("Eve = %+v, want Runs=1", eve)
	}
	dana := away.Batters["Dana"]
	if dana == nil || dana.HomeRuns != 1 || dana.Runs != 1 || dana.Hits != 1 || dana.RBI != 2 {
		t.Errorf("Dana = %+v, want HomeRuns=1 Runs=1 Hits=1 RBI=2", dana)
	}

	home := snap.BoxScore.Home
	if carl := home.Pitchers["Carl"]; carl == nil || carl.EarnedRuns != 1 {
		t.Errorf("Carl = %+v, want EarnedRuns=1 (Eve only)", carl)
	}
	if frank := home.Pitchers["Frank"]; frank == nil || frank.EarnedRuns != 1 {
		t.Errorf("Frank = %+v, want EarnedRuns=1 (the homer itself)", frank)
	}
	if got := away.RunsByInning[0]; got != 2 {
		t.Errorf("runs in 1st = %d, want 2", got)
	}
}

func TestApplyUnmatchedMessageOnlyReconcilesBases(t *testing.T) {
	p := NewProcessor("g1", models.Rosters{})

	snap := p.Apply(models.PlayEvent{
		Index:   0,
		Message: "The umpire dusts off home plate.",
		Inning:  1,
		Outs:    intPtr(1),
		OnFirst: true,
	})

	if baseName(snap.Bases.First) != models.UnknownPlayer {
		t.Errorf("first = %q, want Unknown placeholder", baseName(snap.Bases.First))
	}
	if len(snap.BoxScore.Away.Batters) != 0 || len(snap.BoxScore.Home.Pitchers) != 0 {
		t.Errorf("no stat rows expected, got %+v / %+v",
			snap.BoxScore.Away.Batters, snap.BoxScore.Home.Pitchers)
	}
}

func TestApplyDoublePlayExclusions(t *testing.T) {
	p := NewProcessor("g1", models.Rosters{})

	p.Apply(models.PlayEvent{
		Index:   0,
		Message: "Eve singles on a ground ball to right field.",
		Inning:  1,
		Outs:    intPtr(0),
		Batter:  "Eve",
		Pitcher: "Carl",
		OnFirst: true,
	})

	snap := p.Apply(models.PlayEvent{
		Index:   1,
		Message: "Bob grounds into a double play. <strong>Eve scores!</strong>",
		Inning:  1,
		Outs:    intPtr(2),
		Batter:  "Bob",
		Pitcher: "Carl",
	})

	away := snap.BoxScore.Away
	if eve := away.Batters["Eve"]; eve == nil || eve.Runs != 1 {
		t.Errorf("Eve = %+v, want Runs=1", eve)
	}
	bob := away.Batters["Bob"]
	if bob == nil || bob.RBI != 0 || bob.AtBats != 1 {
		t.Errorf("Bob = %+v, want RBI=0 AtBats=1 (double play is excluded)", bob)
	}
	carl := snap.BoxScore.Home.Pitchers["Carl"]
	if carl == nil || carl.EarnedRuns != 0 {
		t.Errorf("Carl = %+v, want EarnedRuns=0 on a double play", carl)
	}
	if carl.OutsRecorded != 2 {
		t.Errorf("Carl.OutsRecorded = %d, want 2", carl.OutsRecorded)
	}
	if got := away.RunsByInning[0]; got != 1 {
		t.Errorf("runs in 1st = %d, want 1 (scoreboard still advances)", got)
	}
}

func TestApplyNamedRunnerOut(t *testing.T) {
	p := NewProcessor("g1", models.Rosters{})

	p.Apply(models.PlayEvent{
		Index:   0,
		Message: "Eve singles on a ground ball to right field.",
		Inning:  1,
		Outs:    intPtr(0),
		Batter:  "Eve",
		Pitcher: "Carl",
		OnFirst: true,
	})

	snap := p.Apply(models.PlayEvent{
		Index:   1,
		Message: "Bob reaches on a fielder's choice. Eve out at 2nd.",
		Inning:  1,
		Outs:    intPtr(1),
		Batter:  "Bob",
		Pitcher: "Carl",
		OnFirst: true,
	})

	wantQueue := models.RunnerQueue{{Runner: "Bob", CreditedPitcher: "Carl"}}
	if !reflect.DeepEqual(snap.Queue, wantQueue) {
		t.Errorf("queue = %+v, want %+v (Eve forced out)", snap.Queue, wantQueue)
	}
}

func TestApplyInningEndCountsLeftOnBase(t *testing.T) {
	p := NewProcessor("g1", models.Rosters{})

	p.Apply(models.PlayEvent{
		Index:   0,
		Message: "Eve singles on a ground ball to right field.",
		Inning:  1,
		Outs:    intPtr(0),
		Batter:  "Eve",
		Pitcher: "Carl",
		OnFirst: true,
	})
	p.Apply(models.PlayEvent{
		Index:    1,
		Message:  "Ball 4. Bob walks.",
		Inning:   1,
		Outs:     intPtr(2),
		Batter:   "Bob",
		Pitcher:  "Carl",
		OnFirst:  true,
		OnSecond: true,
	})

	snap := p.Apply(models.PlayEvent{
		Index:   2,
		Message: "End of the top of the 1st.",
		Inning:  1,
	})

	if snap.BoxScore.Away.LeftOnBase != 2 {
		t.Errorf("left on base = %d, want 2", snap.BoxScore.Away.LeftOnBase)
	}
	if len(snap.Queue) != 0 {
		t.Errorf("queue should be empty after inning end, got %+v", snap.Queue)
	}
	if snap.Bases.First != nil || snap.Bases.Second != nil || snap.Bases.Third != nil {
		t.Errorf("bases should be empty after inning end, got %+v", snap.Bases)
	}
}

func TestApplyPitcherEjectionRedirectsCredit(t *testing.T) {
	p := NewProcessor("g1", models.Rosters{})

	p.Apply(models.PlayEvent{
		Index:   0,
		Message: "Bob grounds out to shortstop.",
		Inning:  1,
		Outs:    intPtr(1),
		Batter:  "Bob",
		Pitcher: "Hank",
	})

	snap := p.Apply(models.PlayEvent{
		Index:   1,
		Message: "Hank has been ejected for arguing the call. Ivan takes the mound.",
		Inning:  1,
		Outs:    intPtr(1),
		Batter:  "Bob",
		Pitcher: "Ivan",
	})

	home := snap.BoxScore.Home
	hank := home.Pitchers["Hank"]
	if hank == nil || !hank.Ejected {
		t.Fatalf("Hank = %+v, want Ejected=true", hank)
	}
	if ivan := home.Pitchers["Ivan"]; ivan == nil || ivan.Ejected {
		t.Errorf("Ivan = %+v, want present and not ejected", ivan)
	}
	wantOrder := []string{"Hank", "Ivan"}
	if !reflect.DeepEqual(home.PitchingOrder, wantOrder) {
		t.Errorf("pitching order = %v, want %v", home.PitchingOrder, wantOrder)
	}
}

// syntheticGame is a short full game used by the replay and conservation
// properties below. Cumulative scores are carried on each event the way the
// upstream feed does it.
func syntheticGame() []models.PlayEvent {
	return []models.PlayEvent{
		{Index: 0, Message: "Alice starts the inning on second.", Inning: 1, Outs: intPtr(0), OnSecond: true},
		{Index: 1, Message: "Bob singles on a line drive to left field.", Inning: 1, Outs: intPtr(0), Batter: "Bob", Pitcher: "Hank", OnFirst: true, OnSecond: true},
		{Index: 2, Message: "Cara homers on a fly ball to left field. <strong>Alice scores!</strong> <strong>Bob scores!</strong>", Inning: 1, Outs: intPtr(0), Batter: "Cara", Pitcher: "Hank", AwayScore: 3},
		{Index: 3, Message: "Dave strikes out swinging.", Inning: 1, Outs: intPtr(1), Batter: "Dave", Pitcher: "Hank", AwayScore: 3},
		{Index: 4, Message: "End of the top of the 1st.", Inning: 1, AwayScore: 3},
		{Index: 5, Message: "Pete grounds out to first base.", Inning: 1, InningSide: 1, Outs: intPtr(1), Batter: "Pete", Pitcher: "Walt", AwayScore: 3},
		{Index: 6, Message: "Quinn flies out on a sacrifice fly to center field.", Inning: 1, InningSide: 1, Outs: intPtr(2), Batter: "Quinn", Pitcher: "Walt", AwayScore: 3},
		{Index: 7, Message: "End of the bottom of the 1st.", Inning: 1, InningSide: 1, AwayScore: 3},
		{Index: 8, Kind: models.KindRecordkeeping, Message: "Game over.", Inning: 2, AwayScore: 3},
	}
}

func TestReplayIsIdempotent(t *testing.T) {
	rosters := awayRosters("Alice", "Bob", "Cara", "Dave")
	log := syntheticGame()

	first := NewProcessor("g1", rosters)
	second := NewProcessor("g1", rosters)

	var lastFirst, lastSecond models.Snapshot
	for _, ev := range log {
		lastFirst = first.Apply(ev)
	}
	for _, ev := range log {
		lastSecond = second.Apply(ev)
	}

	if !reflect.DeepEqual(lastFirst.BoxScore, lastSecond.BoxScore) {
		t.Errorf("box scores diverged between replays:\n%+v\nvs\n%+v",
			lastFirst.BoxScore, lastSecond.BoxScore)
	}
	if !reflect.DeepEqual(lastFirst.Queue, lastSecond.Queue) {
		t.Errorf("queues diverged between replays: %+v vs %+v",
			lastFirst.Queue, lastSecond.Queue)
	}
}

func TestRunConservation(t *testing.T) {
	rosters := awayRosters("Alice", "Bob", "Cara", "Dave")
	log := syntheticGame()

	p := NewProcessor("g1", rosters)
	var last models.Snapshot
	for _, ev := range log {
		last = p.Apply(ev)
	}

	awayRuns := 0
	for _, n := range last.BoxScore.Away.RunsByInning {
		awayRuns += n
	}
	homeRuns := 0
	for _, n := range last.BoxScore.Home.RunsByInning {
		homeRuns += n
	}

	final := log[len(log)-1]
	if awayRuns != final.AwayScore {
		t.Errorf("away scoreboard total = %d, want %d", awayRuns, final.AwayScore)
	}
	if homeRuns != final.HomeScore {
		t.Errorf("home scoreboard total = %d, want %d", homeRuns, final.HomeScore)
	}

	// RBI totals agree too: every run in this game is cleanly chargeable.
	rbi := 0
	for _, b := range last.BoxScore.Away.Batters {
		rbi += b.RBI
	}
	if rbi != final.AwayScore {
		t.Errorf("away RBI total = %d, want %d", rbi, final.AwayScore)
	}
}

func TestQueueBaseConsistency(t *testing.T) {
	rosters := awayRosters("Alice", "Bob", "Cara", "Dave")
	p := NewProcessor("g1", rosters)

	for _, ev := range syntheticGame() {
		snap := p.Apply(ev)

		occupied := 0
		for _, b := range []*string{snap.Bases.First, snap.Bases.Second, snap.Bases.Third} {
			if b != nil {
				occupied++
			}
		}

		res := Classify(ev.Message, ev.Batter, ev.Pitcher)
		if res.Homer || ev.InningEnd() {
			if len(snap.Queue) != 0 || occupied != 0 {
				t.Errorf("event %d: queue=%d occupied=%d, want both 0 after homer/inning end",
					ev.Index, len(snap.Queue), occupied)
			}
			continue
		}
		if len(snap.Queue) != occupied {
			t.Errorf("event %d: queue length %d != occupied bases %d", ev.Index, len(snap.Queue), occupied)
		}
	}
}
