package game

import (
	"time"

	"github.com/Echoviax/emmolb/pkg/models"
)

// Processor replays one game's ordered event log into base occupancy and a
// box score. It is a pure projection: feeding the same log through a fresh
// Processor always yields identical output. Events must be applied in
// ascending index order by a single caller.
type Processor struct {
	gameID  string
	rosters models.Rosters

	box      *models.BoxScore
	queue    models.RunnerQueue
	complete bool
}

// NewProcessor creates an empty projection for one game.
func NewProcessor(gameID string, rosters models.Rosters) *Processor {
	return &Processor{
		gameID:  gameID,
		rosters: rosters,
		box:     models.NewBoxScore(),
	}
}

// Apply processes one event and returns the resulting game state projection.
func (p *Processor) Apply(ev models.PlayEvent) models.Snapshot {
	res := Classify(ev.Message, ev.Batter, ev.Pitcher)

	batting := p.box.Batting(ev.InningSide)
	fielding := p.box.Fielding(ev.InningSide)

	pitcherName, pitcherRow := p.effectivePitcher(fielding, ev.Pitcher, res.PitcherEjected)

	// Scoring and stat attribution form one atomic unit: the dequeue below
	// and the aggregation read the same ScoreCount and the same queue-front
	// order, so totals cannot diverge from displayed base state.
	p.scoreRunners(res, batting, fielding)
	aggregateTeams(ev, res, batting, fielding)
	aggregateBatter(ev, res, batting)
	aggregatePitcher(res, pitcherRow)

	if res.StartsInning {
		p.queue = seedRunners(p.queue, ev.Message, p.roster(ev.InningSide))
	}

	if res.Hit || res.Walk || res.HitByPitch || res.Error || res.FieldersChoice {
		p.queue = pushBatter(p.queue, ev.Batter, pitcherName, res.Error)
	}

	p.queue = removeRetired(p.queue, ev.Message)

	if ev.InningEnd() {
		batting.LeftOnBase += len(p.queue)
	}

	// A home run clears the bases by rule; an inning boundary cannot carry
	// runners forward.
	if res.Homer || ev.InningEnd() {
		p.queue = nil
	}

	if ev.IsTerminal() {
		p.complete = true
	}

	return models.Snapshot{
		GameID:     p.gameID,
		LastIndex:  ev.Index,
		Inning:     ev.Inning,
		InningSide: ev.InningSide,
		AwayScore:  ev.AwayScore,
		HomeScore:  ev.HomeScore,
		Bases:      assignBases(p.queue, ev),
		BoxScore:   p.box.Clone(),
		Queue:      p.queue.Clone(),
		Complete:   p.complete,
		UpdatedAt:  time.Now().UTC(),
	}
}

// Queue returns the current runner queue.
func (p *Processor) Queue() models.RunnerQueue {
	return p.queue.Clone()
}

// BoxScore returns a copy of the current box score.
func (p *Processor) BoxScore() *models.BoxScore {
	return p.box.Clone()
}

// scoreRunners removes ScoreCount runners from the front of the queue,
// crediting each known runner a run and, on a cleanly chargeable play, each
// carried pitcher an earned run. A scorer the queue cannot supply (the
// batter's own home run, an unknown runner) is skipped for attribution
// while the team's run total still advances via the scoreboard.
func (p *Processor) scoreRunners(res PlayResult, batting, fielding *models.TeamSheet) {
	clean := chargeable(res)
	for i := 0; i < res.ScoreCount && len(p.queue) > 0; i++ {
		runner := p.queue[0]
		p.queue = p.queue[1:]
		if runner.Runner == models.UnknownPlayer || runner.Runner == "" {
			continue
		}
		batting.Batter(runner.Runner).Runs++
		if runner.CreditedPitcher != "" && clean {
			fielding.Pitcher(runner.CreditedPitcher).EarnedRuns++
		}
	}
}

// effectivePitcher resolves which pitcher the event's stats belong to. On an
// ejection the event already names the replacement, who has not yet thrown a
// pitch, so crediting is redirected to the preceding name in the pitching
// order and that outgoing pitcher is marked ejected.
func (p *Processor) effectivePitcher(fielding *models.TeamSheet, named string, ejected bool) (string, *models.PitcherStats) {
	if named != "" && named != models.UnknownPlayer {
		fielding.Pitcher(named)
	}
	if ejected {
		order := fielding.PitchingOrder
		idx := len(order) - 1
		if idx >= 0 && order[idx] == named && idx > 0 {
			idx--
		}
		if idx >= 0 {
			outgoing := order[idx]
			row := fielding.Pitchers[outgoing]
			row.Ejected = true
			return outgoing, row
		}
	}
	if named == "" || named == models.UnknownPlayer {
		return "", nil
	}
	return named, fielding.Pitchers[named]
}

func (p *Processor) roster(side int) []string {
	if side == 1 {
		return p.rosters.Home
	}
	return p.rosters.Away
}
