package game

import "github.com/Echoviax/emmolb/pkg/models"

// chargeable reports whether runs on this play count against the pitcher
// (earned runs) and for the batter (RBI). Batted errors, double plays,
// steals of home and balks credit the defense or chance instead.
func chargeable(res PlayResult) bool {
	return !(res.Error || res.DoublePlay || res.StealsHome || res.Balk)
}

// ballInPlay reports whether the plate appearance resolved, which is what an
// at-bat is charged for. Walks, hit-by-pitches and sacrifice flies are not
// at-bats.
func ballInPlay(res PlayResult) bool {
	return res.Hit || res.Homer || res.Out || res.Strikeout ||
		res.FieldersChoice || res.DoublePlay || res.Error
}

// aggregateTeams applies the per-event team scoreboard deltas.
func aggregateTeams(ev models.PlayEvent, res PlayResult, batting, fielding *models.TeamSheet) {
	if res.Hit || res.Homer {
		batting.Hits++
	}
	if res.Error {
		fielding.Errors++
	}
	if res.ScoreCount > 0 {
		batting.AddRuns(ev.Inning, res.ScoreCount)
	}
}

// aggregateBatter applies the per-event batter deltas.
func aggregateBatter(ev models.PlayEvent, res PlayResult, batting *models.TeamSheet) {
	if ev.Batter == "" || ev.Batter == models.UnknownPlayer {
		return
	}
	b := batting.Batter(ev.Batter)
	if ballInPlay(res) {
		b.AtBats++
	}
	if res.Hit || res.Homer {
		b.Hits++
	}
	if res.Homer {
		b.HomeRuns++
		b.Runs++
	}
	if res.ScoreCount > 0 && chargeable(res) {
		b.RBI += res.ScoreCount
	}
	if res.BatterEjected {
		b.Ejected = true
	}
}

// aggregatePitcher applies the per-event pitcher deltas to the effective
// pitcher row (already resolved through any ejection redirect).
func aggregatePitcher(res PlayResult, p *models.PitcherStats) {
	if p == nil {
		return
	}
	if res.Ball || res.Strike || res.Walk || res.HitByPitch {
		p.PitchCount++
	}
	if res.Strike {
		p.StrikesThrown++
	}
	if res.Hit || res.Homer {
		p.Hits++
	}
	if res.Homer {
		p.EarnedRuns++
	}
	if res.DoublePlay {
		p.OutsRecorded += 2
	} else if res.Out || res.Strikeout || res.FieldersChoice || res.SacFly || res.CaughtStealing {
		p.OutsRecorded++
	}
	if res.Strikeout {
		p.Strikeouts++
	}
	if res.Walk {
		p.Walks++
	}
}
