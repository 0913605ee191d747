package game

import (
	"strings"

	"github.com/Echoviax/emmolb/pkg/models"
)

// seedRunners pushes every roster player the message places on base at the
// start of an inning. Names are pushed in roster order, not textual order,
// and carry no pitcher credit: they reached base by rule, not by a pitch.
func seedRunners(q models.RunnerQueue, message string, roster []string) models.RunnerQueue {
	for _, name := range roster {
		if name == "" {
			continue
		}
		if strings.Contains(message, name+" starts the inning on") {
			q = append(q, models.Baserunner{Runner: name})
		}
	}
	return q
}

// pushBatter appends the batter to the back of the queue after a reach-base
// play. An error play never earns the pitcher a run credit for that runner.
func pushBatter(q models.RunnerQueue, batter, pitcher string, onError bool) models.RunnerQueue {
	if batter == "" {
		batter = models.UnknownPlayer
	}
	runner := models.Baserunner{Runner: batter}
	if !onError {
		runner.CreditedPitcher = pitcher
	}
	return append(q, runner)
}

// runnerRetired reports whether the message puts the named runner out or
// takes them off the bases by stealing home.
func runnerRetired(message, name string) bool {
	if name == "" || name == models.UnknownPlayer {
		return false
	}
	return strings.Contains(message, name+" out at") ||
		strings.Contains(message, name+" is caught stealing") ||
		strings.Contains(message, name+" steals home")
}

// removeRetired splices out the first queue entry matching each retired
// runner name, at most one removal per name. Names not present in the queue
// are ignored: that is how outs on trailing runners are expressed.
func removeRetired(q models.RunnerQueue, message string) models.RunnerQueue {
	var kept models.RunnerQueue
	taken := make(map[string]bool)
	for _, r := range q {
		if !taken[r.Runner] && runnerRetired(message, r.Runner) {
			taken[r.Runner] = true
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// assignBases derives the visible first/second/third occupancy. Upstream's
// occupancy booleans decide which slots are populated; the queue front
// supplies the names, third then second then first. A slot the booleans
// claim but the queue cannot fill gets the Unknown placeholder.
func assignBases(q models.RunnerQueue, ev models.PlayEvent) models.Bases {
	var bases models.Bases
	i := 0
	next := func() *string {
		name := models.UnknownPlayer
		if i < len(q) {
			name = q[i].Runner
		}
		i++
		return &name
	}
	if ev.OnThird {
		bases.Third = next()
	}
	if ev.OnSecond {
		bases.Second = next()
	}
	if ev.OnFirst {
		bases.First = next()
	}
	return bases
}
