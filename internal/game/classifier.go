package game

import (
	"regexp"
	"strings"
)

// PlayResult is the classification of one play-by-play message. All flags
// are computed independently from the ordered pattern table below and then
// reconciled by the suppression pass; callers must not assume exclusivity.
//
// ScoreCount is not a flag: it is the number of runs this event produces,
// computed once here and shared by both the runner state machine and the
// box-score aggregator so the two can never disagree.
type PlayResult struct {
	StartsInning   bool
	Hit            bool // single, double or triple
	Homer          bool // home run or grand slam
	Walk           bool
	HitByPitch     bool
	Error          bool // fielding or throwing error
	SacFly         bool
	DoublePlay     bool
	Out            bool // ground/line/fly/pop out, suppressed by SacFly
	Strikeout      bool
	FieldersChoice bool // force out or fielder's choice, suppressed by Error
	Ball           bool
	Strike         bool
	Balk           bool
	CaughtStealing bool
	StealsHome     bool
	PitcherEjected bool
	BatterEjected  bool

	ScoreCount int
}

// classification tags, one per pattern table row.
const (
	tagStartsInning = iota
	tagHit
	tagHomer
	tagWalk
	tagHitByPitch
	tagError
	tagSacFly
	tagDoublePlay
	tagOut
	tagStrikeout
	tagFieldersChoice
	tagBall
	tagFoul
	tagCalledStrike
	tagBalk
	tagCaughtStealing
	tagStealsHome
	tagEjected
	tagCount
)

// patternTable is evaluated in order, every row against every message; the
// suppression rules live in Classify, not in pattern ordering.
var patternTable = []struct {
	tag int
	re  *regexp.Regexp
}{
	{tagStartsInning, regexp.MustCompile(`starts the inning on`)},
	{tagHit, regexp.MustCompile(`\b(singles|doubles|triples)\b`)},
	{tagHomer, regexp.MustCompile(`\bhomers\b|\bgrand slam\b`)},
	{tagWalk, regexp.MustCompile(`\bwalks\b`)},
	{tagHitByPitch, regexp.MustCompile(`hit by pitch`)},
	{tagError, regexp.MustCompile(`\b(fielding|throwing) error\b`)},
	{tagSacFly, regexp.MustCompile(`sacrifice fly`)},
	{tagDoublePlay, regexp.MustCompile(`double play`)},
	{tagOut, regexp.MustCompile(`\b(grounds? out|lines? out|flies? out|pops? out)\b`)},
	{tagStrikeout, regexp.MustCompile(`\b(strikes out|struck out)\b`)},
	{tagFieldersChoice, regexp.MustCompile(`force out|fielder's choice`)},
	{tagBall, regexp.MustCompile(`\bBall \d\b`)},
	{tagFoul, regexp.MustCompile(`(?i)foul (ball|tip)`)},
	{tagCalledStrike, regexp.MustCompile(`(?i)strike, (looking|swinging)|called strike`)},
	{tagBalk, regexp.MustCompile(`\bbalks?\b`)},
	{tagCaughtStealing, regexp.MustCompile(`caught stealing`)},
	{tagStealsHome, regexp.MustCompile(`steals home`)},
	{tagEjected, regexp.MustCompile(`ejected`)},
}

// Classify maps a raw message to its play flags. Pure and total: any string
// input yields a result, unmatched messages simply set nothing. Batter and
// pitcher names are only used to attribute ejections.
func Classify(message, batter, pitcher string) PlayResult {
	var matched [tagCount]bool
	for _, p := range patternTable {
		if p.re.MatchString(message) {
			matched[p.tag] = true
		}
	}

	r := PlayResult{
		StartsInning:   matched[tagStartsInning],
		Hit:            matched[tagHit],
		Homer:          matched[tagHomer],
		Walk:           matched[tagWalk],
		HitByPitch:     matched[tagHitByPitch],
		Error:          matched[tagError],
		SacFly:         matched[tagSacFly],
		DoublePlay:     matched[tagDoublePlay],
		Out:            matched[tagOut],
		Strikeout:      matched[tagStrikeout],
		FieldersChoice: matched[tagFieldersChoice],
		Ball:           matched[tagBall],
		Balk:           matched[tagBalk],
		CaughtStealing: matched[tagCaughtStealing],
		StealsHome:     matched[tagStealsHome],
	}

	// Suppression pass: a message can textually match more than one pattern
	// but only one may drive stat attribution. Ties break in this fixed
	// order, not by first-match.
	if r.SacFly {
		r.Out = false
	}
	if r.Error {
		r.FieldersChoice = false
	}

	// A pitch lands in the strike column if the plate appearance resolved on
	// it or the batter offered at it. Composed from the raw matches: a
	// sacrifice fly still suppresses the out flag yet remains a struck ball.
	r.Strike = matched[tagHit] || matched[tagHomer] || matched[tagError] ||
		matched[tagOut] || matched[tagFieldersChoice] || matched[tagStrikeout] ||
		matched[tagFoul] || matched[tagCalledStrike]

	// An ejection naming the batter is the batter's; any other ejection is
	// the pitcher's. Pitcher ejection messages name the outgoing pitcher,
	// while the event's structured pitcher field already carries the
	// replacement, so matching on the pitcher argument would miss.
	if matched[tagEjected] {
		if batter != "" && strings.Contains(message, batter) {
			r.BatterEjected = true
		} else {
			r.PitcherEjected = true
		}
	}

	r.ScoreCount = strings.Count(message, "scores!")
	if r.StealsHome {
		r.ScoreCount++
	}
	if r.Homer {
		r.ScoreCount++
	}

	return r
}
