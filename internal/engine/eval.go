// Package engine implements the five-in-a-row move selection engine.
package engine

import (
	"github.com/hailam/gomokuplay/internal/board"
)

// Run pattern values, indexed by (length, open ends).
const (
	FiveValue        = 100_000_000
	OpenFourValue    = 10_000_000
	SimpleFourValue  = 1_000_000
	OpenThreeValue   = 100_000
	BrokenThreeValue = 10_000
	OpenTwoValue     = 1_000
	ClosedTwoValue   = 100
)

// DoubleOpenFourValue is returned when exactly one side has a four that
// cannot be stopped.
const DoubleOpenFourValue = 90_000_000

// Shape bonus weights for the longest run of each side.
const (
	shapeRunWeight     = 500
	shapeOpenEndWeight = 20_000
)

// patternScore returns the table value of a run.
func patternScore(length, openEnds int) int {
	switch {
	case length >= board.WinLength:
		return FiveValue
	case length == 4 && openEnds == 2:
		return OpenFourValue
	case length == 4 && openEnds == 1:
		return SimpleFourValue
	case length == 3 && openEnds == 2:
		return OpenThreeValue
	case length == 3 && openEnds == 1:
		return BrokenThreeValue
	case length == 2 && openEnds == 2:
		return OpenTwoValue
	case length == 2 && openEnds == 1:
		return ClosedTwoValue
	}
	return 0
}

// sideEval is the per-side summary of every run on the board.
type sideEval struct {
	pattern        int
	longest        int
	longestOpen    int
	doubleOpenFour bool
}

func (s sideEval) shapeBonus() int {
	return s.longest*s.longest*s.longest*shapeRunWeight + s.longestOpen*shapeOpenEndWeight
}

func evaluatePlayer(b *board.Board, p board.Player) sideEval {
	var s sideEval
	b.ForEachRun(p, func(r board.Run) {
		open := r.OpenEnds()
		s.pattern += patternScore(r.Length, open)

		if r.Length > s.longest || (r.Length == s.longest && open > s.longestOpen) {
			s.longest = r.Length
			s.longestOpen = open
		}
		if r.Length == 4 && open == 2 {
			s.doubleOpenFour = true
		}
	})
	return s
}

// Evaluate returns the static score of the position from me's point of view.
// The score is rebuilt from the stones on every call.
func Evaluate(b *board.Board, me board.Player) int {
	mine := evaluatePlayer(b, me)
	theirs := evaluatePlayer(b, me.Other())

	if mine.doubleOpenFour && !theirs.doubleOpenFour {
		return DoubleOpenFourValue
	}
	if theirs.doubleOpenFour && !mine.doubleOpenFour {
		return -DoubleOpenFourValue
	}

	return (mine.pattern - theirs.pattern) + (mine.shapeBonus() - theirs.shapeBonus())
}
