package session

import "strings"

// Level is the learner's self-reported proficiency.
type Level string

const (
	LevelBeginner         Level = "Beginner"
	LevelIntermediate     Level = "Intermediate"
	LevelAdvanced         Level = "Advanced"
	LevelCompleteBeginner Level = "Complete Beginner"
)

// Levels lists the selectable levels in form order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelCompleteBeginner}

// Valid reports whether l is one of Levels.
func (l Level) Valid() bool {
	for _, v := range Levels {
		if l == v {
			return true
		}
	}
	return false
}

// ParseLevel matches s against Levels case-insensitively.
func ParseLevel(s string) (Level, bool) {
	s = strings.TrimSpace(s)
	for _, v := range Levels {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}
