package mistakes

import (
	"fmt"
	"strings"

	"github.com/Piyush2510verma/Language/internal/store"
)

// NoMistakesMessage is shown when nothing has been recorded yet.
const NoMistakesMessage = "You haven't made any mistakes yet. Keep practicing!"

var focusAreas = map[string]string{
	"Grammar":       "Work on sentence structure and grammar rules.",
	"Vocabulary":    "Expand your vocabulary with more common phrases.",
	"Pronunciation": "Practice pronunciation with native audio examples.",
}

// Report is the improvement summary built from per-type mistake counts.
type Report struct {
	Counts     []store.TypeCount
	FocusAreas []string
}

// Empty reports whether no mistakes have been recorded.
func (r Report) Empty() bool { return len(r.Counts) == 0 }

// BuildReport derives focus areas from counts, keeping their order.
func BuildReport(counts []store.TypeCount) Report {
	r := Report{Counts: counts}
	seen := make(map[string]bool)
	for _, c := range counts {
		area, ok := focusAreas[c.MistakeType]
		if !ok || seen[area] {
			continue
		}
		seen[area] = true
		r.FocusAreas = append(r.FocusAreas, area)
	}
	return r
}

func (r Report) String() string {
	if r.Empty() {
		return NoMistakesMessage
	}

	var b strings.Builder
	b.WriteString("Mistake Summary & Focus Areas\n")
	for _, c := range r.Counts {
		fmt.Fprintf(&b, "- %s: %d mistake(s)\n", c.MistakeType, c.Count)
	}
	if len(r.FocusAreas) > 0 {
		b.WriteString("\nSuggested Areas for Improvement\n")
		for _, a := range r.FocusAreas {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}
	return b.String()
}

// NoRecordsMessage is shown by the mistakes view when the store is empty.
const NoRecordsMessage = "No mistakes recorded yet."

// FormatRecord renders a stored mistake as "input → correction (×n)".
func FormatRecord(r store.MistakeRecord) string {
	return fmt.Sprintf("%s → %s (×%d)", r.UserInput, r.CorrectAnswer, r.Frequency)
}
