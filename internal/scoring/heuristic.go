// Package scoring implements the keyword heuristic that assigns a provisional
// 0-10 score to a free-text answer. It is a pure function: no state, no I/O,
// identical inputs always produce identical output. Scores are provisional by
// design; the admin confirms or overrides them at grading time.
package scoring

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/model"
)

// minAnswerLength is the trimmed character count below which an answer is not
// analyzed at all.
const minAnswerLength = 20

// Result carries the provisional score together with a human-readable
// explanation the reviewer sees next to the answer.
type Result struct {
	Score     int
	Rationale string
}

// Evaluate scores one answer against the term table for topic.
//
// Decision table, first match wins:
//
//	excellent >= 3 and words >= 80  -> 8  "Strong technical content"
//	excellent >= 2 and words >= 50  -> 7  "Good technical knowledge"
//	excellent >= 1 or  good >= 3    -> 6  "Adequate technical understanding"
//	good >= 2 and words >= 30       -> 5  "Basic technical knowledge"
//	otherwise                       -> 4  "Limited technical content"
//
// A methodology term adds 1, a structure marker adds 0.5; the sum is rounded
// half away from zero and clamped to [0,10]. Note the third rule carries no
// word-count floor: a single excellent term in a 20-character answer still
// rates 6. That lenience is a known property of the heuristic, kept as is.
func Evaluate(question, answer string, topic model.Topic) Result {
	if utf8.RuneCountInString(strings.TrimSpace(answer)) < minAnswerLength {
		return Result{Score: 0, Rationale: "Answer too short or empty"}
	}

	answerLower := strings.ToLower(answer)
	c := criteriaFor(topic)

	excellentCount := countTerms(answerLower, c.excellentTerms)
	goodCount := countTerms(answerLower, c.goodTerms)
	methodologyCount := countTerms(answerLower, c.methodologyTerms)

	wordCount := len(strings.Fields(answer))
	hasStructure := countTerms(answerLower, structureMarkers) > 0

	var base float64
	var rationale string
	switch {
	case excellentCount >= 3 && wordCount >= 80:
		base = 8
		rationale = fmt.Sprintf("Strong technical content (%d advanced terms)", excellentCount)
	case excellentCount >= 2 && wordCount >= 50:
		base = 7
		rationale = fmt.Sprintf("Good technical knowledge (%d advanced terms)", excellentCount)
	case excellentCount >= 1 || goodCount >= 3:
		base = 6
		rationale = "Adequate technical understanding"
	case goodCount >= 2 && wordCount >= 30:
		base = 5
		rationale = "Basic technical knowledge"
	default:
		base = 4
		rationale = "Limited technical content"
	}

	if methodologyCount >= 1 {
		base++
		rationale += " + methodology"
	}
	if hasStructure {
		base += 0.5
		rationale += " + structured"
	}

	score := int(math.Round(base))
	if score > 10 {
		score = 10
	}
	if score < 0 {
		score = 0
	}
	rationale += fmt.Sprintf(" (%d words)", wordCount)

	return Result{Score: score, Rationale: rationale}
}

// countTerms counts how many of terms appear in s at least once.
func countTerms(s string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(s, term) {
			n++
		}
	}
	return n
}
