// Package summarize implements a simple extractive text summarizer used when
// the AI summarization API is unavailable. Sentences are scored on position,
// length and key phrases; the top scorers are returned in original order.
package summarize

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Length preferences accepted by SentenceCount.
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// keyPhrases mark sentences that often carry the point of a text.
var keyPhrases = []string{
	"important", "significant", "key", "main", "primary",
	"central", "essential", "critical", "crucial", "vital",
	"in summary", "to summarize", "in conclusion", "therefore",
	"overall", "ultimately", "finally",
}

type scoredSentence struct {
	sentence string
	score    int
	index    int
}

// Summary returns an extractive summary of text with at most sentenceCount
// sentences. Text that already fits within sentenceCount is returned unchanged.
func Summary(text string, sentenceCount int) string {
	if text == "" {
		return ""
	}
	if sentenceCount < 1 {
		sentenceCount = 1
	}

	sentences := sentencePattern.FindAllString(text, -1)
	if len(sentences) <= sentenceCount {
		return text
	}

	scored := make([]scoredSentence, 0, len(sentences))
	for i, sentence := range sentences {
		scored = append(scored, scoredSentence{
			sentence: strings.TrimSpace(sentence),
			score:    scoreSentence(sentence, i, len(sentences)),
			index:    i,
		})
	}

	// Highest score first; stable so equal scores keep text order.
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	top := scored[:sentenceCount]
	sort.Slice(top, func(a, b int) bool {
		return top[a].index < top[b].index
	})

	parts := make([]string, len(top))
	for i, s := range top {
		parts[i] = s.sentence
	}
	return strings.Join(parts, " ")
}

func scoreSentence(sentence string, index, total int) int {
	score := 0

	// First and last sentences often carry summary information.
	if index < 3 {
		score += 2
	}
	if index > total-4 {
		score++
	}

	// Prefer medium length sentences.
	words := len(strings.Fields(sentence))
	if words > 5 && words < 25 {
		score += 2
	}

	lower := strings.ToLower(sentence)
	for _, phrase := range keyPhrases {
		if strings.Contains(lower, phrase) {
			score += 2
		}
	}

	return score
}

// SentenceCount maps a length preference to the number of sentences the
// summary should keep, proportional to the size of the text.
func SentenceCount(lengthPreference, text string) int {
	total := len(sentencePattern.FindAllString(text, -1))

	switch lengthPreference {
	case LengthShort:
		return max(1, min(2, ceilFrac(total, 0.1)))
	case LengthLong:
		return max(5, ceilFrac(total, 0.3))
	default: // medium
		return max(3, ceilFrac(total, 0.2))
	}
}

func ceilFrac(n int, frac float64) int {
	return int(math.Ceil(float64(n) * frac))
}
