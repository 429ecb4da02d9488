package conversation

import "strings"

// Intent is the coarse classification of a user utterance.
type Intent string

const (
	IntentEnd     Intent = "end"
	IntentGeneral Intent = "general"
)

// endKeywords are the explicit end-of-conversation signals, matched as
// substrings of the lowercased utterance.
var endKeywords = []string{
	"bye", "thanks", "goodbye", "stop", "end", "quit",
	"that's all", "finished", "no more",
}

const endKeywordThreshold = 1

// ClassifyIntent flags an explicit end-of-conversation signal by counting
// keyword overlap. Pure function, no failure mode.
func ClassifyIntent(utterance string) Intent {
	lower := strings.ToLower(utterance)
	overlap := 0
	for _, kw := range endKeywords {
		if strings.Contains(lower, kw) {
			overlap++
		}
	}
	if overlap >= endKeywordThreshold {
		return IntentEnd
	}
	return IntentGeneral
}

// negativeClosings are the signals that confirm "nothing else" after the
// assistant asked the final-confirmation question.
var negativeClosings = []string{"no", "that's all", "nothing else"}

// isNegativeClosing reports whether the utterance confirms the conversation
// should wrap up.
func isNegativeClosing(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, s := range negativeClosings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
