package nlp

import (
	"regexp"
	"strings"
)

type Intent string

const (
	IntentCreate  Intent = "create"
	IntentUpdate  Intent = "update"
	IntentDelete  Intent = "delete"
	IntentList    Intent = "list"
	IntentFilter  Intent = "filter"
	IntentGeneral Intent = "general"
)

// intentKeywords is checked in declaration order and the first intent with
// a matching keyword wins. "finish" and "complete" appear under both
// create and update; create is checked first, so "finish the report"
// classifies as create. That precedence is deliberate.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentCreate, []string{
		"create", "add", "new", "make", "finish", "complete", "do", "plan", "schedule",
		"remind me to", "i have to", "have to", "need to", "must", "should", "want to",
		"i want", "i need", "i should", "i must", "i have", "i will", "i'm going to",
	}},
	{IntentUpdate, []string{"update", "change", "modify", "edit", "mark", "done", "complete", "finish"}},
	{IntentDelete, []string{"delete", "remove", "cancel", "drop", "erase"}},
	{IntentList, []string{"list", "show", "display", "get all", "what are", "what's my", "my tasks"}},
	{IntentFilter, []string{"filter", "find", "search", "look for", "high priority", "urgent", "pending", "completed"}},
}

type intentMatcher struct {
	intent Intent
	res    []*regexp.Regexp
}

// intentMatchers holds one whole-word regexp per keyword, in table order.
// Whole-word matching keeps "completed" from hitting create's "complete":
// "mark task 3 as completed" must reach the update row.
var intentMatchers = buildIntentMatchers()

func buildIntentMatchers() []intentMatcher {
	out := make([]intentMatcher, 0, len(intentKeywords))
	for _, ik := range intentKeywords {
		m := intentMatcher{intent: ik.intent}
		for _, kw := range ik.keywords {
			m.res = append(m.res, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
		}
		out = append(out, m)
	}
	return out
}

// Classify maps a user message to an intent by whole-word keyword match on
// the lower-cased text. IntentGeneral is the fallback when nothing matches.
func Classify(input string) Intent {
	lower := strings.ToLower(input)
	for _, ik := range intentMatchers {
		for _, re := range ik.res {
			if re.MatchString(lower) {
				return ik.intent
			}
		}
	}
	return IntentGeneral
}

// creationIndicators is the broader keyword set the general-intent
// fallback re-scans with before giving up on a message. It overlaps the
// create keyword list but is not the same list (it adds bare verbs and
// date words); keeping it separate keeps the fallback behavior intact.
var creationIndicators = []string{
	"add", "create", "new", "finish", "complete", "do", "task", "plan", "schedule",
	"remind me to", "i have to", "have to", "need to", "must", "should", "want to",
	"i want", "i need", "i should", "i must", "i have", "i will", "i'm going to",
	"tomorrow", "today", "next week", "this week", "play", "eat", "buy", "call", "visit",
}

// MentionsCreation reports whether a message that classified as general
// still looks like it wants a task created.
func MentionsCreation(input string) bool {
	lower := strings.ToLower(input)
	for _, kw := range creationIndicators {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
