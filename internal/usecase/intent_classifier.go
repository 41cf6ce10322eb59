package usecase

import (
	"regexp"
	"strings"
)

// Intent labels the cheap pre-classification of a question.
type Intent string

const (
	// IntentGreeting short-circuits the pipeline with a canned reply.
	IntentGreeting Intent = "greeting"
	// IntentCampus marks a question that mentions known university terms.
	IntentCampus Intent = "campus"
	// IntentUnknown is everything else; it still goes through retrieval,
	// since a missing keyword does not prove the question is off-topic.
	IntentUnknown Intent = "unknown"
)

// greetingMaxTokens caps how long a message can be and still count as a
// greeting; a long message that merely contains "hola" is not small talk.
const greetingMaxTokens = 8

var greetingRe = regexp.MustCompile(`(?i)(^|[^\p{L}])(hola|buen[oa]s|qué tal|como estas|¿cómo estás|hi|hello)($|[^\p{L}])`)

var campusTokens = []string{
	"uvg", "altiplano", "campus sur", "campus central", "admisiones",
	"carrera", "inscripción", "beca", "arancel", "pensum", "malla",
	"calendario", "facultad", "laboratorio", "crea", "makerspace",
}

// ClassifyIntent labels a question from static tables. Pure function; empty
// or whitespace-only input is unknown and handled upstream.
func ClassifyIntent(question string) Intent {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return IntentUnknown
	}
	if greetingRe.MatchString(q) && len(strings.Fields(q)) <= greetingMaxTokens {
		return IntentGreeting
	}
	for _, token := range campusTokens {
		if strings.Contains(q, token) {
			return IntentCampus
		}
	}
	return IntentUnknown
}
