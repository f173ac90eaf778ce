package assistant

import (
	_ "embed"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

//go:embed answers/lgpd.md
var lgpdAnswer string

//go:embed answers/cdc.md
var cdcAnswer string

type cannedTopic struct {
	keywords []string
	answer   *string
}

var cannedTopics = []cannedTopic{
	{keywords: []string{"lgpd", "proteção de dados"}, answer: &lgpdAnswer},
	{keywords: []string{"cdc", "código de defesa do consumidor"}, answer: &cdcAnswer},
}

var questionCaser = cases.Lower(language.BrazilianPortuguese)

// normalizeQuestion lowercases and composes the question so that "PROTEÇÃO"
// typed with combining marks still matches.
func normalizeQuestion(q string) string {
	return questionCaser.String(norm.NFC.String(strings.TrimSpace(q)))
}

// cannedAnswer returns the predefined answer for well-known topics
func cannedAnswer(question string) (string, bool) {
	q := normalizeQuestion(question)
	for _, topic := range cannedTopics {
		for _, kw := range topic.keywords {
			if strings.Contains(q, kw) {
				return *topic.answer, true
			}
		}
	}
	return "", false
}
