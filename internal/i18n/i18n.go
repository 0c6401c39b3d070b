// Package i18n holds the console's Spanish and English message catalog.
//
// Message keys are the English source strings; Spanish is the default language
// because the CRM and its operators are Spanish-speaking.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supported = []language.Tag{language.Spanish, language.English}
	matcher   = language.NewMatcher(supported)
)

// Default returns the fallback language tag
func Default() language.Tag {
	return supported[0]
}

// Supported returns the languages the catalog has messages for
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Match picks the best supported tag for the given preferences. Each preference may be
// a tag ("en-GB") or an Accept-Language header value.
func Match(preferences ...string) language.Tag {
	var tags []language.Tag
	for _, pref := range preferences {
		pref = strings.TrimSpace(pref)
		if pref == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return Default()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supported[index]
}

// Printer returns a message printer for tag
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
