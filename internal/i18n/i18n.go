// Package i18n resolves the caller's language and renders user-facing messages.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

var (
	// SimplifiedChinese is the default language.
	SimplifiedChinese = language.MustParse("zh-Hans")
	// English is the secondary language.
	English = language.English
)

var supportedTags = []language.Tag{
	SimplifiedChinese,
	English,
}

var tagMatcher = language.NewMatcher(supportedTags)
var supportedTagSet = make(map[string]language.Tag, len(supportedTags))

func init() {
	for _, tag := range supportedTags {
		supportedTagSet[tag.String()] = tag
	}
}

// Default returns the default language tag.
func Default() language.Tag {
	return SimplifiedChinese
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Text renders the message registered under key.
func Text(tag language.Tag, key string) string {
	return Printer(tag).Sprintf(message.Key(key, key))
}

// ResolveTag determines the best language tag for the request.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}

	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := parseTag(langValue); ok {
			return tag
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, confidence := tagMatcher.Match(tags...)
			if confidence != language.No {
				return supportedTags[idx]
			}
		}
	}

	return Default()
}

func parseTag(value string) (language.Tag, bool) {
	parsed, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	if tag, ok := supportedTagSet[parsed.String()]; ok {
		return tag, true
	}
	_, idx, confidence := tagMatcher.Match(parsed)
	if confidence >= language.High {
		return supportedTags[idx], true
	}
	return language.Tag{}, false
}
