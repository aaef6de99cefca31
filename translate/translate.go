// Package translate formats user-facing messages for the current locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer *message.Printer
	current language.Tag
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("elfcode: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	SetLanguage(message.MatchLanguage(locales...))
}

// SetLanguage overrides the detected locale.
func SetLanguage(tag language.Tag) {
	current = tag
	printer = message.NewPrinter(tag)
}

// Language returns the locale messages are formatted for.
func Language() language.Tag {
	return current
}

// Parse sets the locale from a BCP 47 tag, ie `en-US`.
func Parse(text string) (err error) {
	tag, err := language.Parse(text)
	if err != nil {
		return
	}

	SetLanguage(tag)

	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
