// Package translate formats user-facing messages for the current locale.
//
// The printer is chosen when the package initializes. Packages that build
// sentinel errors from From in their var blocks rely on that: Go initializes
// this package before any importer, so those messages are already localized.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// fallbackLocale is used when the system reports no usable locale. Message
// keys are written in this language.
const fallbackLocale = "en-US"

var (
	printer *message.Printer
	tag     language.Tag
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("chip8: locale lookup failed, using %s: %v", fallbackLocale, err)
	}
	tag = match(locales)
	printer = message.NewPrinter(tag)
}

// match picks the best supported tag for the user's locale list.
func match(locales []string) language.Tag {
	if len(locales) == 0 {
		locales = []string{fallbackLocale}
	}
	return message.MatchLanguage(locales...)
}

// Language reports the locale messages are formatted for.
func Language() string { return tag.String() }

// From formats an en-US Sprintf() style format for the current locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
