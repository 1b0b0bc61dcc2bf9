package i18n

import (
	"chat-rooms/contract"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var _ contract.Localizer = (*Localizer)(nil)

// Localizer prints messages of one locale, falling back to BaseLocale
// and finally to the key itself.
type Localizer struct {
	bundle   *Bundle
	locale   string
	printer  *message.Printer
	fallback *message.Printer
}

func NewLocalizer(bundle *Bundle, locale string) (*Localizer, error) {
	if !bundle.HasLocale(locale) {
		locale = BaseLocale
	}
	builder, err := bundle.Catalog()
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Localizer{
		bundle:   bundle,
		locale:   locale,
		printer:  message.NewPrinter(tag, message.Catalog(builder)),
		fallback: message.NewPrinter(language.MustParse(BaseLocale), message.Catalog(builder)),
	}, nil
}

func (l *Localizer) Locale() string {
	return l.locale
}

func (l *Localizer) Text(key string, args ...any) string {
	switch {
	case l.bundle.Has(l.locale, key):
		return l.printer.Sprintf(key, args...)
	case l.bundle.Has(BaseLocale, key):
		return l.fallback.Sprintf(key, args...)
	default:
		return key
	}
}
