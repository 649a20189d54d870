package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the languages with a catalog, English first.
var Supported = []language.Tag{language.English, language.Polish}

// Translator negotiates a language from Accept-Language and hands out printers.
type Translator struct {
	tags     []language.Tag
	matcher  language.Matcher
	catalog  catalog.Catalog
	fallback language.Tag
}

// New builds a translator whose fallback is defaultLang (a BCP 47 tag).
func New(defaultLang string) *Translator {
	fallback := language.English
	if tag, err := language.Parse(strings.TrimSpace(defaultLang)); err == nil {
		for _, supported := range Supported {
			if base, _ := tag.Base(); base == mustBase(supported) {
				fallback = supported
			}
		}
	}

	tags := []language.Tag{fallback}
	for _, tag := range Supported {
		if tag != fallback {
			tags = append(tags, tag)
		}
	}

	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, msg := range entries {
			_ = builder.SetString(tag, key, msg)
		}
	}

	return &Translator{
		tags:     tags,
		matcher:  language.NewMatcher(tags),
		catalog:  builder,
		fallback: fallback,
	}
}

func mustBase(tag language.Tag) language.Base {
	base, _ := tag.Base()
	return base
}

// Match picks the best supported language for an Accept-Language header.
func (t *Translator) Match(acceptLanguage string) language.Tag {
	if strings.TrimSpace(acceptLanguage) == "" {
		return t.fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return t.fallback
	}
	_, index, confidence := t.matcher.Match(prefs...)
	if confidence == language.No {
		return t.fallback
	}
	return t.tags[index]
}

// Printer returns a printer for tag backed by the translator's catalog.
func (t *Translator) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(t.catalog))
}

type ctxKey struct{}

var defaultPrinter = New("en").Printer(language.English)

// WithPrinter attaches a request-scoped printer.
func WithPrinter(ctx context.Context, p *message.Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrinterFromContext returns the request printer, or an English one.
func PrinterFromContext(ctx context.Context) *message.Printer {
	if ctx != nil {
		if p, ok := ctx.Value(ctxKey{}).(*message.Printer); ok && p != nil {
			return p
		}
	}
	return defaultPrinter
}

// T translates key for the request in ctx.
func T(ctx context.Context, key string) string {
	return PrinterFromContext(ctx).Sprintf(key)
}

// TranslateDetails translates every value of a field->message map.
func TranslateDetails(ctx context.Context, details map[string]string) map[string]string {
	out := make(map[string]string, len(details))
	for field, msg := range details {
		out[field] = T(ctx, msg)
	}
	return out
}
