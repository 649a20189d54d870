package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatchNegotiatesSupportedLanguage(t *testing.T) {
	tr := New("en")

	assert.Equal(t, language.Polish, tr.Match("pl-PL,pl;q=0.9,en;q=0.8"))
	assert.Equal(t, language.English, tr.Match("en-GB"))
	assert.Equal(t, language.English, tr.Match(""))
	assert.Equal(t, language.English, tr.Match("not a header;;;"))
}

func TestMatchFallsBackToDefaultLanguage(t *testing.T) {
	tr := New("pl")
	assert.Equal(t, language.Polish, tr.Match(""))
	assert.Equal(t, language.English, tr.Match("en"))
}

func TestPrinterTranslatesForbidden(t *testing.T) {
	tr := New("en")

	pl := WithPrinter(context.Background(), tr.Printer(language.Polish))
	assert.Equal(t, "Brak uprawnień do tej operacji.", T(pl, MsgForbidden))

	en := WithPrinter(context.Background(), tr.Printer(language.English))
	assert.Equal(t, MsgForbidden, T(en, MsgForbidden))
}

func TestTWithoutPrinterUsesEnglish(t *testing.T) {
	assert.Equal(t, MsgPricePositive, T(context.Background(), MsgPricePositive))
}

func TestTranslateDetails(t *testing.T) {
	tr := New("pl")
	ctx := WithPrinter(context.Background(), tr.Printer(language.Polish))

	got := TranslateDetails(ctx, map[string]string{
		"price":     MsgPricePositive,
		"stock_qty": MsgStockNonNegative,
	})
	assert.Equal(t, "Cena musi być większa od 0.", got["price"])
	assert.Equal(t, "Stan magazynowy nie może być ujemny.", got["stock_qty"])
}
