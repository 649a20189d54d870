package pages

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/teastore-backend/internal/rules"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
)

// formReader pulls typed values out of a posted form, recording a problem
// for every field that does not parse.
type formReader struct {
	values   url.Values
	problems rules.Problems
}

func readForm(r *http.Request) (*formReader, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &formReader{values: r.PostForm, problems: rules.Problems{}}, nil
}

func (f *formReader) text(field string) string {
	return strings.TrimSpace(f.values.Get(field))
}

func (f *formReader) checkbox(field string) bool {
	switch strings.ToLower(f.text(field)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func (f *formReader) uuid(field string, required bool) *uuid.UUID {
	raw := f.text(field)
	if raw == "" {
		if required {
			f.problems.Add(field, i18n.MsgFieldRequired)
		}
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		f.problems.Add(field, i18n.MsgFieldInvalid)
		return nil
	}
	return &id
}

func (f *formReader) decimal(field string) decimal.Decimal {
	raw := strings.ReplaceAll(f.text(field), ",", ".")
	if raw == "" {
		f.problems.Add(field, i18n.MsgFieldRequired)
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		f.problems.Add(field, i18n.MsgFieldInvalid)
		return decimal.Zero
	}
	return d
}

func (f *formReader) integer(field string) int {
	raw := f.text(field)
	if raw == "" {
		f.problems.Add(field, i18n.MsgFieldRequired)
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f.problems.Add(field, i18n.MsgFieldInvalid)
		return 0
	}
	return n
}

func (f *formReader) date(field string) *time.Time {
	raw := f.text(field)
	if raw == "" {
		return nil
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		f.problems.Add(field, i18n.MsgFieldInvalid)
		return nil
	}
	return &day
}

func (f *formReader) err() error {
	return f.problems.Err()
}
