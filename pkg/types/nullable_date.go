package types

import (
	"bytes"
	"encoding/json"
	"time"
)

// DateLayout is the calendar date wire format.
const DateLayout = "2006-01-02"

// NullableDate tracks whether a calendar date was present in JSON, so a
// partial update can tell an explicit null from an omitted field.
type NullableDate struct {
	Valid bool
	Value *time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableDate) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	n.Valid = true
	if bytes.Equal(trimmed, []byte("null")) {
		n.Value = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return err
	}
	n.Value = &parsed
	return nil
}
