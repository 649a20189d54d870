package enums

import "fmt"

// TeaType classifies a tea by processing style.
type TeaType string

const (
	TeaTypeBlack  TeaType = "black"
	TeaTypeGreen  TeaType = "green"
	TeaTypeWhite  TeaType = "white"
	TeaTypeOolong TeaType = "oolong"
	TeaTypeHerbal TeaType = "herbal"
	TeaTypePuerh  TeaType = "puerh"
)

var validTeaTypes = []TeaType{
	TeaTypeBlack,
	TeaTypeGreen,
	TeaTypeWhite,
	TeaTypeOolong,
	TeaTypeHerbal,
	TeaTypePuerh,
}

// TeaTypes lists every known tea type in display order.
func TeaTypes() []TeaType {
	return append([]TeaType(nil), validTeaTypes...)
}

// String implements fmt.Stringer.
func (t TeaType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TeaType.
func (t TeaType) IsValid() bool {
	for _, candidate := range validTeaTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTeaType converts raw input into a TeaType.
func ParseTeaType(value string) (TeaType, error) {
	for _, candidate := range validTeaTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tea type %q", value)
}

// CaffeineLevel describes how much caffeine a tea carries.
type CaffeineLevel string

const (
	CaffeineLevelNone   CaffeineLevel = "none"
	CaffeineLevelLow    CaffeineLevel = "low"
	CaffeineLevelMedium CaffeineLevel = "medium"
	CaffeineLevelHigh   CaffeineLevel = "high"
)

var validCaffeineLevels = []CaffeineLevel{
	CaffeineLevelNone,
	CaffeineLevelLow,
	CaffeineLevelMedium,
	CaffeineLevelHigh,
}

// CaffeineLevels lists every known caffeine level in display order.
func CaffeineLevels() []CaffeineLevel {
	return append([]CaffeineLevel(nil), validCaffeineLevels...)
}

// String implements fmt.Stringer.
func (c CaffeineLevel) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CaffeineLevel.
func (c CaffeineLevel) IsValid() bool {
	for _, candidate := range validCaffeineLevels {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCaffeineLevel converts raw input into a CaffeineLevel.
func ParseCaffeineLevel(value string) (CaffeineLevel, error) {
	for _, candidate := range validCaffeineLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid caffeine level %q", value)
}

var teaTypeLabels = map[TeaType]string{
	TeaTypeBlack:  "Black",
	TeaTypeGreen:  "Green",
	TeaTypeWhite:  "White",
	TeaTypeOolong: "Oolong",
	TeaTypeHerbal: "Herbal",
	TeaTypePuerh:  "Pu-erh",
}

// Label is the English display name, also used as the translation key.
func (t TeaType) Label() string {
	if label, ok := teaTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

var caffeineLabels = map[CaffeineLevel]string{
	CaffeineLevelNone:   "None",
	CaffeineLevelLow:    "Low",
	CaffeineLevelMedium: "Medium",
	CaffeineLevelHigh:   "High",
}

func (c CaffeineLevel) Label() string {
	if label, ok := caffeineLabels[c]; ok {
		return label
	}
	return string(c)
}
