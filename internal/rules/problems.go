package rules

import (
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
)

// Problems collects per-field validation messages. The first message for a
// field wins.
type Problems map[string]string

func (p Problems) Add(field, message string) {
	if _, exists := p[field]; exists {
		return
	}
	p[field] = message
}

// Check adds message for field when ok is false.
func (p Problems) Check(ok bool, field, message string) {
	if !ok {
		p.Add(field, message)
	}
}

// Err returns a validation error carrying every problem, or nil.
func (p Problems) Err() error {
	if len(p) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, i18n.MsgValidationFailed).WithDetails(map[string]string(p))
}
