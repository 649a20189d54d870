package enums

import (
	"fmt"
	"net/http"
)

// PermissionAction is the verb half of a permission codename.
type PermissionAction string

const (
	PermissionActionView   PermissionAction = "view"
	PermissionActionAdd    PermissionAction = "add"
	PermissionActionChange PermissionAction = "change"
	PermissionActionDelete PermissionAction = "delete"
)

var validPermissionActions = []PermissionAction{
	PermissionActionView,
	PermissionActionAdd,
	PermissionActionChange,
	PermissionActionDelete,
}

// PermissionActions lists the four actions every entity is seeded with.
func PermissionActions() []PermissionAction {
	return append([]PermissionAction(nil), validPermissionActions...)
}

// String implements fmt.Stringer.
func (a PermissionAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known PermissionAction.
func (a PermissionAction) IsValid() bool {
	for _, candidate := range validPermissionActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// PermissionActionForMethod maps an HTTP verb to the action it requires.
// ok is false for verbs outside GET/POST/PUT/PATCH/DELETE.
func PermissionActionForMethod(method string) (PermissionAction, bool) {
	switch method {
	case http.MethodGet:
		return PermissionActionView, true
	case http.MethodPost:
		return PermissionActionAdd, true
	case http.MethodPut, http.MethodPatch:
		return PermissionActionChange, true
	case http.MethodDelete:
		return PermissionActionDelete, true
	default:
		return "", false
	}
}

// ParsePermissionAction converts raw input into a PermissionAction.
func ParsePermissionAction(value string) (PermissionAction, error) {
	for _, candidate := range validPermissionActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid permission action %q", value)
}
