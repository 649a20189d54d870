package permissions

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/teastore-backend/pkg/enums"
)

// Entity names used in permission codenames.
const (
	EntityTeaCategory = "teacategory"
	EntityOrigin      = "origin"
	EntityTea         = "tea"
	EntityOrder       = "order"
	EntityOrderItem   = "orderitem"
)

// DefaultGroup is the group every self-registered user joins.
const DefaultGroup = "TeaStoreUser"

var entityLabels = map[string]string{
	EntityTeaCategory: "tea category",
	EntityOrigin:      "origin",
	EntityTea:         "tea",
	EntityOrder:       "order",
	EntityOrderItem:   "order item",
}

// Entities lists every entity that carries permissions.
func Entities() []string {
	return []string{EntityTeaCategory, EntityOrigin, EntityTea, EntityOrder, EntityOrderItem}
}

// Codename composes an action and entity into a key such as view_tea.
func Codename(action enums.PermissionAction, entity string) string {
	return action.String() + "_" + entity
}

// RequiredPermission maps a request method on entity to the codename it needs.
// ok is false when the method has no permission action.
func RequiredPermission(method, entity string) (string, bool) {
	action, ok := enums.PermissionActionForMethod(method)
	if !ok {
		return "", false
	}
	return Codename(action, entity), true
}

// DefaultGroupPermissions is what DefaultGroup grants: read access to the
// catalog plus placing and reading orders.
func DefaultGroupPermissions() []string {
	return []string{
		Codename(enums.PermissionActionView, EntityTeaCategory),
		Codename(enums.PermissionActionView, EntityOrigin),
		Codename(enums.PermissionActionView, EntityTea),
		Codename(enums.PermissionActionAdd, EntityOrder),
		Codename(enums.PermissionActionView, EntityOrder),
		Codename(enums.PermissionActionAdd, EntityOrderItem),
		Codename(enums.PermissionActionView, EntityOrderItem),
	}
}

// Principal is the authenticated caller with its resolved permission set.
type Principal struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	Codenames   []string  `json:"codenames"`
}

// Has reports whether the principal holds codename. Superusers hold every
// permission, inactive users hold none.
func (p Principal) Has(codename string) bool {
	if !p.IsActive {
		return false
	}
	if p.IsSuperuser {
		return true
	}
	for _, candidate := range p.Codenames {
		if candidate == codename {
			return true
		}
	}
	return false
}

// IsPrivileged reports whether the principal may act on rows owned by others.
func (p Principal) IsPrivileged() bool {
	return p.IsActive && (p.IsStaff || p.IsSuperuser)
}

// Owns reports whether ownerID is the principal.
func (p Principal) Owns(ownerID uuid.UUID) bool {
	return p.UserID == ownerID
}

// CanSee reports whether a row owned by ownerID is visible to the principal.
func (p Principal) CanSee(ownerID uuid.UUID) bool {
	return p.IsPrivileged() || p.Owns(ownerID)
}
