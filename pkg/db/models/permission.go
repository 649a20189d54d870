package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permission is a single grantable capability such as view_tea.
type Permission struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Codename string    `gorm:"column:codename;size:100;not null;uniqueIndex"`
	Name     string    `gorm:"column:name;size:255;not null"`
}

func (Permission) TableName() string { return "permissions" }

func (p *Permission) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// Group bundles permissions granted to its members.
type Group struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name string    `gorm:"column:name;size:150;not null;uniqueIndex"`
}

func (Group) TableName() string { return "groups" }

func (g *Group) BeforeCreate(*gorm.DB) error {
	ensureID(&g.ID)
	return nil
}

// GroupPermission links a group to one of its permissions.
type GroupPermission struct {
	GroupID      uuid.UUID   `gorm:"column:group_id;type:uuid;primaryKey"`
	PermissionID uuid.UUID   `gorm:"column:permission_id;type:uuid;primaryKey"`
	Group        *Group      `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	Permission   *Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

func (GroupPermission) TableName() string { return "group_permissions" }

// UserGroup records group membership.
type UserGroup struct {
	UserID  uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	GroupID uuid.UUID `gorm:"column:group_id;type:uuid;primaryKey"`
	User    *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Group   *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

func (UserGroup) TableName() string { return "user_groups" }

// UserPermission grants a permission directly to a user.
type UserPermission struct {
	UserID       uuid.UUID   `gorm:"column:user_id;type:uuid;primaryKey"`
	PermissionID uuid.UUID   `gorm:"column:permission_id;type:uuid;primaryKey"`
	User         *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Permission   *Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

func (UserPermission) TableName() string { return "user_permissions" }
