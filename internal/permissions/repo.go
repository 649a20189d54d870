package permissions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/teastore-backend/pkg/db/models"
)

// Repository persists permissions, groups and their grants.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Codenames returns the union of group and direct grants for userID.
func (r *Repository) Codenames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var codenames []string
	err := r.db.WithContext(ctx).Raw(`
SELECT p.codename FROM permissions p
JOIN group_permissions gp ON gp.permission_id = p.id
JOIN user_groups ug ON ug.group_id = gp.group_id
WHERE ug.user_id = ?
UNION
SELECT p.codename FROM permissions p
JOIN user_permissions up ON up.permission_id = p.id
WHERE up.user_id = ?
ORDER BY 1`, userID, userID).Scan(&codenames).Error
	if err != nil {
		return nil, err
	}
	return codenames, nil
}

// EnsurePermission returns the permission with codename, creating it if needed.
func (r *Repository) EnsurePermission(ctx context.Context, codename, name string) (*models.Permission, error) {
	perm := models.Permission{}
	err := r.db.WithContext(ctx).
		Where(models.Permission{Codename: codename}).
		Attrs(models.Permission{Name: name}).
		FirstOrCreate(&perm).Error
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

// EnsureGroup returns the group named name, creating it if needed.
func (r *Repository) EnsureGroup(ctx context.Context, name string) (*models.Group, error) {
	group := models.Group{}
	if err := r.db.WithContext(ctx).Where(models.Group{Name: name}).FirstOrCreate(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// FindPermissions loads permissions by codename.
func (r *Repository) FindPermissions(ctx context.Context, codenames []string) ([]models.Permission, error) {
	var perms []models.Permission
	if len(codenames) == 0 {
		return perms, nil
	}
	if err := r.db.WithContext(ctx).Where("codename IN ?", codenames).Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *Repository) GrantGroup(ctx context.Context, groupID uuid.UUID, permIDs []uuid.UUID) error {
	if len(permIDs) == 0 {
		return nil
	}
	rows := make([]models.GroupPermission, 0, len(permIDs))
	for _, id := range permIDs {
		rows = append(rows, models.GroupPermission{GroupID: groupID, PermissionID: id})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (r *Repository) GrantUser(ctx context.Context, userID uuid.UUID, permIDs []uuid.UUID) error {
	if len(permIDs) == 0 {
		return nil
	}
	rows := make([]models.UserPermission, 0, len(permIDs))
	for _, id := range permIDs {
		rows = append(rows, models.UserPermission{UserID: userID, PermissionID: id})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (r *Repository) AddMember(ctx context.Context, userID, groupID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserGroup{UserID: userID, GroupID: groupID}).Error
}
