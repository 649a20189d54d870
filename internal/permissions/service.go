package permissions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/teastore-backend/pkg/db"
	"github.com/angelmondragon/teastore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
	"github.com/angelmondragon/teastore-backend/pkg/redis"
)

// Cache stores resolved principals between requests.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	PermissionCacheKey(userID string) string
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Resolver turns a user id into a Principal.
type Resolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*Principal, error)
}

// Service resolves principals and manages grants.
type Service struct {
	tx    txRunner
	repo  *Repository
	cache Cache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService builds the permission service. cache may be nil, in which case
// every Resolve reads the database.
func NewService(client *db.Client, cache Cache, ttl time.Duration, logg *logger.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		tx:    client,
		repo:  NewRepository(client.DB()),
		cache: cache,
		ttl:   ttl,
		logg:  logg,
	}, nil
}

// Resolve loads the user's flags and effective permissions.
func (s *Service) Resolve(ctx context.Context, userID uuid.UUID) (*Principal, error) {
	if cached, ok := s.fromCache(ctx, userID); ok {
		return cached, nil
	}

	user, err := s.repo.FindUser(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, i18n.MsgAuthRequired)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	codenames, err := s.repo.Codenames(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load permissions")
	}

	principal := &Principal{
		UserID:      user.ID,
		Username:    user.Username,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		Codenames:   codenames,
	}
	s.toCache(ctx, principal)
	return principal, nil
}

func (s *Service) fromCache(ctx context.Context, userID uuid.UUID) (*Principal, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.PermissionCacheKey(userID.String()))
	if err != nil {
		if !redis.IsNil(err) {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "permissions.cache_read_failed")
		}
		return nil, false
	}
	var principal Principal
	if err := json.Unmarshal([]byte(raw), &principal); err != nil {
		return nil, false
	}
	return &principal, true
}

func (s *Service) toCache(ctx context.Context, principal *Principal) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	payload, err := json.Marshal(principal)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.PermissionCacheKey(principal.UserID.String()), string(payload), s.ttl); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "permissions.cache_write_failed")
	}
}

// Invalidate drops the cached principal for userID.
func (s *Service) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, s.cache.PermissionCacheKey(userID.String()))
}

// EnsureDefaults seeds every entity permission and the default group.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, entity := range Entities() {
			for _, action := range enums.PermissionActions() {
				name := fmt.Sprintf("Can %s %s", action, entityLabels[entity])
				if _, err := repo.EnsurePermission(ctx, Codename(action, entity), name); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed permission")
				}
			}
		}
		if _, err := s.ensureDefaultGroup(ctx, repo); err != nil {
			return err
		}
		return nil
	})
}

func (s *Service) ensureDefaultGroup(ctx context.Context, repo *Repository) (uuid.UUID, error) {
	group, err := repo.EnsureGroup(ctx, DefaultGroup)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ensure default group")
	}
	perms, err := repo.FindPermissions(ctx, DefaultGroupPermissions())
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load default permissions")
	}
	ids := make([]uuid.UUID, 0, len(perms))
	for _, perm := range perms {
		ids = append(ids, perm.ID)
	}
	if err := repo.GrantGroup(ctx, group.ID, ids); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grant default group")
	}
	return group.ID, nil
}

// AssignDefaultGroup adds userID to DefaultGroup inside tx, creating the
// group and its grants on first use.
func (s *Service) AssignDefaultGroup(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	repo := s.repo.WithTx(tx)
	groupID, err := s.ensureDefaultGroup(ctx, repo)
	if err != nil {
		return err
	}
	if err := repo.AddMember(ctx, userID, groupID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "join default group")
	}
	return nil
}

// Grant gives userID the listed permissions directly.
func (s *Service) Grant(ctx context.Context, userID uuid.UUID, codenames ...string) error {
	perms, err := s.repo.FindPermissions(ctx, codenames)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load permissions")
	}
	if len(perms) != len(codenames) {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown permission codename")
	}
	ids := make([]uuid.UUID, 0, len(perms))
	for _, perm := range perms {
		ids = append(ids, perm.ID)
	}
	if err := s.repo.GrantUser(ctx, userID, ids); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grant permissions")
	}
	return s.Invalidate(ctx, userID)
}
