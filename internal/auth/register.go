package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/teastore-backend/internal/users"
	"github.com/angelmondragon/teastore-backend/pkg/config"
	"github.com/angelmondragon/teastore-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
	"github.com/angelmondragon/teastore-backend/pkg/security"
)

// RegisterRequest is the self-service sign-up payload.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

// GroupAssigner adds a new user to the default permission group.
type GroupAssigner interface {
	AssignDefaultGroup(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

// RegisterService creates users.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	Groups         GroupAssigner
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	groups      GroupAssigner
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.Groups == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "group assigner required")
	}
	return &registerService{
		db:          params.DB,
		groups:      params.Groups,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// Register creates an active user and joins it to the default group in one
// transaction.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, pkgerrors.Validation("username", i18n.MsgUsernameRequired)
	}
	if req.Password == "" {
		return nil, pkgerrors.Validation("password", i18n.MsgPasswordRequired)
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		if _, err := userRepo.FindByUsername(ctx, username); err == nil {
			return pkgerrors.Validation("username", i18n.MsgUsernameTaken)
		} else if !db.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Username:     username,
			Email:        req.Email,
			PasswordHash: passwordHash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Validation("username", i18n.MsgUsernameTaken)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		if err := s.groups.AssignDefaultGroup(ctx, tx, user.ID); err != nil {
			return err
		}
		created = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
