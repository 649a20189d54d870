package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/teastore-backend/internal/rules"
	"github.com/angelmondragon/teastore-backend/pkg/db"
	"github.com/angelmondragon/teastore-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
)

// Service manages tea categories.
type Service interface {
	List(ctx context.Context) ([]CategoryDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CategoryDTO, error)
	Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(category), nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	category := &models.TeaCategory{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.validate(ctx, category); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, translateWriteError(err)
	}
	return FromModel(category), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		category.Description = strings.TrimSpace(*input.Description)
	}
	if err := s.validate(ctx, category); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, category); err != nil {
		return nil, translateWriteError(err)
	}
	return FromModel(category), nil
}

// Delete removes the category unless a tea still references it.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountTeas(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category teas")
	}
	if count > 0 {
		return inUse()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if db.IsForeignKeyViolation(err) {
			return inUse()
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.TeaCategory, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, i18n.MsgNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func (s *service) validate(ctx context.Context, category *models.TeaCategory) error {
	problems := rules.Problems{}
	problems.Check(category.Name != "", "name", i18n.MsgCategoryNameMissing)
	problems.Check(!rules.TooLong(category.Name, rules.CategoryNameMax), "name", i18n.MsgFieldTooLong)
	if err := problems.Err(); err != nil {
		return err
	}
	taken, err := s.repo.NameTaken(ctx, category.Name, category.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category name")
	}
	if taken {
		return pkgerrors.Validation("name", i18n.MsgCategoryNameTaken)
	}
	return nil
}

func translateWriteError(err error) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Validation("name", i18n.MsgCategoryNameTaken)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save category")
}

func inUse() error {
	return pkgerrors.New(pkgerrors.CodeReferenced, i18n.MsgCategoryInUse).
		WithDetails(map[string]string{"id": i18n.MsgCategoryInUse})
}
