package teas

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

// Service manages the tea catalog.
type Service interface {
	List(ctx context.Context, input ListTeasInput) ([]TeaDTO, error)
	Search(ctx context.Context, name string) ([]TeaDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*TeaDTO, error)
	Create(ctx context.Context, input CreateTeaInput) (*TeaDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTeaInput) (*TeaDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tea repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, input ListTeasInput) ([]TeaDTO, error) {
	rows, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list teas")
	}
	return fromModels(rows), nil
}

// Search returns teas whose name contains name, ignoring case.
func (s *service) Search(ctx context.Context, name string) ([]TeaDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.Validation("name", i18n.MsgSearchNameRequired)
	}
	rows, err := s.repo.SearchByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search teas")
	}
	return fromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*TeaDTO, error) {
	tea, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(tea), nil
}

func (s *service) Create(ctx context.Context, input CreateTeaInput) (*TeaDTO, error) {
	tea := &models.Tea{
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		CategoryID:    input.CategoryID,
		OriginID:      input.OriginID,
		TeaType:       input.TeaType,
		CaffeineLevel: input.CaffeineLevel,
		Price:         input.Price,
		StockQty:      input.StockQty,
		IsActive:      input.IsActive,
	}
	if err := s.validate(ctx, tea); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, tea); err != nil {
		return nil, translateWriteError(err)
	}
	return s.Get(ctx, tea.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateTeaInput) (*TeaDTO, error) {
	tea, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	applyUpdate(tea, input)
	if err := s.validate(ctx, tea); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, tea); err != nil {
		return nil, translateWriteError(err)
	}
	return s.Get(ctx, id)
}

// Delete removes the tea unless an order line references it.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountOrderItems(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count tea order items")
	}
	if count > 0 {
		return inUse()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if db.IsForeignKeyViolation(err) {
			return inUse()
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete tea")
	}
	return nil
}

func applyUpdate(tea *models.Tea, input UpdateTeaInput) {
	if input.Name != nil {
		tea.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		tea.Description = strings.TrimSpace(*input.Description)
	}
	if input.CategoryID != nil {
		tea.CategoryID = *input.CategoryID
		tea.Category = nil
	}
	switch {
	case input.ClearOrigin:
		tea.OriginID = nil
		tea.Origin = nil
	case input.OriginID != nil:
		origin := *input.OriginID
		tea.OriginID = &origin
		tea.Origin = nil
	}
	if input.TeaType != nil {
		tea.TeaType = *input.TeaType
	}
	if input.CaffeineLevel != nil {
		tea.CaffeineLevel = *input.CaffeineLevel
	}
	if input.Price != nil {
		tea.Price = *input.Price
	}
	if input.StockQty != nil {
		tea.StockQty = *input.StockQty
	}
	if input.IsActive != nil {
		tea.IsActive = *input.IsActive
	}
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Tea, error) {
	tea, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, i18n.MsgNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tea")
	}
	return tea, nil
}

func (s *service) validate(ctx context.Context, tea *models.Tea) error {
	problems := rules.Problems{}
	problems.Check(tea.Name != "", "name", i18n.MsgTeaNameRequired)
	problems.Check(rules.Capitalized(tea.Name), "name", i18n.MsgTeaNameCapitalized)
	problems.Check(!rules.TooLong(tea.Name, rules.TeaNameMax), "name", i18n.MsgFieldTooLong)
	problems.Check(rules.MoneyScale(tea.Price), "price", i18n.MsgDecimalPlaces)
	problems.Check(rules.PositivePrice(tea.Price), "price", i18n.MsgPricePositive)
	problems.Check(tea.StockQty >= 0, "stock_qty", i18n.MsgStockNonNegative)
	problems.Check(rules.FitsCount(tea.StockQty), "stock_qty", i18n.MsgValueTooLarge)
	problems.Check(tea.TeaType.IsValid(), "tea_type", i18n.MsgTeaTypeInvalid)
	problems.Check(tea.CaffeineLevel.IsValid(), "caffeine_level", i18n.MsgCaffeineInvalid)

	ok, err := s.repo.CategoryExists(ctx, tea.CategoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category")
	}
	problems.Check(ok, "category_id", i18n.MsgCategoryUnknown)

	if tea.OriginID != nil {
		ok, err := s.repo.OriginExists(ctx, *tea.OriginID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check origin")
		}
		problems.Check(ok, "origin_id", i18n.MsgOriginUnknown)
	}
	return problems.Err()
}

func translateWriteError(err error) error {
	if db.IsForeignKeyViolation(err) {
		return pkgerrors.Validation("category_id", i18n.MsgCategoryUnknown)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save tea")
}

func inUse() error {
	return pkgerrors.New(pkgerrors.CodeReferenced, i18n.MsgTeaInUse).
		WithDetails(map[string]string{"id": i18n.MsgTeaInUse})
}
