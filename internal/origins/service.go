package origins

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/teastore-backend/internal/rules"
	"github.com/angelmondragon/teastore-backend/pkg/db"
	"github.com/angelmondragon/teastore-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
)

// Service manages tea origins.
type Service interface {
	List(ctx context.Context, input ListOriginsInput) ([]OriginDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OriginDTO, error)
	Create(ctx context.Context, input CreateOriginInput) (*OriginDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateOriginInput) (*OriginDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("origin repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) List(ctx context.Context, input ListOriginsInput) ([]OriginDTO, error) {
	rows, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list origins")
	}
	out := make([]OriginDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OriginDTO, error) {
	origin, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(origin), nil
}

func (s *service) Create(ctx context.Context, input CreateOriginInput) (*OriginDTO, error) {
	origin := &models.Origin{
		CountryCode: strings.TrimSpace(input.CountryCode),
		Region:      strings.TrimSpace(input.Region),
		FarmName:    strings.TrimSpace(input.FarmName),
		IsOrganic:   input.IsOrganic,
	}
	if err := validate(origin); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, origin); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create origin")
	}
	return FromModel(origin), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateOriginInput) (*OriginDTO, error) {
	origin, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.CountryCode != nil {
		origin.CountryCode = strings.TrimSpace(*input.CountryCode)
	}
	if input.Region != nil {
		origin.Region = strings.TrimSpace(*input.Region)
	}
	if input.FarmName != nil {
		origin.FarmName = strings.TrimSpace(*input.FarmName)
	}
	if input.IsOrganic != nil {
		origin.IsOrganic = *input.IsOrganic
	}
	if err := validate(origin); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, origin); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update origin")
	}
	return FromModel(origin), nil
}

// Delete removes the origin and clears it from every tea that referenced it.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DetachTeas(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete origin")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Origin, error) {
	origin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, i18n.MsgNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load origin")
	}
	return origin, nil
}

func validate(origin *models.Origin) error {
	problems := rules.Problems{}
	problems.Check(rules.CountryCode(origin.CountryCode), "country_code", i18n.MsgCountryCode)
	problems.Check(origin.Region != "", "region", i18n.MsgRegionRequired)
	problems.Check(!rules.TooLong(origin.Region, rules.RegionMax), "region", i18n.MsgFieldTooLong)
	problems.Check(!rules.TooLong(origin.FarmName, rules.FarmNameMax), "farm_name", i18n.MsgFieldTooLong)
	return problems.Err()
}
