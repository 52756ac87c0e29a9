package shops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oyehq/oye-backend/pkg/db"
	"github.com/oyehq/oye-backend/pkg/db/models"
	"github.com/oyehq/oye-backend/pkg/enums"
	pkgerrors "github.com/oyehq/oye-backend/pkg/errors"
)

type shopRepository interface {
	Create(ctx context.Context, dto CreateShopDTO) (*models.Shop, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	FindByName(ctx context.Context, name string) (*models.Shop, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes shop operations.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateShopInput) (*ShopDTO, error)
	GetByID(ctx context.Context, actorID, shopID uuid.UUID) (*ShopDTO, error)
	ListOwned(ctx context.Context, ownerID uuid.UUID) ([]ShopDTO, error)
	Update(ctx context.Context, actorID, shopID uuid.UUID, input UpdateShopInput) (*ShopDTO, error)
	Delete(ctx context.Context, actorID, shopID uuid.UUID) error
}

type service struct {
	repo shopRepository
}

// NewService builds a shop service with the provided repository.
func NewService(repo shopRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	return &service{repo: repo}, nil
}

// CreateShopInput captures the fields accepted when opening a shop.
type CreateShopInput struct {
	ShopName          string
	Location          *string
	Landmark          *string
	Description       *string
	OperatingHours    *string
	TaxIdentification *string
	BusinessType      enums.BusinessType
	NumberOfEmployees *int
}

// UpdateShopInput captures the allowed shop fields for mutation.
type UpdateShopInput struct {
	ShopName          *string
	Location          *string
	Landmark          *string
	Description       *string
	OperatingHours    *string
	TaxIdentification *string
	BusinessType      *enums.BusinessType
	NumberOfEmployees *int
	IsActive          *bool
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateShopInput) (*ShopDTO, error) {
	name := strings.TrimSpace(input.ShopName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop_name is required")
	}
	if input.BusinessType != "" && !input.BusinessType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid business type")
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "shop name already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check shop name")
	}

	shop, err := s.repo.Create(ctx, CreateShopDTO{
		OwnerID:           ownerID,
		ShopName:          name,
		Location:          input.Location,
		Landmark:          input.Landmark,
		Description:       input.Description,
		OperatingHours:    input.OperatingHours,
		TaxIdentification: input.TaxIdentification,
		BusinessType:      input.BusinessType,
		NumberOfEmployees: input.NumberOfEmployees,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "shops_shop_name_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "shop name already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop")
	}
	return FromModel(shop), nil
}

func (s *service) GetByID(ctx context.Context, actorID, shopID uuid.UUID) (*ShopDTO, error) {
	shop, err := s.loadOwned(ctx, actorID, shopID)
	if err != nil {
		return nil, err
	}
	return FromModel(shop), nil
}

func (s *service) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]ShopDTO, error) {
	shops, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shops")
	}
	out := make([]ShopDTO, 0, len(shops))
	for i := range shops {
		out = append(out, *FromModel(&shops[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, actorID, shopID uuid.UUID, input UpdateShopInput) (*ShopDTO, error) {
	shop, err := s.loadOwned(ctx, actorID, shopID)
	if err != nil {
		return nil, err
	}

	if input.ShopName != nil {
		name := strings.TrimSpace(*input.ShopName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop_name cannot be empty")
		}
		if name != shop.ShopName {
			if existing, err := s.repo.FindByName(ctx, name); err == nil && existing.ID != shop.ID {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "shop name already taken")
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check shop name")
			}
		}
		shop.ShopName = name
	}
	if input.Location != nil {
		shop.Location = cloneStringPtr(input.Location)
	}
	if input.Landmark != nil {
		shop.Landmark = cloneStringPtr(input.Landmark)
	}
	if input.Description != nil {
		shop.Description = cloneStringPtr(input.Description)
	}
	if input.OperatingHours != nil {
		shop.OperatingHours = cloneStringPtr(input.OperatingHours)
	}
	if input.TaxIdentification != nil {
		shop.TaxIdentification = cloneStringPtr(input.TaxIdentification)
	}
	if input.BusinessType != nil {
		if !input.BusinessType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid business type")
		}
		shop.BusinessType = *input.BusinessType
	}
	if input.NumberOfEmployees != nil {
		if *input.NumberOfEmployees < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "number_of_employees cannot be negative")
		}
		count := *input.NumberOfEmployees
		shop.NumberOfEmployees = &count
	}
	if input.IsActive != nil {
		shop.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop")
	}
	return FromModel(shop), nil
}

func (s *service) Delete(ctx context.Context, actorID, shopID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actorID, shopID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, shopID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shop")
	}
	return nil
}

// loadOwned fetches the shop and enforces the ownership rule shared by every
// read and mutation path.
func (s *service) loadOwned(ctx context.Context, actorID, shopID uuid.UUID) (*models.Shop, error) {
	shop, err := s.repo.FindByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	if shop.OwnerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you do not own this shop")
	}
	return shop, nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
