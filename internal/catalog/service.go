package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	"github.com/minhvuongle/yenvang-backend/pkg/enums"
	pkgerrors "github.com/minhvuongle/yenvang-backend/pkg/errors"
	"github.com/minhvuongle/yenvang-backend/pkg/pagination"
)

// Service exposes catalog reads to the API layer.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

// ListParams configures product listing.
type ListParams struct {
	Category string
	Limit    int
	Cursor   string
}

// ListResult wraps returned products and the cursor for the next page.
type ListResult struct {
	Items  []models.Product `json:"items"`
	Cursor string           `json:"cursor"`
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, params listParams) ([]models.Product, *pagination.Cursor, error)
}

type service struct {
	repo productLoader
}

// NewService wires catalog dependencies.
func NewService(repo productLoader) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listParams{Limit: pagination.LimitWithBuffer(params.Limit)}

	if params.Category != "" {
		category, err := enums.ParseProductCategory(params.Category)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		query.Category = &category
	}

	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &ListResult{Items: rows, Cursor: cursor}, nil
}
