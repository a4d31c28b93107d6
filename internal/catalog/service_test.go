package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	"github.com/minhvuongle/yenvang-backend/pkg/enums"
	pkgerrors "github.com/minhvuongle/yenvang-backend/pkg/errors"
	"github.com/minhvuongle/yenvang-backend/pkg/pagination"
)

type fakeLoader struct {
	findFn func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	listFn func(ctx context.Context, params listParams) ([]models.Product, *pagination.Cursor, error)
}

func (f *fakeLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLoader) List(ctx context.Context, params listParams) ([]models.Product, *pagination.Cursor, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params)
	}
	return nil, nil, nil
}

func newServiceWithLoader(t *testing.T, loader productLoader) Service {
	t.Helper()
	svc, err := NewService(loader)
	require.NoError(t, err)
	return svc
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newServiceWithLoader(t, &fakeLoader{})

	_, err := svc.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestGetByIDRequiresID(t *testing.T) {
	svc := newServiceWithLoader(t, &fakeLoader{})

	_, err := svc.GetByID(context.Background(), uuid.Nil)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListRejectsUnknownCategory(t *testing.T) {
	svc := newServiceWithLoader(t, &fakeLoader{})

	_, err := svc.List(context.Background(), ListParams{Category: "hamper"})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListPassesCategoryAndEncodesCursor(t *testing.T) {
	next := pagination.Cursor{CreatedAt: time.Now().UTC(), ID: uuid.New()}
	loader := &fakeLoader{
		listFn: func(ctx context.Context, params listParams) ([]models.Product, *pagination.Cursor, error) {
			require.NotNil(t, params.Category)
			require.Equal(t, enums.ProductCategoryCustom, *params.Category)
			require.Equal(t, pagination.LimitWithBuffer(2), params.Limit)
			return []models.Product{{ID: uuid.New()}, {ID: uuid.New()}}, &next, nil
		},
	}
	svc := newServiceWithLoader(t, loader)

	result, err := svc.List(context.Background(), ListParams{Category: "custom", Limit: 2})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	decoded, err := pagination.ParseCursor(result.Cursor)
	require.NoError(t, err)
	require.Equal(t, next.ID, decoded.ID)
}

func TestListInvalidCursor(t *testing.T) {
	svc := newServiceWithLoader(t, &fakeLoader{})

	_, err := svc.List(context.Background(), ListParams{Cursor: "???"})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
