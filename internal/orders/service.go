package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/minhvuongle/yenvang-backend/internal/cart"
	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	pkgerrors "github.com/minhvuongle/yenvang-backend/pkg/errors"
	"github.com/minhvuongle/yenvang-backend/pkg/logger"
	"github.com/minhvuongle/yenvang-backend/pkg/metrics"
)

// Notifier announces a created order. Implementations must never fail the
// order flow; the return value only reports whether the announcement went
// out.
type Notifier interface {
	NotifyOrder(ctx context.Context, order *models.Order) bool
}

type orderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByPhone(ctx context.Context, phone string) ([]models.Order, error)
}

// Service exposes order creation and lookup.
type Service interface {
	CreateFromCart(ctx context.Context, form OrderForm, items []cart.LineItem) (*models.Order, error)
	CreateDirect(ctx context.Context, form OrderForm, item cart.LineItem) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByPhone(ctx context.Context, phone string) ([]models.Order, error)
	FlushNotifications()
}

type service struct {
	repo          orderStore
	notifier      Notifier
	submitTimeout time.Duration
	logg          *logger.Logger
	metrics       *metrics.StorefrontMetrics
	now           func() time.Time

	notifyWait sync.WaitGroup
}

// NewService builds an order service. notifier may be nil when no
// notification sink is configured.
func NewService(repo orderStore, notifier Notifier, submitTimeout time.Duration, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if submitTimeout <= 0 {
		return nil, fmt.Errorf("submit timeout must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:          repo,
		notifier:      notifier,
		submitTimeout: submitTimeout,
		logg:          logg,
		metrics:       m,
		now:           time.Now,
	}, nil
}

// CreateFromCart persists an order assembled from the session's cart lines.
func (s *service) CreateFromCart(ctx context.Context, form OrderForm, items []cart.LineItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	return s.create(ctx, "cart", form, items)
}

// CreateDirect persists a single-item "buy now" order.
func (s *service) CreateDirect(ctx context.Context, form OrderForm, item cart.LineItem) (*models.Order, error) {
	return s.create(ctx, "direct", form, []cart.LineItem{item})
}

func (s *service) create(ctx context.Context, source string, form OrderForm, items []cart.LineItem) (*models.Order, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
	}

	order := AssembleFromCart(form, items, s.now())

	submitCtx, cancel := context.WithTimeout(ctx, s.submitTimeout)
	defer cancel()
	if err := s.repo.Create(submitCtx, order); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order submission timed out")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to persist order")
	}

	s.metrics.IncOrderCreated(source)

	logCtx := s.logg.WithOrderID(ctx, order.ID)
	s.logg.Info(logCtx, "order created")
	s.notifyAsync(order)

	return order, nil
}

// notifyAsync announces the order in the background. The notifier carries its
// own timeout and failure accounting; a miss is logged here and nothing more.
func (s *service) notifyAsync(order *models.Order) {
	if s.notifier == nil {
		return
	}
	logCtx := s.logg.WithOrderID(context.Background(), order.ID)
	s.notifyWait.Add(1)
	go func() {
		defer s.notifyWait.Done()
		if !s.notifier.NotifyOrder(logCtx, order) {
			s.logg.Warn(logCtx, "order notification not delivered")
		}
	}()
}

// FlushNotifications blocks until in-flight notifications finish. Used on
// shutdown and in tests.
func (s *service) FlushNotifications() {
	s.notifyWait.Wait()
}

// GetByID loads one order with its lines.
func (s *service) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load order")
	}
	return order, nil
}

// ListByPhone returns the customer's orders, newest first. No orders is a
// normal empty result.
func (s *service) ListByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number is required")
	}
	rows, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list orders")
	}
	return rows, nil
}

func validateForm(form OrderForm) error {
	if strings.TrimSpace(form.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(form.PhoneNumber) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone number is required")
	}
	if strings.TrimSpace(form.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}
	return nil
}
