package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-system/internal/api/metrics"
	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

const defaultLowStockThreshold = 5

// SweetService implements the inventory use-cases on top of the repository.
// Purchase and restock rely on the repository's conditional updates for
// per-record linearizability; the service itself holds no locks.
type SweetService struct {
	repo      ports.SweetRepository
	cache     ports.CatalogCache
	alerts    ports.AlertDispatcher
	threshold int
	logger    zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, cache ports.CatalogCache, alerts ports.AlertDispatcher, lowStockThreshold int, logger zerolog.Logger) *SweetService {
	if lowStockThreshold < 0 {
		lowStockThreshold = defaultLowStockThreshold
	}
	return &SweetService{
		repo:      repo,
		cache:     cache,
		alerts:    alerts,
		threshold: lowStockThreshold,
		logger:    logger,
	}
}

func (s *SweetService) Create(ctx context.Context, input ports.SweetInput) (*domain.Sweet, error) {
	if strings.TrimSpace(input.Name) == "" || input.Price < 0 || input.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Sweet{
		Name:      input.Name,
		Category:  input.Category,
		Price:     input.Price,
		Quantity:  input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	metrics.SweetsCreatedTotal.WithLabelValues(created.Category).Inc()
	s.logger.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet created")
	s.invalidateCatalog(ctx)
	return created, nil
}

// List returns the full catalog, served from the cache when warm.
func (s *SweetService) List(ctx context.Context) ([]*domain.Sweet, error) {
	if s.cache != nil {
		if sweets, ok, err := s.cache.Get(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache read failed")
		} else if ok {
			return sweets, nil
		}
	}

	sweets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sweets); err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return sweets, nil
}

func (s *SweetService) Search(ctx context.Context, filter ports.SweetFilter) ([]*domain.Sweet, error) {
	return s.repo.Search(ctx, filter)
}

// Update replaces all mutable fields of an existing sweet.
func (s *SweetService) Update(ctx context.Context, id string, input ports.SweetInput) (*domain.Sweet, error) {
	if strings.TrimSpace(input.Name) == "" || input.Price < 0 || input.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	updated, err := s.repo.Update(ctx, &domain.Sweet{
		ID:        id,
		Name:      input.Name,
		Category:  input.Category,
		Price:     input.Price,
		Quantity:  input.Quantity,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	return updated, nil
}

func (s *SweetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("sweet_id", id).Msg("sweet deleted")
	s.invalidateCatalog(ctx)
	return nil
}

// Purchase decrements stock by one unit. The repository performs the
// decrement as a single conditional update, so concurrent purchases against
// the same record never oversell.
func (s *SweetService) Purchase(ctx context.Context, id string) (*domain.Sweet, error) {
	sweet, err := s.repo.DecrementQuantity(ctx, id)
	if err != nil {
		if err == domain.ErrOutOfStock {
			metrics.PurchasesTotal.WithLabelValues("out_of_stock").Inc()
		}
		return nil, err
	}

	metrics.PurchasesTotal.WithLabelValues("ok").Inc()

	if s.alerts != nil && sweet.Quantity <= s.threshold {
		s.alerts.Enqueue(domain.StockAlert{
			SweetID:   sweet.ID,
			Name:      sweet.Name,
			Quantity:  sweet.Quantity,
			Threshold: s.threshold,
			At:        time.Now().UTC(),
		})
	}

	s.invalidateCatalog(ctx)
	return sweet, nil
}

// Restock increments stock by amount; amount <= 0 means the default of one.
func (s *SweetService) Restock(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
	if amount <= 0 {
		amount = 1
	}

	sweet, err := s.repo.IncrementQuantity(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	metrics.RestocksTotal.Inc()
	s.logger.Info().Str("sweet_id", id).Int("amount", amount).Int("quantity", sweet.Quantity).Msg("sweet restocked")
	s.invalidateCatalog(ctx)
	return sweet, nil
}

func (s *SweetService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
