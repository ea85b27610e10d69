package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type NeedRepository interface {
	FindAll(ctx context.Context, filter domain.NeedFilter) ([]domain.Need, error)
	FindByID(ctx context.Context, id uint) (domain.Need, error)
	FindByIDForUpdate(ctx context.Context, id uint) (domain.Need, error)
	FindActiveForUpdate(ctx context.Context, collectionPointID, itemTypeID uint) ([]domain.Need, error)
	Create(ctx context.Context, need domain.Need) (domain.Need, error)
	Update(ctx context.Context, need domain.Need, withReceived bool) (domain.Need, error)
	UpdateReceived(ctx context.Context, id uint, received decimal.Decimal) error
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

type CollectionPointFinder interface {
	FindByID(ctx context.Context, id uint) (domain.CollectionPoint, error)
}

type NeedUpdate struct {
	CollectionPointID *uint
	ItemTypeID        *uint
	QuantityNeeded    *decimal.Decimal
	QuantityReceived  *decimal.Decimal
	Priority          *domain.Priority
}

type NeedService struct {
	tx      Transactor
	repo    NeedRepository
	points  CollectionPointFinder
	catalog CatalogRepository
}

func NewNeedService(tx Transactor, repo NeedRepository, points CollectionPointFinder, catalog CatalogRepository) *NeedService {
	return &NeedService{
		tx:      tx,
		repo:    repo,
		points:  points,
		catalog: catalog,
	}
}

func (s *NeedService) List(ctx context.Context, filter domain.NeedFilter) ([]domain.Need, error) {
	needs, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return needs, nil
}

func (s *NeedService) ListByCollectionPoint(ctx context.Context, pointID uint) ([]domain.Need, error) {
	if _, err := s.points.FindByID(ctx, pointID); err != nil {
		return nil, fmt.Errorf("s.points.FindByID -> %w", err)
	}

	return s.List(ctx, domain.NeedFilter{CollectionPointID: &pointID})
}

func (s *NeedService) ListActive(ctx context.Context) ([]domain.Need, error) {
	active := true
	return s.List(ctx, domain.NeedFilter{Active: &active})
}

func (s *NeedService) ListByPriority(ctx context.Context, priority domain.Priority) ([]domain.Need, error) {
	if !priority.Valid() {
		return nil, domain.InvalidArgument("invalid priority %q", priority)
	}

	return s.List(ctx, domain.NeedFilter{Priority: &priority})
}

func (s *NeedService) Get(ctx context.Context, id uint) (domain.Need, error) {
	need, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Need{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return need, nil
}

func (s *NeedService) Create(ctx context.Context, need domain.Need) (domain.Need, error) {
	if _, err := s.points.FindByID(ctx, need.CollectionPointID); err != nil {
		return domain.Need{}, fmt.Errorf("s.points.FindByID -> %w", err)
	}
	if _, err := s.catalog.FindItemTypeByID(ctx, need.ItemTypeID); err != nil {
		return domain.Need{}, fmt.Errorf("s.catalog.FindItemTypeByID -> %w", err)
	}

	if need.Priority == "" {
		need.Priority = domain.PriorityMedium
	}
	need.QuantityNeeded = need.QuantityNeeded.Round(2)
	need.QuantityReceived = need.QuantityReceived.Round(2)
	if err := need.Validate(); err != nil {
		return domain.Need{}, err
	}
	need.Active = true

	created, err := s.repo.Create(ctx, need)
	if err != nil {
		return domain.Need{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Update validates the merged quantities, so lowering quantity_needed below what was already
// received is rejected. The need row stays locked from the read to the write so a concurrent
// delivery is either seen or applied afterwards.
func (s *NeedService) Update(ctx context.Context, id uint, upd NeedUpdate) (domain.Need, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		need, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}

		if upd.CollectionPointID != nil && *upd.CollectionPointID != need.CollectionPointID {
			if _, err = s.points.FindByID(ctx, *upd.CollectionPointID); err != nil {
				return fmt.Errorf("s.points.FindByID -> %w", err)
			}
			need.CollectionPointID = *upd.CollectionPointID
		}
		if upd.ItemTypeID != nil && *upd.ItemTypeID != need.ItemTypeID {
			if _, err = s.catalog.FindItemTypeByID(ctx, *upd.ItemTypeID); err != nil {
				return fmt.Errorf("s.catalog.FindItemTypeByID -> %w", err)
			}
			need.ItemTypeID = *upd.ItemTypeID
		}
		if upd.QuantityNeeded != nil {
			need.QuantityNeeded = upd.QuantityNeeded.Round(2)
		}
		if upd.QuantityReceived != nil {
			need.QuantityReceived = upd.QuantityReceived.Round(2)
		}
		setIfNotNil(&need.Priority, upd.Priority)

		if err = need.Validate(); err != nil {
			return err
		}

		if _, err = s.repo.Update(ctx, need, upd.QuantityReceived != nil); err != nil {
			return fmt.Errorf("s.repo.Update -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Need{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return s.Get(ctx, id)
}

// UpdateReceived overwrites the received quantity under the same row lock deliveries take.
func (s *NeedService) UpdateReceived(ctx context.Context, id uint, received decimal.Decimal) (domain.Need, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		need, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}

		need.QuantityReceived = received.Round(2)
		if err = need.Validate(); err != nil {
			return err
		}

		if err = s.repo.UpdateReceived(ctx, id, need.QuantityReceived); err != nil {
			return fmt.Errorf("s.repo.UpdateReceived -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Need{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return s.Get(ctx, id)
}

func (s *NeedService) Activate(ctx context.Context, id uint) (domain.Need, error) {
	return s.setActive(ctx, id, true)
}

func (s *NeedService) Deactivate(ctx context.Context, id uint) (domain.Need, error) {
	return s.setActive(ctx, id, false)
}

func (s *NeedService) setActive(ctx context.Context, id uint, active bool) (domain.Need, error) {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return domain.Need{}, fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	return s.Get(ctx, id)
}

func (s *NeedService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
