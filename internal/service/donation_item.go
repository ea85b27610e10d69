package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type DonationItemUpdate struct {
	ItemTypeID *uint
	Quantity   *decimal.Decimal
	Note       *string
}

// DonationItemService changes the items of a donation that has not been delivered yet. Every write
// holds the lock on the parent donation row so it cannot race with a delivery.
type DonationItemService struct {
	tx      Transactor
	repo    DonationRepository
	catalog CatalogRepository
}

func NewDonationItemService(tx Transactor, repo DonationRepository, catalog CatalogRepository) *DonationItemService {
	return &DonationItemService{
		tx:      tx,
		repo:    repo,
		catalog: catalog,
	}
}

func (s *DonationItemService) ListByDonation(ctx context.Context, donationID uint) ([]domain.DonationItem, error) {
	if _, err := s.repo.FindByID(ctx, donationID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	items, err := s.repo.FindItems(ctx, donationID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindItems -> %w", err)
	}

	return items, nil
}

func (s *DonationItemService) Get(ctx context.Context, id uint) (domain.DonationItem, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		return domain.DonationItem{}, fmt.Errorf("s.repo.FindItemByID -> %w", err)
	}

	return item, nil
}

func (s *DonationItemService) ListItemTypes(ctx context.Context) ([]domain.ItemType, error) {
	itemTypes, err := s.catalog.FindItemTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.catalog.FindItemTypes -> %w", err)
	}

	return itemTypes, nil
}

func (s *DonationItemService) Create(ctx context.Context, item domain.DonationItem) (domain.DonationItem, error) {
	item.Quantity = item.Quantity.Round(2)
	if err := item.Validate(); err != nil {
		return domain.DonationItem{}, err
	}
	if _, err := s.catalog.FindItemTypeByID(ctx, item.ItemTypeID); err != nil {
		return domain.DonationItem{}, fmt.Errorf("s.catalog.FindItemTypeByID -> %w", err)
	}

	var created domain.DonationItem
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lockMutable(ctx, item.DonationID); err != nil {
			return err
		}

		var err error
		created, err = s.repo.CreateItem(ctx, item)
		if err != nil {
			return fmt.Errorf("s.repo.CreateItem -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.DonationItem{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return created, nil
}

func (s *DonationItemService) Update(ctx context.Context, id uint, upd DonationItemUpdate) (domain.DonationItem, error) {
	if upd.ItemTypeID != nil {
		if _, err := s.catalog.FindItemTypeByID(ctx, *upd.ItemTypeID); err != nil {
			return domain.DonationItem{}, fmt.Errorf("s.catalog.FindItemTypeByID -> %w", err)
		}
	}

	var updated domain.DonationItem
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.FindItemByID(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindItemByID -> %w", err)
		}
		if err = s.lockMutable(ctx, item.DonationID); err != nil {
			return err
		}

		if upd.ItemTypeID != nil {
			item.ItemTypeID = *upd.ItemTypeID
			item.ItemType = nil
		}
		if upd.Quantity != nil {
			item.Quantity = upd.Quantity.Round(2)
		}
		setIfNotNil(&item.Note, upd.Note)
		if err = item.Validate(); err != nil {
			return err
		}

		updated, err = s.repo.UpdateItem(ctx, item)
		if err != nil {
			return fmt.Errorf("s.repo.UpdateItem -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.DonationItem{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return updated, nil
}

// Delete refuses to remove the last item; delete the donation instead.
func (s *DonationItemService) Delete(ctx context.Context, id uint) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.FindItemByID(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindItemByID -> %w", err)
		}

		donation, err := s.repo.FindByIDForUpdate(ctx, item.DonationID)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}
		if err = donation.EnsureMutable(); err != nil {
			return err
		}
		if len(donation.Items) <= 1 {
			return domain.InvalidState("donation %d must keep at least one item", donation.ID)
		}

		if err = s.repo.DeleteItem(ctx, id); err != nil {
			return fmt.Errorf("s.repo.DeleteItem -> %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return nil
}

func (s *DonationItemService) lockMutable(ctx context.Context, donationID uint) error {
	donation, err := s.repo.FindByIDForUpdate(ctx, donationID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
	}

	return donation.EnsureMutable()
}
