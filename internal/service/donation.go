package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/metrics"
)

type DonationRepository interface {
	FindAll(ctx context.Context, filter domain.DonationFilter) ([]domain.Donation, error)
	FindByID(ctx context.Context, id uint) (domain.Donation, error)
	FindByIDForUpdate(ctx context.Context, id uint) (domain.Donation, error)
	Create(ctx context.Context, donation domain.Donation) (domain.Donation, error)
	Update(ctx context.Context, donation domain.Donation) (domain.Donation, error)
	Delete(ctx context.Context, id uint) error
	FindItems(ctx context.Context, donationID uint) ([]domain.DonationItem, error)
	FindItemByID(ctx context.Context, id uint) (domain.DonationItem, error)
	CreateItem(ctx context.Context, item domain.DonationItem) (domain.DonationItem, error)
	UpdateItem(ctx context.Context, item domain.DonationItem) (domain.DonationItem, error)
	DeleteItem(ctx context.Context, id uint) error
}

type DonationUpdate struct {
	PersonID          *uint
	CollectionPointID *uint
	Note              *string
}

// DonationService records donations and credits the needs of the receiving collection point
// when they are delivered.
type DonationService struct {
	tx      Transactor
	repo    DonationRepository
	needs   NeedRepository
	points  CollectionPointFinder
	people  PersonFinder
	catalog CatalogRepository
}

func NewDonationService(
	tx Transactor,
	repo DonationRepository,
	needs NeedRepository,
	points CollectionPointFinder,
	people PersonFinder,
	catalog CatalogRepository,
) *DonationService {
	return &DonationService{
		tx:      tx,
		repo:    repo,
		needs:   needs,
		points:  points,
		people:  people,
		catalog: catalog,
	}
}

func (s *DonationService) List(ctx context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	donations, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return donations, nil
}

func (s *DonationService) ListByPerson(ctx context.Context, personID uint) ([]domain.Donation, error) {
	if _, err := s.people.FindByID(ctx, personID); err != nil {
		return nil, fmt.Errorf("s.people.FindByID -> %w", err)
	}

	return s.List(ctx, domain.DonationFilter{PersonID: &personID})
}

func (s *DonationService) ListByCollectionPoint(ctx context.Context, pointID uint) ([]domain.Donation, error) {
	if _, err := s.points.FindByID(ctx, pointID); err != nil {
		return nil, fmt.Errorf("s.points.FindByID -> %w", err)
	}

	return s.List(ctx, domain.DonationFilter{CollectionPointID: &pointID})
}

func (s *DonationService) ListByStatus(ctx context.Context, status domain.DonationStatus) ([]domain.Donation, error) {
	if !status.Valid() {
		return nil, domain.InvalidArgument("invalid donation status %q", status)
	}

	return s.List(ctx, domain.DonationFilter{Status: &status})
}

func (s *DonationService) Get(ctx context.Context, id uint) (domain.Donation, error) {
	donation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Donation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return donation, nil
}

// Create stores the donation and all of its items, or nothing.
func (s *DonationService) Create(ctx context.Context, donation domain.Donation, items []domain.DonationItem) (domain.Donation, error) {
	if len(items) == 0 {
		return domain.Donation{}, domain.InvalidArgument("a donation needs at least one item")
	}
	if _, err := s.people.FindByID(ctx, donation.PersonID); err != nil {
		return domain.Donation{}, fmt.Errorf("s.people.FindByID -> %w", err)
	}
	if err := s.checkPoint(ctx, donation.CollectionPointID); err != nil {
		return domain.Donation{}, err
	}

	for i := range items {
		if err := s.checkItem(ctx, &items[i]); err != nil {
			return domain.Donation{}, fmt.Errorf("item %d: %w", i, err)
		}
	}

	donation.Status = domain.DonationPending
	donation.DonatedAt = now()
	donation.DeliveredAt = nil
	donation.Items = nil

	var id uint
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err := s.repo.Create(ctx, donation)
		if err != nil {
			return fmt.Errorf("s.repo.Create -> %w", err)
		}
		id = created.ID

		for _, item := range items {
			item.DonationID = created.ID
			if _, err = s.repo.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("s.repo.CreateItem -> %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return domain.Donation{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return s.Get(ctx, id)
}

// checkPoint requires the collection point to exist and to accept donations.
func (s *DonationService) checkPoint(ctx context.Context, pointID uint) error {
	point, err := s.points.FindByID(ctx, pointID)
	if err != nil {
		return fmt.Errorf("s.points.FindByID -> %w", err)
	}
	if !point.Active {
		return domain.InvalidState("collection point %d is not active", pointID)
	}

	return nil
}

func (s *DonationService) checkItem(ctx context.Context, item *domain.DonationItem) error {
	item.Quantity = item.Quantity.Round(2)
	if err := item.Validate(); err != nil {
		return err
	}

	_, err := s.catalog.FindItemTypeByID(ctx, item.ItemTypeID)
	if domain.IsNotFound(err) {
		return domain.InvalidArgument("unknown item type %d", item.ItemTypeID)
	}
	if err != nil {
		return fmt.Errorf("s.catalog.FindItemTypeByID -> %w", err)
	}

	return nil
}

func (s *DonationService) Update(ctx context.Context, id uint, upd DonationUpdate) (domain.Donation, error) {
	var updated domain.Donation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		donation, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}
		if err = donation.EnsureMutable(); err != nil {
			return err
		}

		if upd.PersonID != nil && *upd.PersonID != donation.PersonID {
			if _, err = s.people.FindByID(ctx, *upd.PersonID); err != nil {
				return fmt.Errorf("s.people.FindByID -> %w", err)
			}
			donation.PersonID = *upd.PersonID
		}
		if upd.CollectionPointID != nil && *upd.CollectionPointID != donation.CollectionPointID {
			if err = s.checkPoint(ctx, *upd.CollectionPointID); err != nil {
				return err
			}
			donation.CollectionPointID = *upd.CollectionPointID
		}
		setIfNotNil(&donation.Note, upd.Note)

		updated, err = s.repo.Update(ctx, donation)
		if err != nil {
			return fmt.Errorf("s.repo.Update -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Donation{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return updated, nil
}

// RegisterDelivery marks the donation delivered and adds each item quantity to the matching active
// needs of the collection point, capped at what each need asked for. The donation row is locked
// first so a second delivery waits and then sees the delivered status.
func (s *DonationService) RegisterDelivery(ctx context.Context, id uint) (domain.Donation, error) {
	credited := 0
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		donation, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}

		if err = donation.Deliver(now()); err != nil {
			return err
		}
		if _, err = s.repo.Update(ctx, donation); err != nil {
			return fmt.Errorf("s.repo.Update -> %w", err)
		}

		for _, item := range donation.Items {
			needs, err := s.needs.FindActiveForUpdate(ctx, donation.CollectionPointID, item.ItemTypeID)
			if err != nil {
				return fmt.Errorf("s.needs.FindActiveForUpdate -> %w", err)
			}

			for _, need := range needs {
				before := need.QuantityReceived
				need.Receive(item.Quantity)
				if need.QuantityReceived.Equal(before) {
					continue
				}
				if err = s.needs.UpdateReceived(ctx, need.ID, need.QuantityReceived); err != nil {
					return fmt.Errorf("s.needs.UpdateReceived -> %w", err)
				}
				credited++
			}
		}

		return nil
	})
	if err != nil {
		return domain.Donation{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}
	metrics.RecordDelivery(credited)

	return s.Get(ctx, id)
}

func (s *DonationService) Cancel(ctx context.Context, id uint) (domain.Donation, error) {
	var cancelled domain.Donation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		donation, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}

		if err = donation.Cancel(); err != nil {
			return err
		}

		cancelled, err = s.repo.Update(ctx, donation)
		if err != nil {
			return fmt.Errorf("s.repo.Update -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Donation{}, fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return cancelled, nil
}

// Delete removes a donation with its items. Delivered donations are kept.
func (s *DonationService) Delete(ctx context.Context, id uint) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		donation, err := s.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByIDForUpdate -> %w", err)
		}
		if err = donation.EnsureMutable(); err != nil {
			return err
		}

		if err = s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("s.repo.Delete -> %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("s.tx.WithinTransaction -> %w", err)
	}

	return nil
}
