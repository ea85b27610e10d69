package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository/dao"
)

type DonationDAO interface {
	FindAll(ctx context.Context, filter domain.DonationFilter) ([]dao.Donation, error)
	FindByID(ctx context.Context, id uint) (dao.Donation, error)
	FindByIDForUpdate(ctx context.Context, id uint) (dao.Donation, error)
	Insert(ctx context.Context, donation dao.Donation) (dao.Donation, error)
	Update(ctx context.Context, donation dao.Donation) (dao.Donation, error)
	Delete(ctx context.Context, id uint) error
}

type DonationItemDAO interface {
	FindByDonationID(ctx context.Context, donationID uint) ([]dao.DonationItem, error)
	FindByID(ctx context.Context, id uint) (dao.DonationItem, error)
	Insert(ctx context.Context, item dao.DonationItem) (dao.DonationItem, error)
	Update(ctx context.Context, item dao.DonationItem) (dao.DonationItem, error)
	Delete(ctx context.Context, id uint) error
}

type DonationRepository struct {
	dao     DonationDAO
	itemDAO DonationItemDAO
}

func NewDonationRepository(dao DonationDAO, itemDAO DonationItemDAO) *DonationRepository {
	return &DonationRepository{
		dao:     dao,
		itemDAO: itemDAO,
	}
}

func (r *DonationRepository) FindAll(ctx context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	found, err := r.dao.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return mapSlice(found, donationToDomain), nil
}

func (r *DonationRepository) FindByID(ctx context.Context, id uint) (domain.Donation, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Donation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return donationToDomain(found), nil
}

func (r *DonationRepository) FindByIDForUpdate(ctx context.Context, id uint) (domain.Donation, error) {
	found, err := r.dao.FindByIDForUpdate(ctx, id)
	if err != nil {
		return domain.Donation{}, fmt.Errorf("r.dao.FindByIDForUpdate -> %w", err)
	}

	return donationToDomain(found), nil
}

// Create inserts the donation header only. Items are added with CreateItem.
func (r *DonationRepository) Create(ctx context.Context, donation domain.Donation) (domain.Donation, error) {
	created, err := r.dao.Insert(ctx, donationToDAO(donation))
	if err != nil {
		return domain.Donation{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return donationToDomain(created), nil
}

func (r *DonationRepository) Update(ctx context.Context, donation domain.Donation) (domain.Donation, error) {
	updated, err := r.dao.Update(ctx, donationToDAO(donation))
	if err != nil {
		return domain.Donation{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return donationToDomain(updated), nil
}

func (r *DonationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *DonationRepository) FindItems(ctx context.Context, donationID uint) ([]domain.DonationItem, error) {
	found, err := r.itemDAO.FindByDonationID(ctx, donationID)
	if err != nil {
		return nil, fmt.Errorf("r.itemDAO.FindByDonationID -> %w", err)
	}

	return mapSlice(found, donationItemToDomain), nil
}

func (r *DonationRepository) FindItemByID(ctx context.Context, id uint) (domain.DonationItem, error) {
	found, err := r.itemDAO.FindByID(ctx, id)
	if err != nil {
		return domain.DonationItem{}, fmt.Errorf("r.itemDAO.FindByID -> %w", err)
	}

	return donationItemToDomain(found), nil
}

func (r *DonationRepository) CreateItem(ctx context.Context, item domain.DonationItem) (domain.DonationItem, error) {
	created, err := r.itemDAO.Insert(ctx, donationItemToDAO(item))
	if err != nil {
		return domain.DonationItem{}, fmt.Errorf("r.itemDAO.Insert -> %w", err)
	}

	return donationItemToDomain(created), nil
}

func (r *DonationRepository) UpdateItem(ctx context.Context, item domain.DonationItem) (domain.DonationItem, error) {
	updated, err := r.itemDAO.Update(ctx, donationItemToDAO(item))
	if err != nil {
		return domain.DonationItem{}, fmt.Errorf("r.itemDAO.Update -> %w", err)
	}

	return donationItemToDomain(updated), nil
}

func (r *DonationRepository) DeleteItem(ctx context.Context, id uint) error {
	if err := r.itemDAO.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.itemDAO.Delete -> %w", err)
	}

	return nil
}
