package repository

import (
	"errors"

	"timeclass-backend/internal/model"

	"gorm.io/gorm"
)

// ErrRecordNotDisputable is returned when the work-hour record is not
// in a state that admits a claim. Only PENDING records can be disputed.
var ErrRecordNotDisputable = errors.New("record cannot be disputed")

type ClaimRepository interface {
	// CreateWithRejection stores the claim and flips its work-hour to
	// REJECTED inside one transaction, so a claim can never exist next
	// to a still-PENDING record. The record's state is re-checked
	// inside the transaction; ACCEPTED records stay ACCEPTED.
	CreateWithRejection(claim *model.Claim) (*model.WorkHour, error)
	GetByID(id uint) (*model.Claim, error)
	GetByWorkHourID(workHourID uint) (*model.Claim, error)
}

type claimRepository struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db}
}

func (r *claimRepository) CreateWithRejection(claim *model.Claim) (*model.WorkHour, error) {
	var wh model.WorkHour
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&wh, claim.WorkHourID).Error; err != nil {
			return err
		}
		if !model.CanTransition(wh.Status, model.StatusRejected, true) {
			return ErrRecordNotDisputable
		}
		if err := tx.Create(claim).Error; err != nil {
			return err
		}
		wh.Status = model.StatusRejected
		return tx.Save(&wh).Error
	})
	if err != nil {
		return nil, err
	}
	wh.Claim = claim
	return &wh, nil
}

func (r *claimRepository) GetByID(id uint) (*model.Claim, error) {
	var claim model.Claim
	err := r.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("comments.created_at asc")
	}).First(&claim, id).Error
	return &claim, err
}

func (r *claimRepository) GetByWorkHourID(workHourID uint) (*model.Claim, error) {
	var claim model.Claim
	err := r.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("comments.created_at asc")
	}).Where("work_hour_id = ?", workHourID).First(&claim).Error
	return &claim, err
}
