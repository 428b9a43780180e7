package repository

import (
	"errors"

	"timeclass-backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	// Create is idempotent on the client-generated UUID: replaying the
	// same comment returns the stored row instead of inserting a twin.
	Create(comment *model.Comment) (*model.Comment, bool, error)
	GetByClaimID(claimID uint) ([]model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db}
}

func (r *commentRepository) Create(comment *model.Comment) (*model.Comment, bool, error) {
	if comment.UUID != "" {
		var existing model.Comment
		err := r.db.Where("uuid = ?", comment.UUID).First(&existing).Error
		if err == nil {
			return &existing, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}
	if err := r.db.Create(comment).Error; err != nil {
		return nil, false, err
	}
	return comment, true, nil
}

func (r *commentRepository) GetByClaimID(claimID uint) ([]model.Comment, error) {
	var list []model.Comment
	err := r.db.Where("claim_id = ?", claimID).Order("created_at asc").Find(&list).Error
	return list, err
}
