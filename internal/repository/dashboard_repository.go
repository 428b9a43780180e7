package repository

import (
	"timeclass-backend/internal/model"

	"gorm.io/gorm"
)

type DashboardStats struct {
	Pending    int64 `json:"pending"`
	Accepted   int64 `json:"accepted"`
	Rejected   int64 `json:"rejected"`
	OpenClaims int64 `json:"open_claims"`
	Teachers   int64 `json:"teachers"`
}

type DashboardRepository interface {
	GetStats() (*DashboardStats, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db}
}

func (r *dashboardRepository) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		status string
		dest   *int64
	}{
		{model.StatusPending, &stats.Pending},
		{model.StatusAccepted, &stats.Accepted},
		{model.StatusRejected, &stats.Rejected},
	}
	for _, c := range counts {
		if err := r.db.Model(&model.WorkHour{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	if err := r.db.Model(&model.Claim{}).Count(&stats.OpenClaims).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Teacher{}).Where("is_active = ?", true).Count(&stats.Teachers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
