package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/model"
)

// ReportRepository defines incident report persistence operations. Reports
// are insert-only; both listings are ordered newest-created-first, ties left
// to the database.
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	ListAll(ctx context.Context) ([]model.Report, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository builds a GORM-backed repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) ListAll(ctx context.Context) ([]model.Report, error) {
	var reports []model.Report
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) ListByUser(ctx context.Context, userID uint) ([]model.Report, error) {
	var reports []model.Report
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
