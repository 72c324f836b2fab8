package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/model"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/repository"
)

// ReportInput is a validated, parsed report submission.
type ReportInput struct {
	Latitude     float64
	Longitude    float64
	Description  string
	Date         string
	Time         string
	Address      string
	IncidentType string
}

// ReportService handles incident report submission and listing.
type ReportService interface {
	Submit(ctx context.Context, userID uint, input ReportInput) (*model.Report, error)
	ListAll(ctx context.Context) ([]model.ReportView, error)
	ListMine(ctx context.Context, userID uint) ([]model.ReportView, error)
}

type reportService struct {
	reports repository.ReportRepository
}

// NewReportService creates a new report service.
func NewReportService(reports repository.ReportRepository) ReportService {
	return &reportService{reports: reports}
}

// Submit persists one report owned by userID. A single insert, no
// compensation needed on failure.
func (s *reportService) Submit(ctx context.Context, userID uint, input ReportInput) (*model.Report, error) {
	report := &model.Report{
		UserID:       userID,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Description:  input.Description,
		Date:         input.Date,
		Time:         input.Time,
		Address:      input.Address,
		IncidentType: input.IncidentType,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return report, nil
}

// ListAll returns every report, newest first.
func (s *reportService) ListAll(ctx context.Context) ([]model.ReportView, error) {
	reports, err := s.reports.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return toViews(reports), nil
}

// ListMine returns only reports owned by userID, newest first.
func (s *reportService) ListMine(ctx context.Context, userID uint) ([]model.ReportView, error) {
	reports, err := s.reports.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reports for user %d: %w", userID, err)
	}
	return toViews(reports), nil
}

func toViews(reports []model.Report) []model.ReportView {
	views := make([]model.ReportView, 0, len(reports))
	for _, r := range reports {
		views = append(views, model.ReportView{
			ID:           r.ID,
			UserID:       r.UserID,
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
			Description:  r.Description,
			Date:         r.Date,
			Time:         r.Time,
			Address:      r.Address,
			IncidentType: r.IncidentType,
			CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		})
	}
	return views
}
