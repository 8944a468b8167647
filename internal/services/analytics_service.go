package services

import (
	"aipipeline/internal/analytics"
	"aipipeline/internal/models"
)

// AnalyticsService loads the owner's slice of the pipeline and hands it to the
// pure aggregator.
type AnalyticsService struct {
	deals *DealService
}

func NewAnalyticsService(deals *DealService) *AnalyticsService {
	return &AnalyticsService{deals: deals}
}

func (s *AnalyticsService) Dashboard(ownerID int) (*analytics.Summary, error) {
	deals, err := s.deals.ListByOwner(ownerID, "")
	if err != nil {
		return nil, err
	}
	summary := analytics.Summarize(deals)
	return &summary, nil
}

// DealsFor exposes the owner-filtered deal list for report generation.
func (s *AnalyticsService) DealsFor(ownerID int) ([]models.Deal, error) {
	return s.deals.ListByOwner(ownerID, "")
}
