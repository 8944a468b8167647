package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"aipipeline/internal/models"
	"aipipeline/internal/repositories"
)

var (
	ErrDealNotFound    = errors.New("deal not found")
	ErrInvalidStage    = errors.New("invalid stage")
	ErrInvalidValue    = errors.New("value must be non-negative")
	ErrInvalidActivity = errors.New("activity kind is required")
)

type DealService struct {
	repo       repositories.DealRepository
	activities repositories.ActivityRepository
	notifier   Notifier // may be nil
}

func NewDealService(repo repositories.DealRepository, activities repositories.ActivityRepository, notifier Notifier) *DealService {
	return &DealService{repo: repo, activities: activities, notifier: notifier}
}

func (s *DealService) Create(ownerID int, deal *models.Deal) error {
	deal.OwnerID = ownerID
	if deal.Stage == "" {
		deal.Stage = models.StageLead
	}
	if !models.IsValidStage(deal.Stage) {
		return fmt.Errorf("%w: %q", ErrInvalidStage, deal.Stage)
	}
	if deal.Value < 0 {
		return ErrInvalidValue
	}
	now := time.Now()
	deal.CreatedAt = now
	deal.UpdatedAt = now

	id, err := s.repo.Create(deal)
	if err != nil {
		return err
	}
	deal.ID = int(id)
	deal.Activities = []models.Activity{}
	return nil
}

// ListByOwner returns the owner's deals with their activities attached.
func (s *DealService) ListByOwner(ownerID int, stage string) ([]models.Deal, error) {
	if stage != "" && !models.IsValidStage(stage) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, stage)
	}
	deals, err := s.repo.ListByOwner(ownerID, stage)
	if err != nil {
		return nil, err
	}
	byDeal, err := s.activities.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	for i := range deals {
		acts := byDeal[deals[i].ID]
		if acts == nil {
			acts = []models.Activity{}
		}
		deals[i].Activities = acts
	}
	if deals == nil {
		deals = []models.Deal{}
	}
	return deals, nil
}

// GetOwned fetches a deal and enforces the ownership filter. A deal that
// exists but belongs to someone else reads as not found.
func (s *DealService) GetOwned(ownerID, id int) (*models.Deal, error) {
	deal, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil || deal.OwnerID != ownerID {
		return nil, ErrDealNotFound
	}
	acts, err := s.activities.ListByDeal(id)
	if err != nil {
		return nil, err
	}
	if acts == nil {
		acts = []models.Activity{}
	}
	deal.Activities = acts
	return deal, nil
}

func (s *DealService) Update(ownerID int, deal *models.Deal) (*models.Deal, error) {
	current, err := s.GetOwned(ownerID, deal.ID)
	if err != nil {
		return nil, err
	}
	if deal.Stage == "" {
		deal.Stage = current.Stage
	}
	if !models.IsValidStage(deal.Stage) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, deal.Stage)
	}
	if deal.Value < 0 {
		return nil, ErrInvalidValue
	}
	deal.OwnerID = ownerID
	if err := s.repo.Update(deal); err != nil {
		return nil, err
	}
	return s.GetOwned(ownerID, deal.ID)
}

func (s *DealService) UpdateStage(ownerID, id int, stage string) (*models.Deal, error) {
	if !models.IsValidStage(stage) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, stage)
	}
	if _, err := s.GetOwned(ownerID, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStage(id, stage); err != nil {
		return nil, err
	}
	updated, err := s.GetOwned(ownerID, id)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && models.IsTerminalStage(stage) {
		if err := s.notifier.DealClosed(updated); err != nil {
			log.Printf("[deals][stage] warning: notify failed for deal=%d: %v", id, err)
		}
	}
	return updated, nil
}

func (s *DealService) Delete(ownerID, id int) error {
	if _, err := s.GetOwned(ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDealNotFound
		}
		return err
	}
	return nil
}

func (s *DealService) AddActivity(ownerID, dealID int, kind, note string) (*models.Activity, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil, ErrInvalidActivity
	}
	if _, err := s.GetOwned(ownerID, dealID); err != nil {
		return nil, err
	}
	activity := &models.Activity{DealID: dealID, Kind: kind, Note: note}
	if err := s.activities.Add(activity); err != nil {
		return nil, err
	}
	return activity, nil
}
