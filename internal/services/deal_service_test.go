package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aipipeline/internal/models"
)

func newDealService(notifier Notifier) *DealService {
	dealRepo := newFakeDealRepo()
	return NewDealService(dealRepo, newFakeActivityRepo(dealRepo), notifier)
}

func TestCreateDealDefaultsToLead(t *testing.T) {
	svc := newDealService(nil)

	deal := models.Deal{Title: "Acme renewal", Company: "Acme", Value: 1200}
	require.NoError(t, svc.Create(7, &deal))

	assert.Equal(t, models.StageLead, deal.Stage)
	assert.Equal(t, 7, deal.OwnerID)
	assert.NotZero(t, deal.ID)
	assert.False(t, deal.CreatedAt.IsZero())
}

func TestCreateDealRejectsUnknownStage(t *testing.T) {
	svc := newDealService(nil)

	deal := models.Deal{Title: "x", Company: "y", Value: 1, Stage: "Paused"}
	err := svc.Create(7, &deal)
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestCreateDealRejectsNegativeValue(t *testing.T) {
	svc := newDealService(nil)

	deal := models.Deal{Title: "x", Company: "y", Value: -5}
	err := svc.Create(7, &deal)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestListByOwnerIsolation(t *testing.T) {
	svc := newDealService(nil)

	mine := models.Deal{Title: "mine", Company: "a", Value: 10}
	require.NoError(t, svc.Create(1, &mine))
	theirs := models.Deal{Title: "theirs", Company: "b", Value: 20}
	require.NoError(t, svc.Create(2, &theirs))

	deals, err := svc.ListByOwner(1, "")
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, "mine", deals[0].Title)
}

func TestGetOwnedHidesForeignDeals(t *testing.T) {
	svc := newDealService(nil)

	deal := models.Deal{Title: "mine", Company: "a", Value: 10}
	require.NoError(t, svc.Create(1, &deal))

	_, err := svc.GetOwned(2, deal.ID)
	assert.ErrorIs(t, err, ErrDealNotFound)

	got, err := svc.GetOwned(1, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, deal.ID, got.ID)
}

func TestUpdateStage(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newDealService(notifier)

	deal := models.Deal{Title: "mine", Company: "a", Value: 10}
	require.NoError(t, svc.Create(1, &deal))

	updated, err := svc.UpdateStage(1, deal.ID, models.StageProposal)
	require.NoError(t, err)
	assert.Equal(t, models.StageProposal, updated.Stage)
	assert.Empty(t, notifier.closed, "open stages do not notify")

	updated, err = svc.UpdateStage(1, deal.ID, models.StageClosedWon)
	require.NoError(t, err)
	assert.Equal(t, models.StageClosedWon, updated.Stage)
	require.Len(t, notifier.closed, 1)
	assert.Equal(t, deal.ID, notifier.closed[0].ID)
}

func TestUpdateStageValidation(t *testing.T) {
	svc := newDealService(nil)

	deal := models.Deal{Title: "mine", Company: "a", Value: 10}
	require.NoError(t, svc.Create(1, &deal))

	_, err := svc.UpdateStage(1, deal.ID, "Archived")
	assert.ErrorIs(t, err, ErrInvalidStage)

	_, err = svc.UpdateStage(2, deal.ID, models.StageProposal)
	assert.ErrorIs(t, err, ErrDealNotFound)
}

func TestAddActivityAndCount(t *testing.T) {
	svc := newDealService(nil)

	deal := models.Deal{Title: "mine", Company: "a", Value: 10}
	require.NoError(t, svc.Create(1, &deal))

	_, err := svc.AddActivity(1, deal.ID, "call", "left voicemail")
	require.NoError(t, err)
	_, err = svc.AddActivity(1, deal.ID, "email", "")
	require.NoError(t, err)

	got, err := svc.GetOwned(1, deal.ID)
	require.NoError(t, err)
	assert.Len(t, got.Activities, 2)

	// foreign owners cannot attach activities
	_, err = svc.AddActivity(2, deal.ID, "call", "")
	assert.ErrorIs(t, err, ErrDealNotFound)
}

func TestAddActivityBlankKind(t *testing.T) {
	svc := newDealService(nil)

	deal := models.Deal{Title: "mine", Company: "a", Value: 10}
	require.NoError(t, svc.Create(1, &deal))

	_, err := svc.AddActivity(1, deal.ID, "   ", "note")
	assert.ErrorIs(t, err, ErrInvalidActivity)
}

func TestDeleteDeal(t *testing.T) {
	svc := newDealService(nil)

	deal := models.Deal{Title: "mine", Company: "a", Value: 10}
	require.NoError(t, svc.Create(1, &deal))

	assert.ErrorIs(t, svc.Delete(2, deal.ID), ErrDealNotFound)
	require.NoError(t, svc.Delete(1, deal.ID))
	assert.ErrorIs(t, svc.Delete(1, deal.ID), ErrDealNotFound)
}
