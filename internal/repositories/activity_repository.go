package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"aipipeline/internal/models"
)

type ActivityRepository interface {
	Add(activity *models.Activity) error
	ListByDeal(dealID int) ([]models.Activity, error)
	// ListByOwner returns activities for every deal of the owner, keyed by deal id.
	ListByOwner(ownerID int) (map[int][]models.Activity, error)
}

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Add(activity *models.Activity) error {
	const q = `
        INSERT INTO deal_activities (deal_id, kind, note, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	err := r.db.QueryRow(q, activity.DealID, activity.Kind, activity.Note, activity.CreatedAt).
		Scan(&activity.ID)
	if err != nil {
		return fmt.Errorf("add activity: %w", err)
	}
	return nil
}

func (r *activityRepository) ListByDeal(dealID int) ([]models.Activity, error) {
	const q = `
        SELECT id, deal_id, kind, note, created_at
        FROM deal_activities
        WHERE deal_id = $1
        ORDER BY created_at ASC
    `
	rows, err := r.db.Query(q, dealID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	return collectActivities(rows)
}

func (r *activityRepository) ListByOwner(ownerID int) (map[int][]models.Activity, error) {
	const q = `
        SELECT a.id, a.deal_id, a.kind, a.note, a.created_at
        FROM deal_activities a
        JOIN deals d ON d.id = a.deal_id
        WHERE d.owner_id = $1
        ORDER BY a.created_at ASC
    `
	rows, err := r.db.Query(q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list activities by owner: %w", err)
	}
	defer rows.Close()

	list, err := collectActivities(rows)
	if err != nil {
		return nil, err
	}
	byDeal := make(map[int][]models.Activity, len(list))
	for _, a := range list {
		byDeal[a.DealID] = append(byDeal[a.DealID], a)
	}
	return byDeal, nil
}

func collectActivities(rows *sql.Rows) ([]models.Activity, error) {
	var out []models.Activity
	for rows.Next() {
		var (
			a    models.Activity
			note sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.DealID, &a.Kind, &note, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Note = note.String
		out = append(out, a)
	}
	return out, rows.Err()
}
