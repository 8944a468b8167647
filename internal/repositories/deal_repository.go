package repositories

import (
	"database/sql"
	"fmt"

	"aipipeline/internal/models"
)

type DealRepository interface {
	Create(deal *models.Deal) (int64, error)
	GetByID(id int) (*models.Deal, error)
	ListByOwner(ownerID int, stage string) ([]models.Deal, error)
	Update(deal *models.Deal) error
	UpdateStage(id int, stage string) error
	Delete(id int) error
}

type dealRepository struct {
	db *sql.DB
}

func NewDealRepository(db *sql.DB) DealRepository {
	return &dealRepository{db: db}
}

const dealColumns = `id, owner_id, title, company, value, stage, probability,
	contact_name, contact_email, contact_phone, notes, expected_close_date,
	created_at, updated_at`

func (r *dealRepository) Create(deal *models.Deal) (int64, error) {
	const q = `
        INSERT INTO deals (owner_id, title, company, value, stage, probability,
            contact_name, contact_email, contact_phone, notes, expected_close_date,
            created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(q,
		deal.OwnerID,
		deal.Title,
		deal.Company,
		deal.Value,
		deal.Stage,
		deal.Probability,
		deal.ContactName,
		deal.ContactEmail,
		deal.ContactPhone,
		deal.Notes,
		deal.ExpectedCloseDate,
		deal.CreatedAt,
		deal.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create deal: %w", err)
	}
	return id, nil
}

func (r *dealRepository) GetByID(id int) (*models.Deal, error) {
	q := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`
	row := r.db.QueryRow(q, id)
	deal, err := scanDeal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get deal by id: %w", err)
	}
	return deal, nil
}

func (r *dealRepository) ListByOwner(ownerID int, stage string) ([]models.Deal, error) {
	q := `SELECT ` + dealColumns + ` FROM deals WHERE owner_id = $1`
	args := []interface{}{ownerID}
	if stage != "" {
		q += ` AND stage = $2`
		args = append(args, stage)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	var deals []models.Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		deals = append(deals, *deal)
	}
	return deals, rows.Err()
}

func (r *dealRepository) Update(deal *models.Deal) error {
	const q = `
        UPDATE deals
        SET title=$1, company=$2, value=$3, stage=$4, probability=$5,
            contact_name=$6, contact_email=$7, contact_phone=$8, notes=$9,
            expected_close_date=$10, updated_at=NOW()
        WHERE id=$11
    `
	_, err := r.db.Exec(q,
		deal.Title,
		deal.Company,
		deal.Value,
		deal.Stage,
		deal.Probability,
		deal.ContactName,
		deal.ContactEmail,
		deal.ContactPhone,
		deal.Notes,
		deal.ExpectedCloseDate,
		deal.ID,
	)
	if err != nil {
		return fmt.Errorf("update deal: %w", err)
	}
	return nil
}

func (r *dealRepository) UpdateStage(id int, stage string) error {
	const q = `UPDATE deals SET stage = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.db.Exec(q, stage, id); err != nil {
		return fmt.Errorf("update deal stage: %w", err)
	}
	return nil
}

func (r *dealRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDeal(row rowScanner) (*models.Deal, error) {
	d := &models.Deal{}
	var (
		contactName  sql.NullString
		contactEmail sql.NullString
		contactPhone sql.NullString
		notes        sql.NullString
		closeDate    sql.NullTime
	)
	err := row.Scan(
		&d.ID, &d.OwnerID, &d.Title, &d.Company, &d.Value, &d.Stage, &d.Probability,
		&contactName, &contactEmail, &contactPhone, &notes, &closeDate,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.ContactName = contactName.String
	d.ContactEmail = contactEmail.String
	d.ContactPhone = contactPhone.String
	d.Notes = notes.String
	if closeDate.Valid {
		d.ExpectedCloseDate = &closeDate.Time
	}
	return d, nil
}
