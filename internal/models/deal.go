package models

import (
	"time"
)

type Deal struct {
	ID          int     `json:"id"`
	OwnerID     int     `json:"owner_id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Value       float64 `json:"value"`
	Stage       string  `json:"stage"`
	Probability int     `json:"probability"`

	ContactName       string     `json:"contact_name,omitempty"`
	ContactEmail      string     `json:"contact_email,omitempty"`
	ContactPhone      string     `json:"contact_phone,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Loaded alongside the deal; the dashboard uses the count as a
	// follow-up signal.
	Activities []Activity `json:"activities"`
}

type Activity struct {
	ID        int       `json:"id"`
	DealID    int       `json:"deal_id"`
	Kind      string    `json:"kind"` // call, email, meeting, note
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateDealRequest struct {
	Title             string     `json:"title" binding:"required"`
	Company           string     `json:"company" binding:"required"`
	Value             *float64   `json:"value" binding:"required"`
	Stage             string     `json:"stage"`
	Probability       int        `json:"probability"`
	ContactName       string     `json:"contact_name"`
	ContactEmail      string     `json:"contact_email"`
	ContactPhone      string     `json:"contact_phone"`
	Notes             string     `json:"notes"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
}

type UpdateDealRequest struct {
	Title             string     `json:"title" binding:"required"`
	Company           string     `json:"company" binding:"required"`
	Value             *float64   `json:"value" binding:"required"`
	Stage             string     `json:"stage"`
	Probability       int        `json:"probability"`
	ContactName       string     `json:"contact_name"`
	ContactEmail      string     `json:"contact_email"`
	ContactPhone      string     `json:"contact_phone"`
	Notes             string     `json:"notes"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
}

type UpdateStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

type AddActivityRequest struct {
	Kind string `json:"kind" binding:"required"`
	Note string `json:"note"`
}
