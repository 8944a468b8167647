package services

import (
	"time"

	"aipipeline/internal/models"
	"aipipeline/internal/repositories"
)

// in-memory repositories for service tests

type fakeUserRepo struct {
	users  map[string]*models.User // by email
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if _, ok := r.users[user.Email]; ok {
		return repositories.ErrDuplicateEmail
	}
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.RefreshToken = &token
			u.RefreshExpiresAt = &expiresAt
		}
	}
	return nil
}

func (r *fakeUserRepo) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	for _, u := range r.users {
		if u.RefreshToken != nil && *u.RefreshToken == oldToken {
			u.RefreshToken = &newToken
			u.RefreshExpiresAt = &newExpiresAt
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByRefreshToken(token string) (*models.User, error) {
	for _, u := range r.users {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeDealRepo struct {
	deals  map[int]*models.Deal
	nextID int
}

func newFakeDealRepo() *fakeDealRepo {
	return &fakeDealRepo{deals: map[int]*models.Deal{}, nextID: 1}
}

func (r *fakeDealRepo) Create(deal *models.Deal) (int64, error) {
	id := r.nextID
	r.nextID++
	cp := *deal
	cp.ID = id
	r.deals[id] = &cp
	return int64(id), nil
}

func (r *fakeDealRepo) GetByID(id int) (*models.Deal, error) {
	d, ok := r.deals[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDealRepo) ListByOwner(ownerID int, stage string) ([]models.Deal, error) {
	var out []models.Deal
	for id := 1; id < r.nextID; id++ {
		d, ok := r.deals[id]
		if !ok || d.OwnerID != ownerID {
			continue
		}
		if stage != "" && d.Stage != stage {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDealRepo) Update(deal *models.Deal) error {
	cp := *deal
	cp.UpdatedAt = time.Now()
	r.deals[deal.ID] = &cp
	return nil
}

func (r *fakeDealRepo) UpdateStage(id int, stage string) error {
	if d, ok := r.deals[id]; ok {
		d.Stage = stage
		d.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeDealRepo) Delete(id int) error {
	delete(r.deals, id)
	return nil
}

type fakeActivityRepo struct {
	byDeal map[int][]models.Activity
	deals  *fakeDealRepo
	nextID int
}

func newFakeActivityRepo(deals *fakeDealRepo) *fakeActivityRepo {
	return &fakeActivityRepo{byDeal: map[int][]models.Activity{}, deals: deals, nextID: 1}
}

func (r *fakeActivityRepo) Add(activity *models.Activity) error {
	activity.ID = r.nextID
	r.nextID++
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	r.byDeal[activity.DealID] = append(r.byDeal[activity.DealID], *activity)
	return nil
}

func (r *fakeActivityRepo) ListByDeal(dealID int) ([]models.Activity, error) {
	return r.byDeal[dealID], nil
}

func (r *fakeActivityRepo) ListByOwner(ownerID int) (map[int][]models.Activity, error) {
	out := map[int][]models.Activity{}
	for dealID, acts := range r.byDeal {
		d, _ := r.deals.GetByID(dealID)
		if d != nil && d.OwnerID == ownerID {
			out[dealID] = acts
		}
	}
	return out, nil
}

type fakeNotifier struct {
	closed []*models.Deal
}

func (n *fakeNotifier) DealClosed(deal *models.Deal) error {
	n.closed = append(n.closed, deal)
	return nil
}
