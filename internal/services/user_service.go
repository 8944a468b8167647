package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"aipipeline/internal/models"
	"aipipeline/internal/repositories"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

const refreshTTL = 30 * 24 * time.Hour

type UserService interface {
	Register(name, email, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	IssueRefresh(userID int, token string) error
	RotateRefresh(oldToken, newToken string) (*models.User, error)
}

type userService struct {
	repo         repositories.UserRepository
	authService  AuthService
	emailService EmailService // may be nil, registration must not depend on SMTP
}

func NewUserService(repo repositories.UserRepository, authService AuthService, emailService EmailService) UserService {
	return &userService{repo: repo, authService: authService, emailService: emailService}
}

func (s *userService) Register(name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Name: strings.TrimSpace(name), Email: email, PasswordHash: hash}
	if err := s.repo.Create(user); err != nil {
		// concurrent registration can still hit the unique index
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			log.Printf("[users][register] warning: welcome email to %s failed: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *userService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || strings.TrimSpace(user.PasswordHash) == "" {
		return nil, ErrInvalidCredentials
	}
	if err := s.authService.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) IssueRefresh(userID int, token string) error {
	return s.repo.UpdateRefresh(userID, token, time.Now().Add(refreshTTL))
}

func (s *userService) RotateRefresh(oldToken, newToken string) (*models.User, error) {
	current, err := s.repo.GetByRefreshToken(oldToken)
	if err != nil {
		return nil, err
	}
	if current == nil || current.RefreshExpiresAt == nil || time.Now().After(*current.RefreshExpiresAt) {
		return nil, ErrInvalidRefresh
	}
	rotated, err := s.repo.RotateRefresh(oldToken, newToken, time.Now().Add(refreshTTL))
	if err != nil {
		return nil, err
	}
	if rotated == nil {
		return nil, ErrInvalidRefresh
	}
	return rotated, nil
}
