package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
	"github.com/farmkart/farmkart-api/internal/repository"
)

type UserListStore interface {
	UserStore
	List(ctx context.Context, filter repository.UserFilter) ([]model.User, error)
}

type ProfileService struct {
	users UserListStore
}

func NewProfileService(users UserListStore) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	FullName        *string
	Mobile          *string
	Bio             *string
	ProfilePicture  *string
	FarmName        *string
	FarmAddress     *model.Address
	FarmGeolocation *model.Geolocation
	CropsGrown      []string
	BusinessName    *string
	BankDetails     *model.BankDetails
	Documents       []model.Document
	Photos          []string
}

func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil && *input.FullName != "" {
		user.FullName = *input.FullName
	}
	if input.Mobile != nil {
		user.Mobile = *input.Mobile
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
	}
	if input.FarmName != nil {
		user.FarmName = *input.FarmName
	}
	if input.FarmAddress != nil {
		user.FarmAddress = *input.FarmAddress
	}
	if input.FarmGeolocation != nil {
		user.FarmGeolocation = *input.FarmGeolocation
	}
	if input.CropsGrown != nil {
		user.CropsGrown = input.CropsGrown
	}
	if input.BusinessName != nil {
		user.BusinessName = *input.BusinessName
	}
	if input.BankDetails != nil {
		user.BankDetails = *input.BankDetails
	}
	if input.Documents != nil {
		user.Documents = input.Documents
	}
	if input.Photos != nil {
		user.Photos = input.Photos
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: current and new passwords are required", ErrInvalidInput)
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.users.Save(ctx, user)
}

func (s *ProfileService) ListBuyers(ctx context.Context, keyword string) ([]model.User, error) {
	return s.users.List(ctx, repository.UserFilter{
		Role:    model.RoleCustomer,
		Keyword: keyword,
	})
}
