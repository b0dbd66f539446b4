package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/auth"
	"github.com/farmkart/farmkart-api/internal/model"
)

const (
	maxFailedLogins = 5
	lockoutDuration = 15 * time.Minute
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
}

type AuthService struct {
	users  UserStore
	issuer *auth.Issuer
	now    func() time.Time
}

func NewAuthService(users UserStore, issuer *auth.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer, now: time.Now}
}

type RegisterInput struct {
	FullName string
	Email    string
	Mobile   string
	Password string
	Role     model.Role

	// Role-specific profile fields, applied according to Role.
	FarmName        string
	FarmAddress     model.Address
	FarmGeolocation model.Geolocation
	CropsGrown      []string
	BusinessName    string

	CompanyName              string
	BusinessType             string
	CompanyAddress           string
	GSTIN                    string
	CIN                      string
	ContactPersonName        string
	ContactPersonDesignation string
	ProduceRequired          []string

	DeliveryAddress string
	BillingAddress  string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.FullName == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		return nil, fmt.Errorf("%w: fullName, email, password and role are required", ErrInvalidInput)
	}
	if input.Role == model.RoleAdmin {
		return nil, fmt.Errorf("%w: admin registration is not allowed", ErrPermissionDenied)
	}
	switch input.Role {
	case model.RoleFarmer, model.RoleBusiness, model.RoleCustomer:
	default:
		return nil, fmt.Errorf("%w: invalid role", ErrInvalidInput)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FullName:     input.FullName,
		Email:        input.Email,
		Mobile:       input.Mobile,
		PasswordHash: string(hash),
		Role:         input.Role,
		IsVerified:   true,
		Rating:       model.DefaultFarmerRating,
	}
	applyRoleFields(user, input)

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()
	if user.Locked(now) {
		return nil, ErrAccountLocked
	}
	if user.IsSuspended {
		return nil, ErrAccountSuspended
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordFailedLogin(ctx, user, now)
		return nil, ErrInvalidCredentials
	}

	user.FailedLoginAttempts = 0
	user.LockUntil = nil
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user.ID, now)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// recordFailedLogin counts strikes; the fifth locks the account for
// fifteen minutes and resets the counter.
func (s *AuthService) recordFailedLogin(ctx context.Context, user *model.User, now time.Time) {
	user.FailedLoginAttempts++
	if user.FailedLoginAttempts >= maxFailedLogins {
		lockUntil := now.Add(lockoutDuration)
		user.LockUntil = &lockUntil
		user.FailedLoginAttempts = 0
	}
	_ = s.users.Save(ctx, user)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func applyRoleFields(user *model.User, input RegisterInput) {
	switch input.Role {
	case model.RoleFarmer:
		user.FarmName = input.FarmName
		user.FarmAddress = input.FarmAddress
		user.FarmGeolocation = input.FarmGeolocation
		user.CropsGrown = input.CropsGrown
		user.BusinessName = input.BusinessName
	case model.RoleBusiness:
		user.CompanyName = input.CompanyName
		user.BusinessType = input.BusinessType
		user.CompanyAddress = input.CompanyAddress
		user.GSTIN = input.GSTIN
		user.CIN = input.CIN
		user.ContactPersonName = input.ContactPersonName
		user.ContactPersonDesignation = input.ContactPersonDesignation
		user.ProduceRequired = input.ProduceRequired
	case model.RoleCustomer:
		user.DeliveryAddress = input.DeliveryAddress
		user.BillingAddress = input.BillingAddress
	}
}
