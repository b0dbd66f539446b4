package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
	"github.com/farmkart/farmkart-api/internal/repository"
)

type AdminUserStore interface {
	UserListStore
	Delete(ctx context.Context, id uuid.UUID) error
}

type AuditLister interface {
	List(ctx context.Context, filter repository.AuditFilter) ([]model.AuditEntry, error)
}

type AdminService struct {
	users AdminUserStore
	audit AuditLister
}

func NewAdminService(users AdminUserStore, audit AuditLister) *AdminService {
	return &AdminService{users: users, audit: audit}
}

func (s *AdminService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]model.User, error) {
	return s.users.List(ctx, filter)
}

// VerifyUser marks the account and all its submitted documents approved.
func (s *AdminService) VerifyUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsVerified = true
	for i := range user.Documents {
		user.Documents[i].VerificationStatus = model.DocumentApproved
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type AdminUpdateUserInput struct {
	Role        *model.Role
	IsSuspended *bool
	IsVerified  *bool
}

func (s *AdminService) UpdateUser(ctx context.Context, id uuid.UUID, input AdminUpdateUserInput) (*model.User, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Role != nil {
		switch *input.Role {
		case model.RoleFarmer, model.RoleBusiness, model.RoleCustomer, model.RoleAdmin:
			user.Role = *input.Role
		default:
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *input.Role)
		}
	}
	if input.IsSuspended != nil {
		user.IsSuspended = *input.IsSuspended
	}
	if input.IsVerified != nil {
		user.IsVerified = *input.IsVerified
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID, principal model.Principal) error {
	if id == principal.ID {
		return fmt.Errorf("%w: cannot delete own account", ErrInvalidInput)
	}
	if _, err := s.getUser(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *AdminService) ListAudit(ctx context.Context, filter repository.AuditFilter) ([]model.AuditEntry, error) {
	return s.audit.List(ctx, filter)
}

func (s *AdminService) getUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}
