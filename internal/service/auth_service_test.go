package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmkart/farmkart-api/internal/auth"
	"github.com/farmkart/farmkart-api/internal/model"
)

func newAuthTestService(users *fakeUserStore) *AuthService {
	svc := NewAuthService(users, auth.NewIssuer("test-secret", time.Hour))
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func registeredUser(t *testing.T, users *fakeUserStore, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		FullName:     "Test Farmer",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleFarmer,
		Rating:       model.DefaultFarmerRating,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestRegister(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthTestService(users)

	user, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Ravi Kumar",
		Email:    "ravi@example.com",
		Password: "secret123",
		Role:     model.RoleFarmer,
		FarmName: "Green Acres",
	})
	require.NoError(t, err)

	assert.Equal(t, "Green Acres", user.FarmName)
	assert.Equal(t, model.DefaultFarmerRating, user.Rating)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegisterRefusesAdminRole(t *testing.T) {
	svc := newAuthTestService(newFakeUserStore())

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Sneaky",
		Email:    "sneaky@example.com",
		Password: "secret123",
		Role:     model.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthTestService(users)
	registeredUser(t, users, "taken@example.com", "secret123")

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Second",
		Email:    "taken@example.com",
		Password: "secret123",
		Role:     model.RoleCustomer,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthTestService(users)
	user := registeredUser(t, users, "login@example.com", "secret123")

	result, err := svc.Login(context.Background(), "login@example.com", "secret123")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthTestService(users)
	registeredUser(t, users, "login@example.com", "secret123")

	_, err := svc.Login(context.Background(), "login@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLockoutAfterFiveFailures(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthTestService(users)
	user := registeredUser(t, users, "locked@example.com", "secret123")

	for i := 0; i < 5; i++ {
		_, err := svc.Login(context.Background(), "locked@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	stored := users.users[user.ID]
	require.NotNil(t, stored.LockUntil)
	assert.Equal(t, svc.now().Add(15*time.Minute), *stored.LockUntil)

	// Even the right password is refused while the lock holds.
	_, err := svc.Login(context.Background(), "locked@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestLoginResetsFailureCounter(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthTestService(users)
	user := registeredUser(t, users, "reset@example.com", "secret123")

	for i := 0; i < 4; i++ {
		_, err := svc.Login(context.Background(), "reset@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	assert.Equal(t, 4, users.users[user.ID].FailedLoginAttempts)

	_, err := svc.Login(context.Background(), "reset@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, 0, users.users[user.ID].FailedLoginAttempts)
}

func TestLoginSuspendedAccount(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthTestService(users)
	user := registeredUser(t, users, "suspended@example.com", "secret123")
	users.users[user.ID].IsSuspended = true

	_, err := svc.Login(context.Background(), "suspended@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountSuspended)
}
