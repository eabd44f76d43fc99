// File: internal/user/service_test.go
package user

import (
	"context"
	"testing"

	"nopea_backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockRepository is a hand-written Repository test double with overridable
// behavior per method and call tracking for Save.
type mockRepository struct {
	saveFn          func(ctx context.Context, u User) (User, error)
	findByIDFn      func(ctx context.Context, id uint64) (User, error)
	findByEmailFn   func(ctx context.Context, email string) (User, error)
	existsByEmailFn func(ctx context.Context, email string) (bool, error)
	deleteByIDFn    func(ctx context.Context, id uint64) error
	findAllFn       func(ctx context.Context) ([]User, error)
	findActiveFn    func(ctx context.Context) ([]User, error)

	saveCalled bool
}

func (m *mockRepository) Save(ctx context.Context, u User) (User, error) {
	m.saveCalled = true
	if m.saveFn != nil {
		return m.saveFn(ctx, u)
	}
	u.id = 1
	return u, nil
}

func (m *mockRepository) FindByID(ctx context.Context, id uint64) (User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return User{}, common.ErrNotFound.WithDetails("User not found with this ID.")
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return User{}, common.ErrNotFound.WithDetails("User not found with this email.")
}

func (m *mockRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockRepository) DeleteByID(ctx context.Context, id uint64) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

func (m *mockRepository) FindAll(ctx context.Context) ([]User, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockRepository) FindActive(ctx context.Context) ([]User, error) {
	if m.findActiveFn != nil {
		return m.findActiveFn(ctx)
	}
	return nil, nil
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:           "matti.meikalainen@example.com",
		Password:        "salasana123",
		ConfirmPassword: "salasana123",
		FirstName:       "Matti",
		LastName:        "Meikalainen",
		PhoneNumber:     "+358401234567",
		Street:          "Mannerheimintie 1",
		City:            "Helsinki",
		PostalCode:      "00100",
	}
}

func newTestService(repo Repository) *ServiceImplementation {
	return NewService(repo, stubHasher{}, zap.NewNop())
}

func TestService_Register_Success(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.True(t, repo.saveCalled)
	assert.Equal(t, uint64(1), registered.ID())
	assert.Equal(t, RoleCustomer, registered.Role())
	assert.True(t, registered.IsActive())
	assert.False(t, registered.HasLocation())
	assert.Equal(t, "matti.meikalainen@example.com", registered.Email().String())
	assert.True(t, registered.VerifyPassword(stubHasher{}, "salasana123"))
}

func TestService_Register_WithCoordinates(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)

	lat, lon := 60.1699, 24.9384
	req := validRegisterRequest()
	req.Latitude = &lat
	req.Longitude = &lon

	registered, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	loc, ok := registered.Location()
	require.True(t, ok)
	assert.Equal(t, lat, loc.Latitude())
	assert.Equal(t, lon, loc.Longitude())
}

func TestService_Register_LoneCoordinateIgnored(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)

	lat := 60.1699
	req := validRegisterRequest()
	req.Latitude = &lat

	registered, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, registered.HasLocation())
}

func TestService_Register_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterRequest)
		wantMsg string
	}{
		{
			"password mismatch reported first",
			func(r *RegisterRequest) {
				r.ConfirmPassword = "different"
				r.FirstName = ""
				r.Street = ""
			},
			"Password and confirm password must match",
		},
		{
			"first name before last name",
			func(r *RegisterRequest) {
				r.FirstName = " "
				r.LastName = ""
			},
			"First name cannot be blank",
		},
		{
			"last name",
			func(r *RegisterRequest) { r.LastName = "" },
			"Last name cannot be blank",
		},
		{
			"phone before street",
			func(r *RegisterRequest) {
				r.PhoneNumber = ""
				r.Street = ""
			},
			"Phone number cannot be blank",
		},
		{
			"street",
			func(r *RegisterRequest) { r.Street = "" },
			"Street cannot be blank",
		},
		{
			"city",
			func(r *RegisterRequest) { r.City = "" },
			"City cannot be blank",
		},
		{
			"postal code",
			func(r *RegisterRequest) { r.PostalCode = "  " },
			"Postal code cannot be blank",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}
			svc := newTestService(repo)

			req := validRegisterRequest()
			tt.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			require.Error(t, err)
			assert.True(t, common.IsInvalidArgument(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.False(t, repo.saveCalled)
		})
	}
}

func TestService_Register_InvalidEmail(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)

	req := validRegisterRequest()
	req.Email = "not-an-email"

	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, common.IsInvalidArgument(err))
	assert.False(t, repo.saveCalled)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := &mockRepository{
		existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.Error(t, err)
	assert.True(t, common.IsAlreadyExists(err))
	assert.Contains(t, err.Error(), "matti.meikalainen@example.com")
	assert.False(t, repo.saveCalled)
}

func TestService_Register_InvalidPostalCode(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)

	req := validRegisterRequest()
	req.PostalCode = "123"

	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, common.IsInvalidArgument(err))
	assert.False(t, repo.saveCalled)
}

func TestService_ChangePassword(t *testing.T) {
	existing := newTestUser(t)
	existing.id = 42
	repo := &mockRepository{
		findByIDFn: func(ctx context.Context, id uint64) (User, error) {
			require.Equal(t, uint64(42), id)
			return existing, nil
		},
		saveFn: func(ctx context.Context, u User) (User, error) {
			return u, nil
		},
	}
	svc := newTestService(repo)

	changed, err := svc.ChangePassword(context.Background(), 42, "uusisalasana")
	require.NoError(t, err)
	assert.True(t, changed.VerifyPassword(stubHasher{}, "uusisalasana"))

	_, err = svc.ChangePassword(context.Background(), 42, "short")
	require.Error(t, err)
	assert.True(t, common.IsInvalidArgument(err))
}

func TestService_UpdateRole(t *testing.T) {
	existing := newTestUser(t)
	existing.id = 42
	repo := &mockRepository{
		findByIDFn: func(ctx context.Context, id uint64) (User, error) { return existing, nil },
		saveFn:     func(ctx context.Context, u User) (User, error) { return u, nil },
	}
	svc := newTestService(repo)

	promoted, err := svc.UpdateRole(context.Background(), 42, "COURIER")
	require.NoError(t, err)
	assert.Equal(t, RoleCourier, promoted.Role())

	_, err = svc.UpdateRole(context.Background(), 42, "bogus")
	require.Error(t, err)
	assert.True(t, common.IsInvalidArgument(err))
}

func TestService_UpdateLocation(t *testing.T) {
	existing := newTestUser(t)
	existing.id = 42
	repo := &mockRepository{
		findByIDFn: func(ctx context.Context, id uint64) (User, error) { return existing, nil },
		saveFn:     func(ctx context.Context, u User) (User, error) { return u, nil },
	}
	svc := newTestService(repo)

	lat, lon := 60.1699, 24.9384
	located, err := svc.UpdateLocation(context.Background(), 42, &lat, &lon)
	require.NoError(t, err)
	assert.True(t, located.HasLocation())

	// Out-of-area coordinates are rejected before any save.
	badLat := 48.8566
	badLon := 2.3522
	repo.saveCalled = false
	_, err = svc.UpdateLocation(context.Background(), 42, &badLat, &badLon)
	require.Error(t, err)
	assert.True(t, common.IsInvalidArgument(err))
	assert.False(t, repo.saveCalled)

	// Both nil clears the location.
	cleared, err := svc.UpdateLocation(context.Background(), 42, nil, nil)
	require.NoError(t, err)
	assert.False(t, cleared.HasLocation())
}

func TestService_DeactivateAndActivate(t *testing.T) {
	existing := newTestUser(t)
	existing.id = 42
	repo := &mockRepository{
		findByIDFn: func(ctx context.Context, id uint64) (User, error) { return existing, nil },
		saveFn:     func(ctx context.Context, u User) (User, error) { return u, nil },
	}
	svc := newTestService(repo)

	inactive, err := svc.Deactivate(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, inactive.IsActive())

	active, err := svc.Activate(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, active.IsActive())
}

func TestService_List(t *testing.T) {
	all := []User{newTestUser(t), newTestUser(t).Deactivate()}
	repo := &mockRepository{
		findAllFn:    func(ctx context.Context) ([]User, error) { return all, nil },
		findActiveFn: func(ctx context.Context) ([]User, error) { return all[:1], nil },
	}
	svc := newTestService(repo)

	users, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	active, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestService_Delete_NotFound(t *testing.T) {
	deleted := false
	repo := &mockRepository{
		deleteByIDFn: func(ctx context.Context, id uint64) error {
			deleted = true
			return nil
		},
	}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, common.IsNotFound(err))
	assert.False(t, deleted)
}

func TestService_Delete_Success(t *testing.T) {
	existing := newTestUser(t)
	existing.id = 42
	deleted := false
	repo := &mockRepository{
		findByIDFn: func(ctx context.Context, id uint64) (User, error) { return existing, nil },
		deleteByIDFn: func(ctx context.Context, id uint64) error {
			require.Equal(t, uint64(42), id)
			deleted = true
			return nil
		},
	}
	svc := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), 42))
	assert.True(t, deleted)
}
