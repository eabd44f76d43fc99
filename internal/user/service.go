// File: internal/user/service.go
package user

import (
	"context"
	"fmt"
	"strings"

	"nopea_backend/internal/common"

	"go.uber.org/zap"
)

// Service defines the application operations on accounts.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (User, error)
	GetByID(ctx context.Context, id uint64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, activeOnly bool) ([]User, error)
	ChangePassword(ctx context.Context, id uint64, newPassword string) (User, error)
	UpdateRole(ctx context.Context, id uint64, rawRole string) (User, error)
	UpdateLocation(ctx context.Context, id uint64, latitude, longitude *float64) (User, error)
	Deactivate(ctx context.Context, id uint64) (User, error)
	Activate(ctx context.Context, id uint64) (User, error)
	Delete(ctx context.Context, id uint64) error
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo   Repository
	hasher PasswordHasher
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(repo Repository, hasher PasswordHasher, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// Register runs the registration workflow: structural precondition checks in
// a fixed order, value-object construction, a uniqueness pre-check, aggregate
// creation (hashing the credential) and a single persistence call. No storage
// interaction happens until the final save except the existence check.
func (s *ServiceImplementation) Register(ctx context.Context, req RegisterRequest) (User, error) {
	if err := validateRegisterRequest(req); err != nil {
		return User{}, err
	}

	email, err := NewEmail(req.Email)
	if err != nil {
		return User{}, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, email.String())
	if err != nil {
		s.logger.Error("Failed to check existing user by email", zap.Error(err), zap.String("email", email.String()))
		return User{}, fmt.Errorf("failed to check existing user by email: %w", err)
	}
	if exists {
		return User{}, common.NewAlreadyExistsError(
			fmt.Sprintf("User with email %s already exists", email.String()))
	}

	address, err := NewAddress(req.Street, req.City, req.PostalCode)
	if err != nil {
		return User{}, err
	}
	contactInfo, err := NewContactInfo(req.FirstName, req.LastName, req.PhoneNumber)
	if err != nil {
		return User{}, err
	}

	// A location is only built when both coordinates are supplied; a lone
	// coordinate is ignored.
	var location *Location
	if req.Latitude != nil && req.Longitude != nil {
		loc, err := NewLocation(*req.Latitude, *req.Longitude)
		if err != nil {
			return User{}, err
		}
		location = &loc
	}

	newUser, err := NewUser(s.hasher, email, req.Password, address, contactInfo, RoleCustomer, location)
	if err != nil {
		return User{}, err
	}

	saved, err := s.repo.Save(ctx, newUser)
	if err != nil {
		s.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", email.String()))
		return User{}, err
	}

	s.logger.Info("User registered successfully",
		zap.Uint64("userID", saved.ID()),
		zap.String("role", saved.Role().String()),
	)
	return saved, nil
}

// validateRegisterRequest checks structural preconditions before any
// value-object construction. The order is fixed so the first violated rule
// determines the reported error.
func validateRegisterRequest(req RegisterRequest) error {
	if req.Password != req.ConfirmPassword {
		return common.NewInvalidArgumentError("Password and confirm password must match")
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return common.NewInvalidArgumentError("First name cannot be blank")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return common.NewInvalidArgumentError("Last name cannot be blank")
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return common.NewInvalidArgumentError("Phone number cannot be blank")
	}
	if strings.TrimSpace(req.Street) == "" {
		return common.NewInvalidArgumentError("Street cannot be blank")
	}
	if strings.TrimSpace(req.City) == "" {
		return common.NewInvalidArgumentError("City cannot be blank")
	}
	if strings.TrimSpace(req.PostalCode) == "" {
		return common.NewInvalidArgumentError("Postal code cannot be blank")
	}
	return nil
}

func (s *ServiceImplementation) GetByID(ctx context.Context, id uint64) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *ServiceImplementation) List(ctx context.Context, activeOnly bool) ([]User, error) {
	if activeOnly {
		return s.repo.FindActive(ctx)
	}
	return s.repo.FindAll(ctx)
}

func (s *ServiceImplementation) ChangePassword(ctx context.Context, id uint64, newPassword string) (User, error) {
	return s.mutate(ctx, id, func(u User) (User, error) {
		return u.ChangePassword(s.hasher, newPassword)
	})
}

func (s *ServiceImplementation) UpdateRole(ctx context.Context, id uint64, rawRole string) (User, error) {
	role, err := ParseRole(rawRole)
	if err != nil {
		return User{}, err
	}
	return s.mutate(ctx, id, func(u User) (User, error) {
		return u.UpdateRole(role), nil
	})
}

func (s *ServiceImplementation) UpdateLocation(ctx context.Context, id uint64, latitude, longitude *float64) (User, error) {
	var location *Location
	if latitude != nil && longitude != nil {
		loc, err := NewLocation(*latitude, *longitude)
		if err != nil {
			return User{}, err
		}
		location = &loc
	}
	return s.mutate(ctx, id, func(u User) (User, error) {
		return u.UpdateLocation(location), nil
	})
}

func (s *ServiceImplementation) Deactivate(ctx context.Context, id uint64) (User, error) {
	return s.mutate(ctx, id, func(u User) (User, error) {
		return u.Deactivate(), nil
	})
}

func (s *ServiceImplementation) Activate(ctx context.Context, id uint64) (User, error) {
	return s.mutate(ctx, id, func(u User) (User, error) {
		return u.Activate(), nil
	})
}

func (s *ServiceImplementation) Delete(ctx context.Context, id uint64) error {
	// Load first so deleting an unknown id reports NOT_FOUND.
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.logger.Error("Failed to delete user", zap.Error(err), zap.Uint64("userID", id))
		return err
	}
	s.logger.Info("User deleted", zap.Uint64("userID", id))
	return nil
}

// mutate loads the aggregate, applies one copy-on-write mutation and saves
// the resulting snapshot.
func (s *ServiceImplementation) mutate(ctx context.Context, id uint64, fn func(User) (User, error)) (User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	next, err := fn(current)
	if err != nil {
		return User{}, err
	}
	saved, err := s.repo.Save(ctx, next)
	if err != nil {
		s.logger.Error("Failed to save user mutation", zap.Error(err), zap.Uint64("userID", id))
		return User{}, err
	}
	return saved, nil
}
