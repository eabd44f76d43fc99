// File: internal/user/user.go
package user

import (
	"strings"
	"time"

	"nopea_backend/internal/common"
)

const minPasswordLength = 8

// PasswordHasher is the credential-hashing capability consumed by the
// aggregate. It is injected explicitly so the aggregate carries no ambient
// state and tests can use a deterministic stub.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// User is the aggregate root for an account. It is immutable: every state
// change returns a new snapshot with updatedAt refreshed and all other fields
// carried over unchanged.
type User struct {
	id           uint64 // zero until persisted
	email        Email
	passwordHash string
	role         Role
	address      Address
	contactInfo  ContactInfo
	location     *Location
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser validates and hashes the password and returns a new active User
// with fresh timestamps and an unset id. location may be nil.
func NewUser(hasher PasswordHasher, email Email, password string, address Address, contactInfo ContactInfo, role Role, location *Location) (User, error) {
	if err := validatePassword(password); err != nil {
		return User{}, err
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return User{}, err
	}
	now := time.Now().UTC()
	return User{
		email:        email,
		passwordHash: hash,
		role:         role,
		address:      address,
		contactInfo:  contactInfo,
		location:     cloneLocation(location),
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func validatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return common.NewInvalidArgumentError("Password cannot be blank")
	}
	if len(password) < minPasswordLength {
		return common.NewInvalidArgumentError("Password must be at least 8 characters")
	}
	return nil
}

// ChangePassword validates and hashes the new password and returns a snapshot
// with the updated hash.
func (u User) ChangePassword(hasher PasswordHasher, newPassword string) (User, error) {
	if err := validatePassword(newPassword); err != nil {
		return User{}, err
	}
	hash, err := hasher.Hash(newPassword)
	if err != nil {
		return User{}, err
	}
	next := u
	next.passwordHash = hash
	next.updatedAt = time.Now().UTC()
	return next, nil
}

// VerifyPassword reports whether the plaintext matches the stored hash. It
// has no side effects and never fails on mismatch.
func (u User) VerifyPassword(hasher PasswordHasher, password string) bool {
	return hasher.Verify(password, u.passwordHash)
}

// UpdateRole returns a snapshot with the new role.
func (u User) UpdateRole(newRole Role) User {
	next := u
	next.role = newRole
	next.updatedAt = time.Now().UTC()
	return next
}

// UpdateAddress returns a snapshot with the new address.
func (u User) UpdateAddress(newAddress Address) User {
	next := u
	next.address = newAddress
	next.updatedAt = time.Now().UTC()
	return next
}

// UpdateContactInfo returns a snapshot with the new contact info.
func (u User) UpdateContactInfo(newContactInfo ContactInfo) User {
	next := u
	next.contactInfo = newContactInfo
	next.updatedAt = time.Now().UTC()
	return next
}

// UpdateLocation returns a snapshot with the new location. A nil location
// clears it.
func (u User) UpdateLocation(newLocation *Location) User {
	next := u
	next.location = cloneLocation(newLocation)
	next.updatedAt = time.Now().UTC()
	return next
}

// Deactivate returns an inactive snapshot. Deactivating an already-inactive
// user is a no-op state-wise but still refreshes updatedAt.
func (u User) Deactivate() User {
	next := u
	next.isActive = false
	next.updatedAt = time.Now().UTC()
	return next
}

// Activate returns an active snapshot. Idempotent like Deactivate.
func (u User) Activate() User {
	next := u
	next.isActive = true
	next.updatedAt = time.Now().UTC()
	return next
}

// HasPermission delegates to the role's permission set.
func (u User) HasPermission(p Permission) bool {
	return u.role.HasPermission(p)
}

// An inactive user holds no capability regardless of role.
func (u User) CanPlaceOrder() bool     { return u.isActive && u.role.CanPlaceOrder() }
func (u User) CanManageMerchant() bool { return u.isActive && u.role.CanManageMerchant() }
func (u User) CanDeliverOrder() bool   { return u.isActive && u.role.CanDeliverOrder() }

func (u User) IsAdmin() bool { return u.role == RoleAdmin }

func (u User) HasLocation() bool { return u.location != nil }

// DistanceTo returns the distance in kilometers to other, or ok=false when no
// location is set.
func (u User) DistanceTo(other Location) (float64, bool) {
	if u.location == nil {
		return 0, false
	}
	return u.location.DistanceTo(other), true
}

// IsWithinDeliveryRadius is false when no location is set.
func (u User) IsWithinDeliveryRadius(center Location, radiusKm float64) bool {
	if u.location == nil {
		return false
	}
	return u.location.IsWithinDeliveryRadius(center, radiusKm)
}

// Equals implements aggregate identity: two users are equal iff both are
// persisted and their ids match.
func (u User) Equals(other User) bool {
	return u.id != 0 && u.id == other.id
}

func (u User) ID() uint64 { return u.id }

func (u User) Email() Email { return u.email }

func (u User) Role() Role { return u.role }

func (u User) Address() Address { return u.address }

func (u User) ContactInfo() ContactInfo { return u.contactInfo }

// Location returns the optional location; ok is false when none is set.
func (u User) Location() (Location, bool) {
	if u.location == nil {
		return Location{}, false
	}
	return *u.location, true
}

func (u User) IsActive() bool { return u.isActive }

func (u User) CreatedAt() time.Time { return u.createdAt }

func (u User) UpdatedAt() time.Time { return u.updatedAt }

func cloneLocation(l *Location) *Location {
	if l == nil {
		return nil
	}
	copied := *l
	return &copied
}
