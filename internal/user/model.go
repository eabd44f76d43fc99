// File: internal/user/model.go
package user

import (
	"time"
)

// userRecord is the flat GORM model backing the User aggregate.
type userRecord struct {
	ID            uint64   `gorm:"primaryKey;autoIncrement"`
	Email         string   `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  string   `gorm:"type:varchar(255);not null"`
	Role          string   `gorm:"type:varchar(20);not null;default:'CUSTOMER'"`
	StreetAddress string   `gorm:"type:varchar(255);not null"`
	City          string   `gorm:"type:varchar(100);not null"`
	PostalCode    string   `gorm:"type:varchar(5);not null"`
	FirstName     string   `gorm:"type:varchar(100);not null"`
	LastName      string   `gorm:"type:varchar(100);not null"`
	PhoneNumber   string   `gorm:"type:varchar(20);not null"`
	Latitude      *float64 // NULL when no location is set
	Longitude     *float64
	IsActive      bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for the user model.
func (userRecord) TableName() string {
	return "users"
}

// toRecord flattens an aggregate into its storage shape.
func toRecord(u User) userRecord {
	rec := userRecord{
		ID:            u.id,
		Email:         u.email.value,
		PasswordHash:  u.passwordHash,
		Role:          string(u.role),
		StreetAddress: u.address.street,
		City:          u.address.city,
		PostalCode:    u.address.postalCode,
		FirstName:     u.contactInfo.firstName,
		LastName:      u.contactInfo.lastName,
		PhoneNumber:   u.contactInfo.phoneNumber,
		IsActive:      u.isActive,
		CreatedAt:     u.createdAt,
		UpdatedAt:     u.updatedAt,
	}
	if u.location != nil {
		lat := u.location.latitude
		lon := u.location.longitude
		rec.Latitude = &lat
		rec.Longitude = &lon
	}
	return rec
}

// fromRecord rehydrates an aggregate from its storage shape. Stored values
// were validated at construction time, so the value objects are rebuilt
// directly.
func fromRecord(rec userRecord) User {
	u := User{
		id:           rec.ID,
		email:        Email{value: rec.Email},
		passwordHash: rec.PasswordHash,
		role:         Role(rec.Role),
		address:      Address{street: rec.StreetAddress, city: rec.City, postalCode: rec.PostalCode},
		contactInfo:  ContactInfo{firstName: rec.FirstName, lastName: rec.LastName, phoneNumber: rec.PhoneNumber},
		isActive:     rec.IsActive,
		createdAt:    rec.CreatedAt,
		updatedAt:    rec.UpdatedAt,
	}
	if rec.Latitude != nil && rec.Longitude != nil {
		u.location = &Location{latitude: *rec.Latitude, longitude: *rec.Longitude}
	}
	return u
}

// --- DTOs for API requests/responses ---

// RegisterRequest is the transport shape of a registration command. Field
// checks beyond presence are the registration workflow's job, so the reported
// error order stays stable.
type RegisterRequest struct {
	Email           string   `json:"email" binding:"required"`
	Password        string   `json:"password" binding:"required"`
	ConfirmPassword string   `json:"confirm_password" binding:"required"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	PhoneNumber     string   `json:"phone_number"`
	Street          string   `json:"street"`
	City            string   `json:"city"`
	PostalCode      string   `json:"postal_code"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
}

// ChangePasswordRequest carries a credential change.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateRoleRequest carries a role change.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateLocationRequest carries a location change; both coordinates nil
// clears the location.
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// UserResponse is the flat projection of an account for transport.
type UserResponse struct {
	ID          uint64    `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Street      string    `json:"street"`
	City        string    `json:"city"`
	PostalCode  string    `json:"postal_code"`
	Country     string    `json:"country"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToUserResponse converts a User aggregate to its response projection.
func ToUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:          u.ID(),
		Email:       u.Email().String(),
		Role:        u.Role().String(),
		FirstName:   u.ContactInfo().FirstName(),
		LastName:    u.ContactInfo().LastName(),
		PhoneNumber: u.ContactInfo().PhoneNumber(),
		Street:      u.Address().Street(),
		City:        u.Address().City(),
		PostalCode:  u.Address().PostalCode(),
		Country:     Country,
		IsActive:    u.IsActive(),
		CreatedAt:   u.CreatedAt(),
		UpdatedAt:   u.UpdatedAt(),
	}
	if loc, ok := u.Location(); ok {
		lat := loc.Latitude()
		lon := loc.Longitude()
		resp.Latitude = &lat
		resp.Longitude = &lon
	}
	return resp
}

// ToUserResponses converts a slice of aggregates.
func ToUserResponses(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(u))
	}
	return responses
}
