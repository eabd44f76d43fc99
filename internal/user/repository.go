// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nopea_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the persistence contract consumed by the core. Save is
// insert-or-update and must assign an id on first insert. The backing store
// must enforce email uniqueness; the workflow's existence pre-check is only a
// fast path.
type Repository interface {
	Save(ctx context.Context, u User) (User, error)
	FindByID(ctx context.Context, id uint64) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	DeleteByID(ctx context.Context, id uint64) error
	FindAll(ctx context.Context) ([]User, error)
	FindActive(ctx context.Context) ([]User, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Save persists the aggregate and returns the stored snapshot with its id
// assigned. Unique-index violations surface as ALREADY_EXISTS: the storage
// constraint is the correctness backstop for concurrent registrations that
// both pass the existence pre-check.
func (r *gormRepository) Save(ctx context.Context, u User) (User, error) {
	rec := toRecord(u)
	var err error
	if rec.ID == 0 {
		err = r.db.WithContext(ctx).Create(&rec).Error
	} else {
		err = r.db.WithContext(ctx).Save(&rec).Error
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return User{}, common.NewAlreadyExistsError(
				fmt.Sprintf("User with email %s already exists", rec.Email))
		}
		return User{}, err
	}
	return fromRecord(rec), nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uint64) (User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, common.ErrNotFound.WithDetails("User not found with this ID.")
		}
		return User{}, err
	}
	return fromRecord(rec), nil
}

func (r *gormRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, common.ErrNotFound.WithDetails("User not found with this email.")
		}
		return User{}, err
	}
	return fromRecord(rec), nil
}

func (r *gormRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userRecord{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormRepository) DeleteByID(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&userRecord{}, id).Error
}

func (r *gormRepository) FindAll(ctx context.Context) ([]User, error) {
	var recs []userRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (r *gormRepository) FindActive(ctx context.Context) ([]User, error) {
	var recs []userRecord
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func fromRecords(recs []userRecord) []User {
	users := make([]User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, fromRecord(rec))
	}
	return users
}

// isDuplicateKeyError covers GORM's translated error plus the raw message
// shapes of the Postgres and sqlite drivers.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
