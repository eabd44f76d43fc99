// File: internal/user/repository_test.go
package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"nopea_backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestRepository opens a fresh in-memory sqlite database per test. The DSN
// is keyed by test name so parallel tests never share state.
func newTestRepository(t *testing.T) Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userRecord{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewGORMRepository(db)
}

func persistedUser(t *testing.T, repo Repository, email string) User {
	t.Helper()
	u := newTestUser(t)
	addr, err := NewEmail(email)
	require.NoError(t, err)
	u.email = addr
	saved, err := repo.Save(context.Background(), u)
	require.NoError(t, err)
	return saved
}

func TestGORMRepository_SaveAssignsID(t *testing.T) {
	repo := newTestRepository(t)

	saved := persistedUser(t, repo, "matti@example.com")
	assert.NotZero(t, saved.ID())
	assert.Equal(t, "matti@example.com", saved.Email().String())
	assert.True(t, saved.IsActive())
}

func TestGORMRepository_SaveUpdatesExistingRow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	saved := persistedUser(t, repo, "matti@example.com")

	promoted, err := repo.Save(ctx, saved.UpdateRole(RoleMerchant))
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), promoted.ID())
	assert.Equal(t, RoleMerchant, promoted.Role())

	reloaded, err := repo.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, RoleMerchant, reloaded.Role())

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGORMRepository_DuplicateEmailRejected(t *testing.T) {
	repo := newTestRepository(t)

	persistedUser(t, repo, "matti@example.com")

	dup := newTestUser(t)
	email, err := NewEmail("matti@example.com")
	require.NoError(t, err)
	dup.email = email

	_, err = repo.Save(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, common.IsAlreadyExists(err))
	assert.Contains(t, err.Error(), "matti@example.com")
}

func TestGORMRepository_FindByID_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.FindByID(context.Background(), 12345)
	require.Error(t, err)
	assert.True(t, common.IsNotFound(err))
}

func TestGORMRepository_FindByEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	saved := persistedUser(t, repo, "maija@example.com")

	found, err := repo.FindByEmail(ctx, "maija@example.com")
	require.NoError(t, err)
	assert.True(t, saved.Equals(found))
	assert.Equal(t, saved.ContactInfo(), found.ContactInfo())
	assert.Equal(t, saved.Address(), found.Address())

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	require.Error(t, err)
	assert.True(t, common.IsNotFound(err))
}

func TestGORMRepository_ExistsByEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	exists, err := repo.ExistsByEmail(ctx, "matti@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	persistedUser(t, repo, "matti@example.com")

	exists, err = repo.ExistsByEmail(ctx, "matti@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGORMRepository_FindActiveFilters(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	active := persistedUser(t, repo, "active@example.com")
	inactive := persistedUser(t, repo, "inactive@example.com")
	_, err := repo.Save(ctx, inactive.Deactivate())
	require.NoError(t, err)

	users, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, active.Equals(users[0]))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGORMRepository_DeleteByID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	saved := persistedUser(t, repo, "matti@example.com")
	require.NoError(t, repo.DeleteByID(ctx, saved.ID()))

	_, err := repo.FindByID(ctx, saved.ID())
	require.Error(t, err)
	assert.True(t, common.IsNotFound(err))
}

func TestGORMRepository_LocationRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	loc, err := NewLocation(60.1699, 24.9384)
	require.NoError(t, err)

	withLocation := newTestUser(t).UpdateLocation(&loc)
	saved, err := repo.Save(ctx, withLocation)
	require.NoError(t, err)

	reloaded, err := repo.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	got, ok := reloaded.Location()
	require.True(t, ok)
	assert.Equal(t, 60.1699, got.Latitude())
	assert.Equal(t, 24.9384, got.Longitude())

	// Clearing the location persists as NULL coordinates.
	cleared, err := repo.Save(ctx, reloaded.UpdateLocation(nil))
	require.NoError(t, err)
	reloaded, err = repo.FindByID(ctx, cleared.ID())
	require.NoError(t, err)
	assert.False(t, reloaded.HasLocation())
}

func TestGORMRepository_TimestampsSurviveRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	saved := persistedUser(t, repo, "matti@example.com")

	reloaded, err := repo.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	assert.WithinDuration(t, saved.CreatedAt(), reloaded.CreatedAt(), time.Second)
	assert.WithinDuration(t, saved.UpdatedAt(), reloaded.UpdatedAt(), time.Second)
}
