package dao

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/db/dbtest"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

func newPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.NewPostgres(t)
	require.NoError(t, InitTables(db))
	require.NoError(t, Seed(db))

	return db
}

func TestPostgres_SeedIsIdempotent(t *testing.T) {
	db := newPostgres(t)

	require.NoError(t, Seed(db))

	profiles, err := NewProfileDAO(db).FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 3)

	cities, err := NewCatalogDAO(db).FindCities(context.Background())
	require.NoError(t, err)
	assert.Len(t, cities, 1)
}

func TestPostgres_Constraints(t *testing.T) {
	db := newPostgres(t)
	ctx := context.Background()

	admin, err := NewProfileDAO(db).FindByName(ctx, domain.ProfileAdmin)
	require.NoError(t, err)
	person, err := NewPersonDAO(db).Insert(ctx, Person{FullName: "Maria Souza", ProfileID: admin.ID, Active: true})
	require.NoError(t, err)

	categories, err := NewCatalogDAO(db).FindMissionCategories(ctx)
	require.NoError(t, err)
	cities, err := NewCatalogDAO(db).FindCities(ctx)
	require.NoError(t, err)

	t.Run("capacity guard", func(t *testing.T) {
		missions := NewMissionDAO(db)
		mission, err := missions.Insert(ctx, Mission{
			Title:       "Sandbags",
			Description: "Fill sandbags at the riverside",
			CategoryID:  categories[0].ID,
			StartsAt:    time.Now().Add(24 * time.Hour),
			TotalSlots:  1,
			Status:      string(domain.MissionActive),
			CreatorID:   person.ID,
		})
		require.NoError(t, err)

		require.NoError(t, missions.IncrementFilledSlots(ctx, mission.ID))
		assert.ErrorIs(t, missions.IncrementFilledSlots(ctx, mission.ID), domain.ErrCapacityExceeded)

		mission.FilledSlots = 5
		_, err = missions.Update(ctx, mission)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument), "got %v", err)

		require.NoError(t, missions.DecrementFilledSlots(ctx, mission.ID))
		require.NoError(t, missions.DecrementFilledSlots(ctx, mission.ID))
		got, err := missions.FindByID(ctx, mission.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.FilledSlots)
	})

	t.Run("single primary address", func(t *testing.T) {
		addresses := NewAddressDAO(db)
		base := Address{PersonID: person.ID, CityID: cities[0].ID, ZipCode: "95900-000", Street: "Rua A", Number: "1", District: "Centro"}

		first := base
		first.IsPrimary = true
		a1, err := addresses.Insert(ctx, first)
		require.NoError(t, err)

		_, err = addresses.Insert(ctx, first)
		assert.True(t, errors.Is(err, domain.ErrConflict), "got %v", err)

		a2, err := addresses.Insert(ctx, base)
		require.NoError(t, err)

		err = NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
			return addresses.SetPrimary(ctx, person.ID, a2.ID)
		})
		require.NoError(t, err)

		primary, err := addresses.FindPrimary(ctx, person.ID)
		require.NoError(t, err)
		assert.Equal(t, a2.ID, primary.ID)

		old, err := addresses.FindByID(ctx, a1.ID)
		require.NoError(t, err)
		assert.False(t, old.IsPrimary)
	})

	t.Run("restrict delete", func(t *testing.T) {
		err := NewProfileDAO(db).Delete(ctx, admin.ID)
		assert.True(t, errors.Is(err, domain.ErrConflict), "got %v", err)
	})
}

func TestPostgres_ResetTables(t *testing.T) {
	db := newPostgres(t)
	ctx := context.Background()

	admin, err := NewProfileDAO(db).FindByName(ctx, domain.ProfileAdmin)
	require.NoError(t, err)
	_, err = NewPersonDAO(db).Insert(ctx, Person{FullName: "Maria Souza", ProfileID: admin.ID, Active: true})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE leftover (id int)").Error)

	require.NoError(t, ResetTables(db))

	var people int64
	require.NoError(t, db.Model(&Person{}).Count(&people).Error)
	assert.Zero(t, people)

	profiles, err := NewProfileDAO(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, profiles)

	assert.False(t, db.Migrator().HasTable("leftover"))
	assert.True(t, db.Migrator().HasTable(&Need{}))

	require.NoError(t, Seed(db))
	profiles, err = NewProfileDAO(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 3)
}
