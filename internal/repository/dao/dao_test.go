package dao

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind error
		wantMsg  string
	}{
		{
			name:     "known unique constraint",
			err:      &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uni_people_cpf"},
			wantKind: domain.ErrConflict,
			wantMsg:  "a person with this CPF already exists",
		},
		{
			name:     "unknown unique constraint",
			err:      &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "something_else"},
			wantKind: domain.ErrConflict,
			wantMsg:  "record already exists",
		},
		{
			name:     "check constraint",
			err:      &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "chk_missions_filled_slots"},
			wantKind: domain.ErrInvalidArgument,
			wantMsg:  "value violates constraint chk_missions_filled_slots",
		},
		{
			name:     "foreign key",
			err:      &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "fk_missions_category"},
			wantKind: domain.ErrConflict,
			wantMsg:  "operation violates reference fk_missions_category",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError(tt.err)
			assert.True(t, errors.Is(err, tt.wantKind))
			assert.EqualError(t, err, tt.wantMsg)
		})
	}

	t.Run("passthrough", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.Same(t, plain, mapError(plain))
		assert.NoError(t, mapError(nil))
	})

	t.Run("record not found", func(t *testing.T) {
		err := mapFindError(gorm.ErrRecordNotFound, "mission", 7)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.EqualError(t, err, "mission with ID 7 not found")
	})
}

func TestMissionDAO_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "missions" WHERE "missions"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewMissionDAO(db).FindByID(context.Background(), 7)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissionDAO_IncrementFilledSlots(t *testing.T) {
	t.Run("full mission", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE "missions" SET "filled_slots"=filled_slots \+ 1,"updated_at"=\$1 WHERE id = \$2 AND filled_slots < total_slots`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewMissionDAO(db).IncrementFilledSlots(context.Background(), 3)
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("open slot", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE "missions" SET "filled_slots"=filled_slots \+ 1`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewMissionDAO(db).IncrementFilledSlots(context.Background(), 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMissionDAO_DecrementFilledSlots(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "missions" SET "filled_slots"=GREATEST\(filled_slots - 1, 0\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewMissionDAO(db).DecrementFilledSlots(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileDAO_Insert_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`INSERT INTO "profiles"`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uni_profiles_name"})

	_, err := NewProfileDAO(db).Insert(context.Background(), Profile{Name: "ADMIN"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.EqualError(t, err, "a profile with this name already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileDAO_FindByName_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewProfileDAO(db).FindByName(context.Background(), "GHOST")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.EqualError(t, err, `profile "GHOST" not found`)
}

func TestSetFlag(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "needs" SET "active"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "needs" SET "active"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	needs := NewNeedDAO(db)
	assert.NoError(t, needs.SetActive(context.Background(), 1, false))

	err := needs.SetActive(context.Background(), 2, false)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNeedDAO_Update_Columns(t *testing.T) {
	need := Need{ID: 4, CollectionPointID: 1, ItemTypeID: 2, QuantityNeeded: decimal.NewFromInt(10), Priority: "high"}

	t.Run("received untouched", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE "needs" SET "collection_point_id"=\$1,"item_type_id"=\$2,"quantity_needed"=\$3,"priority"=\$4,"updated_at"=\$5 WHERE .*"id" = \$6`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := NewNeedDAO(db).Update(context.Background(), need, false)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("received written when given", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE "needs" SET "collection_point_id"=\$1,"item_type_id"=\$2,"quantity_needed"=\$3,"quantity_received"=\$4,"priority"=\$5,"updated_at"=\$6 WHERE .*"id" = \$7`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := NewNeedDAO(db).Update(context.Background(), need, true)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNeedDAO_FindByIDForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "needs" WHERE "needs"."id" = \$1 ORDER BY "needs"."id" LIMIT .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewNeedDAO(db).FindByIDForUpdate(context.Background(), 4)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor(t *testing.T) {
	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "missions" SET "status"=\$1`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := NewTransactor(db).WithinTransaction(context.Background(), func(ctx context.Context) error {
			if err := NewMissionDAO(db).UpdateStatus(ctx, 1, domain.MissionFinished); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested calls share one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "missions" SET "status"=\$1`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx := NewTransactor(db)
		err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
			return tx.WithinTransaction(ctx, func(ctx context.Context) error {
				return NewMissionDAO(db).UpdateStatus(ctx, 1, domain.MissionCancelled)
			})
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
