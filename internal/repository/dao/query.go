package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

func deleteByID(ctx context.Context, db *gorm.DB, model any, entity string, id uint) error {
	result := conn(ctx, db).Delete(model, id)
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound(entity, id)
	}

	return nil
}

// setFlag writes a single boolean column and stamps updated_at. Writing the current value is not an error.
func setFlag(ctx context.Context, db *gorm.DB, model any, entity string, id uint, column string, value bool) error {
	result := conn(ctx, db).Model(model).
		Where("id = ?", id).
		Updates(map[string]any{column: value, "updated_at": time.Now()})
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound(entity, id)
	}

	return nil
}

func countWhere(ctx context.Context, db *gorm.DB, model any, where string, args ...any) (int64, error) {
	var count int64
	err := conn(ctx, db).Model(model).Where(where, args...).Count(&count).Error

	return count, err
}
