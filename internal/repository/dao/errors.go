package dao

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

var uniqueViolations = map[string]string{
	"uni_profiles_name":                  "a profile with this name already exists",
	"uni_people_cpf":                     "a person with this CPF already exists",
	"uni_people_email":                   "a person with this email already exists",
	"uni_volunteers_person":              "this person is already registered as a volunteer",
	"uni_applications_mission_volunteer": "this volunteer already applied to this mission",
	"uni_needs_point_item":               "this collection point already has a need for this item type",
	"uni_item_types_name":                "an item type with this name already exists",
	"uni_addresses_primary":              "this person already has a primary address",
	"uni_news_images_primary":            "this news item already has a primary image",
}

// mapError turns storage failures into domain errors. Unknown errors are returned as is.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if msg, ok := uniqueViolations[pgErr.ConstraintName]; ok {
			return domain.Conflict("%s", msg)
		}
		return domain.Conflict("record already exists")
	case pgerrcode.CheckViolation:
		return domain.InvalidArgument("value violates constraint %s", pgErr.ConstraintName)
	case pgerrcode.ForeignKeyViolation:
		return domain.Conflict("operation violates reference %s", pgErr.ConstraintName)
	}

	return err
}

// mapFindError is mapError plus gorm.ErrRecordNotFound handling for single-row lookups.
func mapFindError(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound(entity, id)
	}

	return mapError(err)
}
