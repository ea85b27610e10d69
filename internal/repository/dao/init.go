package dao

import (
	"fmt"

	"gorm.io/gorm"
)

var models = []any{
	&Country{},
	&State{},
	&City{},
	&Profile{},
	&Person{},
	&Address{},
	&Volunteer{},
	&MissionCategory{},
	&Mission{},
	&MissionApplication{},
	&NewsCategory{},
	&News{},
	&NewsImage{},
	&ItemType{},
	&CollectionPoint{},
	&Need{},
	&Donation{},
	&DonationItem{},
}

// InitTables creates or updates every table, index and check constraint.
func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(models...)
}

// ResetTables drops every table of the public schema and migrates again.
func ResetTables(db *gorm.DB) error {
	if err := dropAllTables(db); err != nil {
		return err
	}

	return InitTables(db)
}

func dropAllTables(db *gorm.DB) error {
	var tableNames []string
	if err := db.Table("information_schema.tables").
		Where("table_schema = ?", "public").
		Pluck("table_name", &tableNames).Error; err != nil {
		return err
	}

	for _, tableName := range tableNames {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %q CASCADE", tableName)).Error; err != nil {
			return err
		}
	}

	return nil
}
