package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

var seedProfiles = []Profile{
	{Name: domain.ProfileCitizen, Description: "Citizen who donates or asks for help"},
	{Name: domain.ProfileVolunteer, Description: "Registered volunteer"},
	{Name: domain.ProfileAdmin, Description: "Operations administrator"},
}

var seedMissionCategories = []MissionCategory{
	{Name: "RESCUE", Description: "Rescue and search operations", Icon: "rescue"},
	{Name: "DISTRIBUTION", Description: "Distribution of food and supplies", Icon: "truck"},
	{Name: "CLEANUP", Description: "Cleaning and recovery of affected areas", Icon: "broom"},
	{Name: "HEALTH", Description: "Medical care and first aid", Icon: "medical"},
	{Name: "SHELTER", Description: "Shelter organization and upkeep", Icon: "home"},
	{Name: "TRANSPORT", Description: "Transport of people and goods", Icon: "car"},
	{Name: "COMMUNICATION", Description: "Communication and information support", Icon: "megaphone"},
	{Name: "OTHER", Description: "Other support activities", Icon: "help"},
}

var seedNewsCategories = []NewsCategory{
	{Name: "ALERT", Description: "Urgent alerts"},
	{Name: "UPDATE", Description: "Situation updates"},
	{Name: "SUCCESS", Description: "Success stories"},
	{Name: "NEED", Description: "Calls for donations and volunteers"},
	{Name: "EVENT", Description: "Events and campaigns"},
	{Name: "GENERAL", Description: "General information"},
}

var seedItemTypes = []ItemType{
	{Name: "Mineral water", Description: "Bottled drinking water", Unit: "liters", Category: "Food"},
	{Name: "Rice", Description: "Type 1 rice", Unit: "kg", Category: "Food"},
	{Name: "Beans", Description: "Pinto or black beans", Unit: "kg", Category: "Food"},
	{Name: "Pasta", Description: "Assorted pasta", Unit: "kg", Category: "Food"},
	{Name: "Cooking oil", Description: "Cooking oil", Unit: "liters", Category: "Food"},
	{Name: "Sugar", Description: "Refined sugar", Unit: "kg", Category: "Food"},
	{Name: "Salt", Description: "Refined salt", Unit: "kg", Category: "Food"},
	{Name: "Coffee", Description: "Ground coffee", Unit: "kg", Category: "Food"},
	{Name: "Powdered milk", Description: "Whole powdered milk", Unit: "kg", Category: "Food"},
	{Name: "Canned food", Description: "Assorted canned food", Unit: "units", Category: "Food"},
	{Name: "Adult clothing", Description: "Clothes for adults", Unit: "pieces", Category: "Clothing"},
	{Name: "Children clothing", Description: "Clothes for children", Unit: "pieces", Category: "Clothing"},
	{Name: "Shoes", Description: "Shoes in assorted sizes", Unit: "pairs", Category: "Clothing"},
	{Name: "Blankets", Description: "Blankets and throws", Unit: "units", Category: "Clothing"},
	{Name: "Mattresses", Description: "Mattresses in assorted sizes", Unit: "units", Category: "Furniture"},
	{Name: "Pillows", Description: "Pillows", Unit: "units", Category: "Furniture"},
	{Name: "Hygiene products", Description: "Soap, shampoo, toothpaste", Unit: "kits", Category: "Hygiene"},
	{Name: "Baby diapers", Description: "Disposable baby diapers", Unit: "packs", Category: "Hygiene"},
	{Name: "Adult diapers", Description: "Adult diapers", Unit: "packs", Category: "Hygiene"},
	{Name: "Toilet paper", Description: "Toilet paper", Unit: "packs", Category: "Hygiene"},
	{Name: "Medicines", Description: "Basic medicines", Unit: "boxes", Category: "Health"},
	{Name: "Cleaning supplies", Description: "Disinfectant, bleach and similar", Unit: "kits", Category: "Cleaning"},
	{Name: "School supplies", Description: "Notebooks, pencils and pens", Unit: "kits", Category: "Education"},
	{Name: "Toys", Description: "Toys for children", Unit: "units", Category: "Leisure"},
}

// Seed inserts the reference data. Running it again leaves existing rows untouched.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := insertIgnoringConflicts(tx, seedProfiles); err != nil {
			return err
		}
		if err := insertIgnoringConflicts(tx, seedMissionCategories); err != nil {
			return err
		}
		if err := insertIgnoringConflicts(tx, seedNewsCategories); err != nil {
			return err
		}
		if err := insertIgnoringConflicts(tx, seedItemTypes); err != nil {
			return err
		}

		return seedLocation(tx)
	})
}

// insertIgnoringConflicts works on a copy so the package-level seed rows never get IDs assigned.
func insertIgnoringConflicts[T any](tx *gorm.DB, rows []T) error {
	batch := make([]T, len(rows))
	copy(batch, rows)

	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&batch).Error
}

func seedLocation(tx *gorm.DB) error {
	country := Country{Code: "BRA"}
	if err := tx.Where(country).Attrs(Country{Name: "Brazil"}).FirstOrCreate(&country).Error; err != nil {
		return err
	}

	state := State{UF: "RS"}
	if err := tx.Where(state).Attrs(State{Name: "Rio Grande do Sul", CountryID: country.ID}).FirstOrCreate(&state).Error; err != nil {
		return err
	}

	city := City{Name: "Lajeado", StateID: state.ID}
	return tx.Where(city).Attrs(City{IBGECode: "4311403"}).FirstOrCreate(&city).Error
}
