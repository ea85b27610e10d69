package dao

import (
	"context"

	"gorm.io/gorm"
)

type Country struct {
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"size:100;not null"`
	Code string `gorm:"size:3;not null;uniqueIndex:uni_countries_code"`
}

func (Country) TableName() string { return "countries" }

type State struct {
	ID uint `gorm:"primaryKey"`

	CountryID uint     `gorm:"not null;index"`
	Country   *Country `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	UF        string   `gorm:"column:uf;size:2;not null;uniqueIndex:uni_states_uf"`
	Name      string   `gorm:"size:100;not null"`
}

func (State) TableName() string { return "states" }

type City struct {
	ID uint `gorm:"primaryKey"`

	StateID  uint   `gorm:"not null;index"`
	State    *State `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Name     string `gorm:"size:100;not null"`
	IBGECode string `gorm:"column:ibge_code;size:7"`
}

func (City) TableName() string { return "cities" }

type MissionCategory struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"size:50;not null;uniqueIndex:uni_mission_categories_name"`
	Description string `gorm:"size:255"`
	Icon        string `gorm:"size:50"`
}

func (MissionCategory) TableName() string { return "mission_categories" }

type NewsCategory struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"size:50;not null;uniqueIndex:uni_news_categories_name"`
	Description string `gorm:"size:255"`
}

func (NewsCategory) TableName() string { return "news_categories" }

type ItemType struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"size:100;not null;uniqueIndex:uni_item_types_name"`
	Description string `gorm:"size:255"`
	Unit        string `gorm:"size:20"`
	Category    string `gorm:"size:50"`
}

func (ItemType) TableName() string { return "item_types" }

// CatalogDAO reads reference data. Rows are written only by Seed.
type CatalogDAO struct {
	db *gorm.DB
}

func NewCatalogDAO(db *gorm.DB) *CatalogDAO {
	return &CatalogDAO{
		db: db,
	}
}

func (d *CatalogDAO) FindCities(ctx context.Context) ([]City, error) {
	var cities []City
	if err := conn(ctx, d.db).Preload("State").Order("name").Find(&cities).Error; err != nil {
		return nil, err
	}

	return cities, nil
}

func (d *CatalogDAO) FindCityByID(ctx context.Context, id uint) (City, error) {
	var city City
	if err := conn(ctx, d.db).Preload("State").First(&city, id).Error; err != nil {
		return City{}, mapFindError(err, "city", id)
	}

	return city, nil
}

func (d *CatalogDAO) FindMissionCategories(ctx context.Context) ([]MissionCategory, error) {
	var categories []MissionCategory
	if err := conn(ctx, d.db).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}

	return categories, nil
}

func (d *CatalogDAO) FindMissionCategoryByID(ctx context.Context, id uint) (MissionCategory, error) {
	var category MissionCategory
	if err := conn(ctx, d.db).First(&category, id).Error; err != nil {
		return MissionCategory{}, mapFindError(err, "mission category", id)
	}

	return category, nil
}

func (d *CatalogDAO) FindNewsCategories(ctx context.Context) ([]NewsCategory, error) {
	var categories []NewsCategory
	if err := conn(ctx, d.db).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}

	return categories, nil
}

func (d *CatalogDAO) FindNewsCategoryByID(ctx context.Context, id uint) (NewsCategory, error) {
	var category NewsCategory
	if err := conn(ctx, d.db).First(&category, id).Error; err != nil {
		return NewsCategory{}, mapFindError(err, "news category", id)
	}

	return category, nil
}

func (d *CatalogDAO) FindItemTypes(ctx context.Context) ([]ItemType, error) {
	var itemTypes []ItemType
	if err := conn(ctx, d.db).Order("category, name").Find(&itemTypes).Error; err != nil {
		return nil, err
	}

	return itemTypes, nil
}

func (d *CatalogDAO) FindItemTypeByID(ctx context.Context, id uint) (ItemType, error) {
	var itemType ItemType
	if err := conn(ctx, d.db).First(&itemType, id).Error; err != nil {
		return ItemType{}, mapFindError(err, "item type", id)
	}

	return itemType, nil
}
