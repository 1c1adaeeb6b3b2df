package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a tag for transactions and the unit budgets are planned in.
//
// Default categories are shared by all owners and have the Nil UUID as owner.
type Category struct {
	DefaultModel
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string
	Icon        string
	Color       string
	IsDefault   bool `gorm:"not null;default:false"`
}

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.Icon = strings.TrimSpace(c.Icon)
	c.Color = strings.ToUpper(strings.TrimSpace(c.Color))

	return nil
}

// Validate checks the user editable fields of the category.
func (c Category) Validate() error {
	if l := utf8.RuneCountInString(strings.TrimSpace(c.Name)); l < 1 || l > 100 {
		return ErrNameLength
	}

	if c.Color != "" && !colorPattern.MatchString(strings.TrimSpace(c.Color)) {
		return ErrColorInvalid
	}

	return nil
}

// VisibleTo scopes a category query to the default categories
// and the categories of the owner.
func VisibleTo(owner uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("categories.owner_id = ? OR categories.is_default = true", owner)
	}
}

// DefaultCategories are seeded into every new database.
var DefaultCategories = []Category{
	{Name: "Food & Dining", Icon: "utensils", Color: "#FF6B6B"},
	{Name: "Transportation", Icon: "car", Color: "#4ECDC4"},
	{Name: "Shopping", Icon: "shopping-bag", Color: "#45B7D1"},
	{Name: "Entertainment", Icon: "film", Color: "#96CEB4"},
	{Name: "Housing", Icon: "home", Color: "#FFEAA7"},
	{Name: "Utilities", Icon: "zap", Color: "#DFE6E9"},
	{Name: "Healthcare", Icon: "heart", Color: "#FD79A8"},
	{Name: "Insurance", Icon: "shield", Color: "#A29BFE"},
	{Name: "Education", Icon: "book", Color: "#74B9FF"},
	{Name: "Personal Care", Icon: "user", Color: "#FAB1A0"},
	{Name: "Investment", Icon: "trending-up", Color: "#55EFC4"},
	{Name: "Salary", Icon: "dollar-sign", Color: "#00B894"},
	{Name: "Business", Icon: "briefcase", Color: "#6C5CE7"},
	{Name: "Gifts", Icon: "gift", Color: "#FD79A8"},
	{Name: "Other", Icon: "more-horizontal", Color: "#B2BEC3"},
}

// SeedDefaultCategories creates the default categories if none exist yet.
//
// Default categories whose name is already used by another category are skipped.
func SeedDefaultCategories(db *gorm.DB) error {
	var count int64
	err := db.Model(&Category{}).Where("is_default = true").Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, d := range DefaultCategories {
			var existing Category
			err := tx.Where(&Category{Name: d.Name}).First(&existing).Error
			if err == nil {
				continue
			}

			if !errors.Is(err, ErrResourceNotFound) {
				return err
			}

			category := d
			category.IsDefault = true
			category.Description = fmt.Sprintf("Default category for %s", strings.ToLower(d.Name))

			err = tx.Create(&category).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
