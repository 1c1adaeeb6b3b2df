package v1

import (
	"fmt"
	"slices"

	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name        string `json:"name" example:"Groceries"`                              // Name of the category, unique across all categories
	Description string `json:"description" example:"Everything from the supermarket"` // Description of the category
	Icon        string `json:"icon" example:"shopping-cart"`                          // Name of the icon to display for the category
	Color       string `json:"color" example:"#FF6B6B"`                               // Color of the category as hex code
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:        editable.Name,
		Description: editable.Description,
		Icon:        editable.Icon,
		Color:       editable.Color,
	}
}

// merge copies the fields that are set in the request to the category.
func (editable CategoryEditable) merge(category models.Category, fields []string) models.Category {
	for _, field := range fields {
		switch field {
		case "Name":
			category.Name = editable.Name
		case "Description":
			category.Description = editable.Description
		case "Icon":
			category.Icon = editable.Icon
		case "Color":
			category.Color = editable.Color
		}
	}

	return category
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                    // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Transactions in this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	IsDefault bool          `json:"isDefault" example:"false"` // Default categories are shared by all users and can not be changed
	Links     CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:        model.Name,
			Description: model.Description,
			Icon:        model.Icon,
			Color:       model.Color,
		},
		IsDefault: model.IsDefault,
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name      string `form:"name"`      // By name
	IsDefault bool   `form:"isDefault"` // Is the category a default category?
	Search    string `form:"search"`    // By string in name or description
	Offset    uint   `form:"offset"`    // The offset of the first Category returned. Defaults to 0.
	Limit     int    `form:"limit"`     // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) scope(owner uuid.UUID, setFields []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(models.VisibleTo(owner), search(f.Search, "categories.name", "categories.description"))

		if slices.Contains(setFields, "Name") {
			db = db.Where("categories.name = ?", f.Name)
		}

		if slices.Contains(setFields, "IsDefault") {
			db = db.Where("categories.is_default = ?", f.IsDefault)
		}

		return db
	}
}
