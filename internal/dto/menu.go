package dto

import "github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"

// CreateMenuRequest represents the request to create a menu
type CreateMenuRequest struct {
	RestaurantID string `json:"restaurant_id" binding:"required"`
	Name         string `json:"name" binding:"required,min=1,max=200"`
	BannerURL    string `json:"banner_url"`
	IsActive     bool   `json:"is_active"`
}

// Validate validates the CreateMenuRequest
func (r *CreateMenuRequest) Validate() (bool, string) {
	if r.RestaurantID == "" {
		return false, "Restaurant ID is required"
	}
	if r.Name == "" {
		return false, "Menu name is required"
	}
	return true, ""
}

// UpdateMenuRequest represents the request to update a menu
type UpdateMenuRequest struct {
	Name      *string `json:"name"`
	BannerURL *string `json:"banner_url"`
	IsActive  *bool   `json:"is_active"`
}

// Validate validates the UpdateMenuRequest
func (r *UpdateMenuRequest) Validate() (bool, string) {
	if r.Name == nil && r.BannerURL == nil && r.IsActive == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Name != nil && *r.Name == "" {
		return false, "Menu name must not be empty"
	}
	return true, ""
}

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	MenuID   string `json:"menu_id" binding:"required"`
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Position int    `json:"position"`
}

// Validate validates the CreateCategoryRequest
func (r *CreateCategoryRequest) Validate() (bool, string) {
	if r.MenuID == "" {
		return false, "Menu ID is required"
	}
	if r.Name == "" {
		return false, "Category name is required"
	}
	return true, ""
}

// ReorderCategoryRequest represents the explicit category reorder operation
type ReorderCategoryRequest struct {
	CategoryID string `json:"category_id" binding:"required"`
	Position   int    `json:"position" binding:"min=0"`
}

// Validate validates the ReorderCategoryRequest
func (r *ReorderCategoryRequest) Validate() (bool, string) {
	if r.CategoryID == "" {
		return false, "Category ID is required"
	}
	if r.Position < 0 {
		return false, "Position must not be negative"
	}
	return true, ""
}

// CreateMenuItemRequest represents the request to create a menu item
type CreateMenuItemRequest struct {
	MenuID      string  `json:"menu_id" binding:"required"`
	CategoryID  string  `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
}

// Validate validates the CreateMenuItemRequest
func (r *CreateMenuItemRequest) Validate() (bool, string) {
	if r.MenuID == "" {
		return false, "Menu ID is required"
	}
	if r.CategoryID == "" {
		return false, "Category ID is required"
	}
	if r.Name == "" {
		return false, "Item name is required"
	}
	if r.Price <= 0 {
		return false, "Price must be greater than zero"
	}
	return true, ""
}

// PublicCategory is one menu section of the customer menu view
type PublicCategory struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Position int               `json:"position"`
	Items    []domain.MenuItem `json:"items"`
}

// PublicMenuResponse is the customer-facing menu: the active menu of a
// restaurant with its categories in display order and their items.
type PublicMenuResponse struct {
	MenuID       string           `json:"menu_id"`
	RestaurantID string           `json:"restaurant_id"`
	Name         string           `json:"name"`
	BannerURL    string           `json:"banner_url,omitempty"`
	Categories   []PublicCategory `json:"categories"`
}

// UpdateMenuItemRequest represents the request to update a menu item
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
}

// Validate validates the UpdateMenuItemRequest
func (r *UpdateMenuItemRequest) Validate() (bool, string) {
	if r.Name == nil && r.Description == nil && r.Price == nil && r.ImageURL == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Name != nil && *r.Name == "" {
		return false, "Item name must not be empty"
	}
	if r.Price != nil && *r.Price <= 0 {
		return false, "Price must be greater than zero"
	}
	return true, ""
}
