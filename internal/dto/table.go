package dto

// CreateTableRequest represents the request to create a table
type CreateTableRequest struct {
	RestaurantID string `json:"restaurant_id" binding:"required"`
	TableNumber  int    `json:"table_number" binding:"required,min=1"`
}

// Validate validates the CreateTableRequest
func (r *CreateTableRequest) Validate() (bool, string) {
	if r.RestaurantID == "" {
		return false, "Restaurant ID is required"
	}
	if r.TableNumber <= 0 {
		return false, "Table number must be a positive integer"
	}
	return true, ""
}

// ResolveTableResponse is the public response for QR token resolution.
// It never includes the opaque token itself or other tables' data.
type ResolveTableResponse struct {
	TableID      string `json:"table_id"`
	TableNumber  int    `json:"table_number"`
	RestaurantID string `json:"restaurant_id"`
	MenuID       string `json:"menu_id,omitempty"`
}
