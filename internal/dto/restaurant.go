package dto

// CreateRestaurantRequest represents the request to create a restaurant
type CreateRestaurantRequest struct {
	Name           string   `json:"name" binding:"required,min=1,max=200"`
	LogoURL        string   `json:"logo_url"`
	Address        string   `json:"address"`
	OpeningHours   string   `json:"opening_hours"`
	PaymentMethods []string `json:"payment_methods"`
}

// Validate validates the CreateRestaurantRequest
func (r *CreateRestaurantRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Restaurant name is required"
	}
	return true, ""
}

// UpdateRestaurantRequest represents the request to update a restaurant.
// Nil fields are left unchanged.
type UpdateRestaurantRequest struct {
	Name           *string   `json:"name"`
	LogoURL        *string   `json:"logo_url"`
	Address        *string   `json:"address"`
	OpeningHours   *string   `json:"opening_hours"`
	PaymentMethods *[]string `json:"payment_methods"`
}

// Validate validates the UpdateRestaurantRequest
func (r *UpdateRestaurantRequest) Validate() (bool, string) {
	if r.Name == nil && r.LogoURL == nil && r.Address == nil && r.OpeningHours == nil && r.PaymentMethods == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Name != nil && *r.Name == "" {
		return false, "Restaurant name must not be empty"
	}
	return true, ""
}
