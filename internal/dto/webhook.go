package dto

// IdentityWebhookEvent represents an identity-provider lifecycle event.
// Only user.created and user.updated are handled; both upsert a profile row.
type IdentityWebhookEvent struct {
	Type string              `json:"type" binding:"required"`
	Data IdentityWebhookUser `json:"data" binding:"required"`
}

// IdentityWebhookUser carries the user payload of an identity event
type IdentityWebhookUser struct {
	ID    string `json:"id" binding:"required"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate validates the IdentityWebhookEvent
func (e *IdentityWebhookEvent) Validate() (bool, string) {
	if e.Type == "" {
		return false, "Event type is required"
	}
	if e.Data.ID == "" {
		return false, "User id is required"
	}
	return true, ""
}
