package service

import (
	"context"
	"time"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/dto"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/repository"
)

// Identity event types delivered by the webhook
const (
	identityUserCreated = "user.created"
	identityUserUpdated = "user.updated"
)

// ProfileService defines the interface for identity profile mirroring
type ProfileService interface {
	// HandleIdentityEvent upserts the profile carried by a webhook event.
	// Unknown event types are acknowledged without effect so the provider
	// does not retry them forever.
	HandleIdentityEvent(ctx context.Context, event *dto.IdentityWebhookEvent) error
	// Get retrieves a mirrored profile
	Get(ctx context.Context, userID string) (*domain.Profile, error)
}

// profileService implements ProfileService
type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
	}
}

// HandleIdentityEvent upserts the profile carried by a webhook event
func (s *profileService) HandleIdentityEvent(ctx context.Context, event *dto.IdentityWebhookEvent) error {
	switch event.Type {
	case identityUserCreated, identityUserUpdated:
	default:
		return nil
	}

	now := time.Now()
	profile := &domain.Profile{
		UserID:    event.Data.ID,
		Email:     event.Data.Email,
		Name:      event.Data.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.profileRepo.Upsert(ctx, profile)
}

// Get retrieves a mirrored profile
func (s *profileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}
