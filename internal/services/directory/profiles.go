package directory

import (
	"context"

	"github.com/travelops/console-service/internal/core/gateway"
	domainerrors "github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/domain/models"
)

// GetProfile returns the profile row for the given user id.
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.store.Select(ctx, gateway.Query{
		Table:   TableProfiles,
		Filters: []gateway.Filter{{Column: "id", Op: gateway.OpEq, Value: userID}},
		Single:  true,
	}, &profile)
	if err != nil {
		return nil, domainerrors.NewGatewayError("get profile", err)
	}
	return &profile, nil
}

// UpdateProfile applies a partial update to the profile with the given user
// id and returns the updated row.
func (s *Service) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.Profile, error) {
	var profile models.Profile
	if err := s.store.Update(ctx, TableProfiles, userID, updates, &profile); err != nil {
		return nil, domainerrors.NewGatewayError("update profile", err)
	}
	return &profile, nil
}
