package directory

import (
	"context"
	"strings"

	"github.com/travelops/console-service/internal/core/gateway"
	domainerrors "github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/domain/models"
)

// CreateTravelerParams holds the fields for creating a traveler.
type CreateTravelerParams struct {
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Phone       string                `json:"phone,omitempty"`
	BookingID   string                `json:"booking_id"`
	Destination string                `json:"destination"`
	TravelDates models.TravelDates    `json:"travel_dates"`
	Status      models.TravelerStatus `json:"status"`
	Preferences map[string]string     `json:"preferences,omitempty"`
}

// ListTravelers returns all travelers ordered by creation time descending.
func (s *Service) ListTravelers(ctx context.Context) ([]models.Traveler, error) {
	var travelers []models.Traveler
	err := s.store.Select(ctx, gateway.Query{
		Table: TableTravelers,
		Order: &gateway.Order{Column: "created_at", Descending: true},
	}, &travelers)
	if err != nil {
		return nil, domainerrors.NewGatewayError("list travelers", err)
	}
	return travelers, nil
}

// GetTraveler returns the traveler with the given id.
func (s *Service) GetTraveler(ctx context.Context, id string) (*models.Traveler, error) {
	var traveler models.Traveler
	err := s.store.Select(ctx, gateway.Query{
		Table:   TableTravelers,
		Filters: []gateway.Filter{{Column: "id", Op: gateway.OpEq, Value: id}},
		Single:  true,
	}, &traveler)
	if err != nil {
		return nil, domainerrors.NewGatewayError("get traveler", err)
	}
	return &traveler, nil
}

// CreateTraveler creates a traveler and returns the created row.
func (s *Service) CreateTraveler(ctx context.Context, params CreateTravelerParams) (*models.Traveler, error) {
	var traveler models.Traveler
	if err := s.store.Insert(ctx, TableTravelers, params, &traveler); err != nil {
		return nil, domainerrors.NewGatewayError("create traveler", err)
	}
	return &traveler, nil
}

// UpdateTraveler applies a partial update to the traveler with the given id
// and returns the updated row.
func (s *Service) UpdateTraveler(ctx context.Context, id string, updates map[string]interface{}) (*models.Traveler, error) {
	var traveler models.Traveler
	if err := s.store.Update(ctx, TableTravelers, id, updates, &traveler); err != nil {
		return nil, domainerrors.NewGatewayError("update traveler", err)
	}
	return &traveler, nil
}

// orExpressionSanitizer strips the characters that delimit an or-expression,
// so a pattern built from user input cannot terminate the predicate early.
var orExpressionSanitizer = strings.NewReplacer(",", " ", "(", " ", ")", " ")

// SearchTravelers returns travelers whose name, email or destination contains
// the query, case-insensitively. The three predicates are OR-combined: a
// match on any single field returns the row.
func (s *Service) SearchTravelers(ctx context.Context, query string) ([]models.Traveler, error) {
	pattern := "*" + orExpressionSanitizer.Replace(query) + "*"

	var travelers []models.Traveler
	err := s.store.Select(ctx, gateway.Query{
		Table: TableTravelers,
		Or: []gateway.Filter{
			{Column: "name", Op: gateway.OpILike, Value: pattern},
			{Column: "email", Op: gateway.OpILike, Value: pattern},
			{Column: "destination", Op: gateway.OpILike, Value: pattern},
		},
		Order: &gateway.Order{Column: "created_at", Descending: true},
	}, &travelers)
	if err != nil {
		return nil, domainerrors.NewGatewayError("search travelers", err)
	}
	return travelers, nil
}

// TravelersByDestination returns travelers with the exact destination,
// ordered by creation time descending.
func (s *Service) TravelersByDestination(ctx context.Context, destination string) ([]models.Traveler, error) {
	var travelers []models.Traveler
	err := s.store.Select(ctx, gateway.Query{
		Table:   TableTravelers,
		Filters: []gateway.Filter{{Column: "destination", Op: gateway.OpEq, Value: destination}},
		Order:   &gateway.Order{Column: "created_at", Descending: true},
	}, &travelers)
	if err != nil {
		return nil, domainerrors.NewGatewayError("list travelers by destination", err)
	}
	return travelers, nil
}
