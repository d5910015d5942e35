package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/cravemap/backend/internal/domain/entities"
	"github.com/cravemap/backend/internal/domain/providers"
	"github.com/cravemap/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/cravemap/backend/pkg/errors"
)

// CandidateAdapter implements CandidateProvider against the seeded
// hotspot/restaurant tables
type CandidateAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCandidateAdapter creates a new candidate adapter
func NewCandidateAdapter(client *postgres.Client) providers.CandidateProvider {
	return &CandidateAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Hotspots returns the hotspot candidates for a city
func (a *CandidateAdapter) Hotspots(ctx context.Context, city string) ([]entities.Hotspot, error) {
	query, args, err := a.db.From("hotspots").
		Select("id", "name", "tags", "address", "city", "category",
			"latitude", "longitude", "rating", "review_count").
		Where(goqu.Ex{"city": city}).
		Order(goqu.I("review_count").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build hotspot query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hotspots", err)
	}
	defer rows.Close()

	var hotspots []entities.Hotspot
	for rows.Next() {
		var h entities.Hotspot
		if err := rows.Scan(
			&h.ID,
			&h.Name,
			pq.Array(&h.Tags),
			&h.Address,
			&h.City,
			&h.Category,
			&h.Location.Latitude,
			&h.Location.Longitude,
			&h.Rating,
			&h.ReviewCount,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan hotspot", err)
		}
		hotspots = append(hotspots, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate hotspots", err)
	}

	return hotspots, nil
}

// Restaurants returns the restaurant candidates for a city
func (a *CandidateAdapter) Restaurants(ctx context.Context, city string) ([]entities.Restaurant, error) {
	query, args, err := a.db.From("restaurants").
		Select("id", "name", "tags", "address", "city", "cuisine",
			"latitude", "longitude", "rating", "review_count", "price_level").
		Where(goqu.Ex{"city": city}).
		Order(goqu.I("rating").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build restaurant query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list restaurants", err)
	}
	defer rows.Close()

	var restaurants []entities.Restaurant
	for rows.Next() {
		var r entities.Restaurant
		if err := rows.Scan(
			&r.ID,
			&r.Name,
			pq.Array(&r.Tags),
			&r.Address,
			&r.City,
			&r.Cuisine,
			&r.Location.Latitude,
			&r.Location.Longitude,
			&r.Rating,
			&r.ReviewCount,
			&r.PriceLevel,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan restaurant", err)
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate restaurants", err)
	}

	return restaurants, nil
}
