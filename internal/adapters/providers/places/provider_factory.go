package places

import (
	"fmt"

	"github.com/cravemap/backend/internal/adapters/database"
	"github.com/cravemap/backend/internal/domain/providers"
	"github.com/cravemap/backend/internal/infrastructure/clients/postgres"
	"github.com/cravemap/backend/pkg/config"
)

// NewCandidateProvider creates a candidate provider based on configuration.
// "postgres" reads the seeded tables; anything else gets the mock data set.
func NewCandidateProvider(cfg *config.PlacesConfig, pgClient *postgres.Client) (providers.CandidateProvider, error) {
	switch cfg.Provider {
	case "postgres":
		if pgClient == nil {
			return nil, fmt.Errorf("postgres candidate provider requires a database client")
		}
		return database.NewCandidateAdapter(pgClient), nil
	case "mock", "":
		return NewMockPlacesProvider(), nil
	default:
		return nil, fmt.Errorf("unknown places provider: %s", cfg.Provider)
	}
}
