package seed

import (
	"context"
	"errors"

	"cityseed/internal/seed/adapter/persistence/mongodb"
	"cityseed/internal/seed/config"
	"cityseed/internal/seed/domain/model"
	"cityseed/internal/seed/domain/repository"
	"cityseed/internal/seed/usecase"
	"cityseed/internal/shared/eventbus"
	"cityseed/internal/shared/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// SeedModule wires the city seeding components together
type SeedModule struct {
	cities    repository.CityRepository
	countries repository.CountryRepository
	usecase   usecase.SeedUsecaseInterface
	config    *config.Config
}

// NewSeedModule creates the seed module on db. bus may be nil.
func NewSeedModule(db *mongo.Database, cfg *config.Config, bus eventbus.EventBusInterface, log logger.Logger) (*SeedModule, error) {
	if db == nil {
		return nil, errors.New("mongo database is required")
	}
	if cfg == nil {
		return nil, errors.New("seed configuration is required")
	}

	cityRepo := mongodb.NewCityRepository(db.Collection(cfg.CitiesCollection), log)
	countryRepo := mongodb.NewCountryRepository(db.Collection(cfg.CountriesCollection), log)

	return &SeedModule{
		cities:    cityRepo,
		countries: countryRepo,
		usecase:   usecase.NewSeedUsecase(cityRepo, countryRepo, bus, log),
		config:    cfg,
	}, nil
}

// Request builds the seed request for the Peruvian cities from the configuration
func (m *SeedModule) Request() usecase.SeedRequest {
	return usecase.SeedRequest{
		CountryID:     m.config.CountryID,
		CountryNames:  m.config.CountryNames,
		CityNames:     model.PeruCities(),
		VerifyCountry: m.config.VerifyCountry,
	}
}

// Run seeds the Peruvian cities once
func (m *SeedModule) Run(ctx context.Context) (*model.SeedReport, error) {
	return m.usecase.Seed(ctx, m.Request())
}

// GetUsecase returns the seed usecase for external access
func (m *SeedModule) GetUsecase() usecase.SeedUsecaseInterface {
	return m.usecase
}
