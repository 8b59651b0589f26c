package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cityseed/internal/seed/domain/model"
	"cityseed/internal/seed/domain/repository"
	"cityseed/internal/shared/contextkeys"
	apperrors "cityseed/internal/shared/errors"
	"cityseed/internal/shared/eventbus"
	"cityseed/internal/shared/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	seedComponent = "seed-usecase"
	eventSource   = "cityseed"
)

// SeedRequest describes one seed run
type SeedRequest struct {
	// CountryID is the hex ObjectId of the referenced country. When empty the
	// country is resolved from CountryNames.
	CountryID    string
	CountryNames []string
	// CityNames are inserted in order, one document each.
	CityNames []string
	// VerifyCountry checks that CountryID exists before inserting.
	VerifyCountry bool
}

// SeedUsecaseInterface defines the seeding operations
type SeedUsecaseInterface interface {
	Seed(ctx context.Context, req SeedRequest) (*model.SeedReport, error)
	ResolveCountry(ctx context.Context, req SeedRequest) (primitive.ObjectID, error)
}

// SeedUsecase inserts a list of cities pointing at one country
type SeedUsecase struct {
	cities    repository.CityRepository
	countries repository.CountryRepository
	bus       eventbus.EventBusInterface
	log       logger.Logger
	now       func() time.Time
	newRunID  func() string
}

var _ SeedUsecaseInterface = (*SeedUsecase)(nil)

// NewSeedUsecase creates a seed usecase. bus may be nil, in which case no
// event is published after a run.
func NewSeedUsecase(cities repository.CityRepository, countries repository.CountryRepository, bus eventbus.EventBusInterface, log logger.Logger) *SeedUsecase {
	if log == nil {
		log = logger.NewLogger()
	}
	return &SeedUsecase{
		cities:    cities,
		countries: countries,
		bus:       bus,
		log:       log.WithComponent(seedComponent),
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
}

// WithClock replaces the time source used for createdAt and run timestamps
func (uc *SeedUsecase) WithClock(now func() time.Time) *SeedUsecase {
	uc.now = now
	return uc
}

// Seed inserts one city per name with a single bulk insert. Nothing is retried
// and nothing is deduplicated: seeding twice stores every city twice.
//
// The returned report is non-nil once the insert has been attempted, also when
// it fails, so callers can see what the store acknowledged.
func (uc *SeedUsecase) Seed(ctx context.Context, req SeedRequest) (*model.SeedReport, error) {
	runID := uc.newRunID()
	ctx = context.WithValue(ctx, contextkeys.RunIDKey, runID)
	ctx = context.WithValue(ctx, contextkeys.OperationKey, "seed")
	startedAt := uc.now()

	if err := validateCityNames(req.CityNames); err != nil {
		return nil, err
	}

	countryID, err := uc.ResolveCountry(ctx, req)
	if err != nil {
		return nil, err
	}
	ctx = context.WithValue(ctx, contextkeys.CountryIDKey, countryID.Hex())
	log := uc.log.WithContext(ctx)

	ref := model.NewCountryRef(uc.countries.CollectionName(), countryID)
	cities := make([]*model.City, len(req.CityNames))
	for i, name := range req.CityNames {
		cities[i] = model.NewCity(name, ref, uc.now())
	}

	log.Infof("Inserting %d cities", len(cities))
	res, insertErr := uc.cities.InsertMany(ctx, cities)

	report := &model.SeedReport{
		RunID:           runID,
		CountryID:       countryID,
		Requested:       len(cities),
		Inserted:        res.Count(),
		Names:           append([]string(nil), req.CityNames...),
		StartedAt:       startedAt,
		TotalForCountry: -1,
	}
	if res != nil {
		report.CityIDs = res.InsertedIDs
	}

	if insertErr != nil {
		report.FinishedAt = uc.now()
		return report, fmt.Errorf("seed cities: %w", insertErr)
	}
	if report.Inserted != report.Requested {
		report.FinishedAt = uc.now()
		return report, apperrors.NewPartialInsertError(report.Requested, report.Inserted).
			WithComponent(seedComponent)
	}

	if total, err := uc.cities.CountByCountry(ctx, countryID); err != nil {
		log.Warnf("Could not count cities for country after insert: %v", err)
	} else {
		report.TotalForCountry = total
	}
	report.FinishedAt = uc.now()

	log.WithFields(map[string]interface{}{
		"inserted":          report.Inserted,
		"total_for_country": report.TotalForCountry,
		"duration_ms":       report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	}).Info("Cities seeded")

	uc.publish(ctx, *report)
	return report, nil
}

// ResolveCountry returns the country the cities will reference. A configured id
// must be a valid ObjectId and, when verification is on, exist. Without an id the
// names are tried in order.
func (uc *SeedUsecase) ResolveCountry(ctx context.Context, req SeedRequest) (primitive.ObjectID, error) {
	if id := strings.TrimSpace(req.CountryID); id != "" {
		countryID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return primitive.NilObjectID, apperrors.NewValidationError(fmt.Sprintf("country id %q is not a valid ObjectId", id)).
				WithCause(apperrors.ErrInvalidCountryID).
				WithComponent(seedComponent)
		}
		if !req.VerifyCountry {
			return countryID, nil
		}

		exists, err := uc.countries.Exists(ctx, countryID)
		if err != nil {
			return primitive.NilObjectID, err
		}
		if !exists {
			return primitive.NilObjectID, apperrors.NewNotFoundError("country "+id).
				WithCause(apperrors.ErrCountryNotFound).
				WithComponent(seedComponent).
				WithDetail("collection", uc.countries.CollectionName())
		}
		return countryID, nil
	}

	if len(req.CountryNames) == 0 {
		return primitive.NilObjectID, apperrors.NewValidationError("either a country id or country names are required").
			WithCause(apperrors.ErrInvalidCountryID).
			WithComponent(seedComponent)
	}

	countryID, err := uc.countries.FindIDByName(ctx, req.CountryNames...)
	if err != nil {
		return primitive.NilObjectID, err
	}
	uc.log.WithContext(ctx).Infof("Resolved country %s by name", countryID.Hex())
	return countryID, nil
}

func (uc *SeedUsecase) publish(ctx context.Context, report model.SeedReport) {
	if uc.bus == nil {
		return
	}
	event := eventbus.NewBasicEventWithSource(eventbus.EventTypeCitiesSeeded, report, eventSource)
	if err := uc.bus.Publish(ctx, event); err != nil {
		uc.log.WithContext(ctx).Warnf("Seed event not delivered: %v", err)
	}
}

func validateCityNames(names []string) error {
	if len(names) == 0 {
		return apperrors.NewValidationError("no cities to seed").
			WithCause(apperrors.ErrEmptyCityList).
			WithComponent(seedComponent)
	}

	ve := apperrors.NewValidationErrors()
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			ve.Add(fmt.Sprintf("names[%d]", i), apperrors.ErrBlankCityName.Error(), name)
		}
	}
	if appErr := ve.ToAppError(); appErr != nil {
		return appErr.WithCause(apperrors.ErrBlankCityName).WithComponent(seedComponent)
	}
	return nil
}
