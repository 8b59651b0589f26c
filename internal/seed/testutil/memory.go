package testutil

import (
	"context"
	"sync"

	"cityseed/internal/seed/domain/model"
	"cityseed/internal/seed/domain/repository"
	apperrors "cityseed/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PeruCountryHex is the country id used across seed tests.
const PeruCountryHex = "507f1f77bcf86cd799439021"

// MemoryStore is an in-memory stand-in for the cities and countries collections.
// Inserts are all-or-nothing, like a single insert command against an unreachable server.
type MemoryStore struct {
	mu          sync.RWMutex
	cities      []model.City
	countries   map[primitive.ObjectID]string
	unreachable bool
	countryColl string
}

// NewMemoryStore creates an empty store whose countries live in "countries"
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		countries:   make(map[primitive.ObjectID]string),
		countryColl: "countries",
	}
}

// AddCountry stores a country and returns its id
func (s *MemoryStore) AddCountry(id primitive.ObjectID, name string) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries[id] = name
	return id
}

// SetUnreachable makes every later call fail with ErrStoreUnavailable
func (s *MemoryStore) SetUnreachable(unreachable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unreachable = unreachable
}

// StoredCities returns a snapshot of the stored cities in insertion order
func (s *MemoryStore) StoredCities() []model.City {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.City(nil), s.cities...)
}

// Cities returns the store as a CityRepository
func (s *MemoryStore) Cities() repository.CityRepository { return memoryCities{s} }

// Countries returns the store as a CountryRepository
func (s *MemoryStore) Countries() repository.CountryRepository { return memoryCountries{s} }

func (s *MemoryStore) unavailable() error {
	return apperrors.NewInfrastructureError("memory store unreachable").WithCause(apperrors.ErrStoreUnavailable)
}

type memoryCities struct{ s *MemoryStore }

func (m memoryCities) InsertMany(ctx context.Context, cities []*model.City) (*repository.InsertResult, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.unreachable {
		return nil, m.s.unavailable()
	}
	if len(cities) == 0 {
		return nil, apperrors.NewValidationError("no cities to insert").WithCause(apperrors.ErrEmptyCityList)
	}

	res := &repository.InsertResult{InsertedIDs: make([]primitive.ObjectID, len(cities))}
	for i, city := range cities {
		city.ID = primitive.NewObjectID()
		res.InsertedIDs[i] = city.ID
		m.s.cities = append(m.s.cities, *city)
	}
	return res, nil
}

func (m memoryCities) CountByCountry(ctx context.Context, countryID primitive.ObjectID) (int64, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	if m.s.unreachable {
		return 0, m.s.unavailable()
	}
	var n int64
	for _, c := range m.s.cities {
		if c.Country.ID == countryID {
			n++
		}
	}
	return n, nil
}

type memoryCountries struct{ s *MemoryStore }

func (m memoryCountries) CollectionName() string { return m.s.countryColl }

func (m memoryCountries) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	if m.s.unreachable {
		return false, m.s.unavailable()
	}
	_, ok := m.s.countries[id]
	return ok, nil
}

func (m memoryCountries) FindIDByName(ctx context.Context, names ...string) (primitive.ObjectID, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	if m.s.unreachable {
		return primitive.NilObjectID, m.s.unavailable()
	}
	for _, name := range names {
		for id, stored := range m.s.countries {
			if stored == name {
				return id, nil
			}
		}
	}
	return primitive.NilObjectID, apperrors.NewNotFoundError("country").WithCause(apperrors.ErrCountryNotFound)
}
