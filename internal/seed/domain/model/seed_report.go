package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeedReport describes one completed seed run. It is the payload of the
// cities.seeded event.
type SeedReport struct {
	RunID      string               `json:"runId"`
	CountryID  primitive.ObjectID   `json:"countryId"`
	Requested  int                  `json:"requested"`
	Inserted   int                  `json:"inserted"`
	CityIDs    []primitive.ObjectID `json:"cityIds"`
	Names      []string             `json:"names"`
	StartedAt  time.Time            `json:"startedAt"`
	FinishedAt time.Time            `json:"finishedAt"`

	// TotalForCountry is the number of cities referencing the country after the
	// insert, or -1 when the count could not be read.
	TotalForCountry int64 `json:"totalForCountry"`
}
