package events

import (
	"context"
	"encoding/json"
	"fmt"

	"cityseed/internal/seed/domain/model"
	"cityseed/internal/shared/eventbus"
	"cityseed/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is the stream seed events are appended to when none is configured.
const DefaultStream = "seed:events"

// defaultMaxLen caps the stream so repeated seeding does not grow it forever.
const defaultMaxLen = 1000

// StreamClient is the part of *redis.Client the publisher needs.
type StreamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

var _ StreamClient = (*redis.Client)(nil)

// RedisSeedPublisher appends cities.seeded events to a Redis stream so other
// services can refresh whatever they cache about cities.
type RedisSeedPublisher struct {
	client StreamClient
	stream string
	log    logger.Logger
}

// NewRedisSeedPublisher creates a publisher writing to stream
func NewRedisSeedPublisher(client StreamClient, stream string, log logger.Logger) *RedisSeedPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	if log == nil {
		log = logger.NewLogger()
	}
	return &RedisSeedPublisher{
		client: client,
		stream: stream,
		log:    log.WithComponent("redis-seed-publisher"),
	}
}

// Register subscribes the publisher to the seed events of bus
func (p *RedisSeedPublisher) Register(bus eventbus.EventBusInterface) {
	bus.Subscribe(eventbus.EventTypeCitiesSeeded, p.Handle)
}

// Handle is an eventbus.Handler storing the event in the stream
func (p *RedisSeedPublisher) Handle(ctx context.Context, event eventbus.Event) error {
	report, ok := event.Data().(model.SeedReport)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Data(), event.Type())
	}

	cityIDs := make([]string, len(report.CityIDs))
	for i, id := range report.CityIDs {
		cityIDs[i] = id.Hex()
	}
	encodedIDs, err := json.Marshal(cityIDs)
	if err != nil {
		return err
	}
	encodedNames, err := json.Marshal(report.Names)
	if err != nil {
		return err
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: defaultMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"type":      event.Type(),
			"source":    event.Source(),
			"runId":     report.RunID,
			"countryId": report.CountryID.Hex(),
			"requested": report.Requested,
			"inserted":  report.Inserted,
			"cityIds":   string(encodedIDs),
			"names":     string(encodedNames),
			"timestamp": event.Timestamp().UnixNano(),
		},
	}).Result()
	if err != nil {
		p.log.WithContext(ctx).WithFields(map[string]interface{}{
			"stream": p.stream,
			"run_id": report.RunID,
		}).Errorf("Failed to store seed event in Redis: %v", err)
		return err
	}

	p.log.WithContext(ctx).WithFields(map[string]interface{}{
		"stream":   p.stream,
		"entry_id": id,
	}).Debug("Seed event stored in Redis")
	return nil
}
