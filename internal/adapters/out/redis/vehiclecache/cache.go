// Package vehiclecache provides a Redis read-through cache in front of the
// vehicle catalog repository. The catalog is owned by an external fleet
// system and changes rarely, while assignment reads it on every request, so
// short-lived cached copies take that load off the database.
package vehiclecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	vehicleKeyPrefix = "vehicle:"
	activeCatalogKey = "vehicles:active"
)

// vehicleEntry is the cached wire form of one catalog entry.
type vehicleEntry struct {
	ID          string  `json:"id"`
	VehicleType string  `json:"vehicleType"`
	MaxWeight   float64 `json:"maxWeight"`
	MaxVolume   float64 `json:"maxVolume"`
	MaxPackages int     `json:"maxPackages"`
	Priority    int     `json:"priority"`
	IsActive    bool    `json:"isActive"`
}

func entryFromDomain(v *vehicle.Vehicle) vehicleEntry {
	specs := v.Specifications()
	return vehicleEntry{
		ID:          v.ID().String(),
		VehicleType: v.Type(),
		MaxWeight:   specs.MaxWeight,
		MaxVolume:   specs.MaxVolume,
		MaxPackages: specs.MaxPackages,
		Priority:    v.Priority(),
		IsActive:    v.IsActive(),
	}
}

func entryToDomain(e vehicleEntry) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromString(e.ID)
	if err != nil {
		return nil, err
	}
	return vehicle.NewVehicle(id, e.VehicleType, vehicle.Specifications{
		MaxWeight:   e.MaxWeight,
		MaxVolume:   e.MaxVolume,
		MaxPackages: e.MaxPackages,
	}, e.Priority, e.IsActive)
}

// VehicleCache implements ports.VehicleRepository as a read-through cache:
// hits are served from Redis, misses fall through to the wrapped repository
// and populate the cache with a TTL.
//
// Redis failures other than a plain miss degrade to the wrapped repository,
// so an unavailable cache never takes assignment down.
type VehicleCache struct {
	client *redis.Client
	inner  ports.VehicleRepository
	ttl    time.Duration
}

// NewVehicleCache creates a vehicle catalog cache over the given repository.
// The redisURL should be in the format: redis://[:password@]host[:port][/database]
func NewVehicleCache(redisURL string, inner ports.VehicleRepository, ttl time.Duration) (*VehicleCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	return &VehicleCache{
		client: redis.NewClient(opts),
		inner:  inner,
		ttl:    ttl,
	}, nil
}

// Get retrieves one catalog entry, from the cache when possible.
func (c *VehicleCache) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	key := vehicleKeyPrefix + id.String()

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var entry vehicleEntry
		if unmarshalErr := json.Unmarshal(raw, &entry); unmarshalErr == nil {
			return entryToDomain(entry)
		}
		// A corrupt entry falls through to the repository and gets rewritten.
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	v, err := c.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, entryFromDomain(v))
	return v, nil
}

// GetAllActive retrieves the active catalog in stable order, from the cache
// when possible.
func (c *VehicleCache) GetAllActive(ctx context.Context) ([]*vehicle.Vehicle, error) {
	raw, err := c.client.Get(ctx, activeCatalogKey).Bytes()
	if err == nil {
		var entries []vehicleEntry
		if unmarshalErr := json.Unmarshal(raw, &entries); unmarshalErr == nil {
			vehicles := make([]*vehicle.Vehicle, 0, len(entries))
			for _, entry := range entries {
				v, convErr := entryToDomain(entry)
				if convErr != nil {
					return nil, convErr
				}
				vehicles = append(vehicles, v)
			}
			return vehicles, nil
		}
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	vehicles, err := c.inner.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]vehicleEntry, 0, len(vehicles))
	for _, v := range vehicles {
		entries = append(entries, entryFromDomain(v))
	}
	c.store(ctx, activeCatalogKey, entries)

	return vehicles, nil
}

// Invalidate drops the active catalog key so the next read refreshes it.
// Per-vehicle keys expire on their own TTL.
func (c *VehicleCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, activeCatalogKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate vehicle catalog: %w", err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (c *VehicleCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *VehicleCache) Close() error {
	return c.client.Close()
}

// store writes one cache entry best-effort. A failed write only costs the
// next reader a repository round trip.
func (c *VehicleCache) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, c.ttl).Err()
}
