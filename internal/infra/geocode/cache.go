package geocode

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"quoteflow/internal/domain/delivery"
	"quoteflow/internal/usecase/queries"

	"github.com/go-redis/redis/v8"
)

// Cache is the slice of redis.Cmdable the resolver needs.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedResolver geocodes through Redis: coordinates for a normalized
// address are cached, the distance and fee are recomputed on every hit so
// fee-curve changes take effect without flushing the cache.
type CachedResolver struct {
	geocoder Geocoder
	cache    Cache
	ttl      time.Duration
	origin   delivery.Coordinates
	schedule *delivery.FeeSchedule
}

func NewCachedResolver(
	geocoder Geocoder,
	cache Cache,
	ttl time.Duration,
	origin delivery.Coordinates,
	schedule *delivery.FeeSchedule,
) queries.AddressResolver {
	return &CachedResolver{
		geocoder: geocoder,
		cache:    cache,
		ttl:      ttl,
		origin:   origin,
		schedule: schedule,
	}
}

type cachedPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	PlaceName string  `json:"place_name"`
}

func (r *CachedResolver) Resolve(ctx context.Context, address string) (*delivery.Resolution, error) {
	key := cacheKey(address)

	if point, ok := r.lookup(ctx, key); ok {
		return r.resolution(point), nil
	}

	coords, placeName, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	point := cachedPoint{Lat: coords.Lat, Lng: coords.Lng, PlaceName: placeName}
	r.store(ctx, key, point)

	return r.resolution(point), nil
}

func (r *CachedResolver) resolution(point cachedPoint) *delivery.Resolution {
	coords := delivery.Coordinates{Lat: point.Lat, Lng: point.Lng}
	distance := delivery.DistanceKm(r.origin, coords)
	return &delivery.Resolution{
		Address:     point.PlaceName,
		Coordinates: coords,
		DistanceKm:  distance,
		Fee:         r.schedule.FeeFor(distance),
	}
}

// Cache failures degrade to a live geocode, never to a request failure.
func (r *CachedResolver) lookup(ctx context.Context, key string) (cachedPoint, bool) {
	raw, err := r.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("geocode cache lookup failed", "error", err.Error())
		}
		return cachedPoint{}, false
	}
	var point cachedPoint
	if err := json.Unmarshal([]byte(raw), &point); err != nil {
		slog.Warn("geocode cache entry is corrupt", "error", err.Error())
		return cachedPoint{}, false
	}
	return point, true
}

func (r *CachedResolver) store(ctx context.Context, key string, point cachedPoint) {
	raw, err := json.Marshal(point)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		slog.Warn("geocode cache store failed", "error", err.Error())
	}
}

func cacheKey(address string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(address), " "))
	sum := sha256.Sum256([]byte(normalized))
	return "geocode:" + hex.EncodeToString(sum[:])
}
