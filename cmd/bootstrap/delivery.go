package bootstrap

import (
	"quoteflow/internal/domain/delivery"
	"quoteflow/internal/infra/geocode"
	"quoteflow/internal/pkg/config"
	"quoteflow/internal/usecase/queries"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

var DeliveryModule = fx.Module("delivery",
	fx.Provide(
		NewFeeSchedule,
		NewGeocoder,
		NewAddressResolver,
	),
)

func NewGeocoder(cfg config.Config) geocode.Geocoder {
	return geocode.NewMapboxClient(cfg.Geocode)
}

func NewFeeSchedule(cfg config.Config) (*delivery.FeeSchedule, error) {
	parsed, err := cfg.Delivery.ParseFeeBands()
	if err != nil {
		return nil, err
	}

	bands := make([]delivery.Band, len(parsed))
	for i, b := range parsed {
		bands[i] = delivery.Band{
			UpToKm: b.UpToKm,
			Fee:    decimal.NewFromFloat(b.Fee),
		}
	}
	return delivery.NewFeeSchedule(bands, decimal.NewFromFloat(cfg.Delivery.PerKmBeyond))
}

func NewAddressResolver(
	geocoder geocode.Geocoder,
	cache *redis.Client,
	cfg config.Config,
	schedule *delivery.FeeSchedule,
) queries.AddressResolver {
	origin := delivery.Coordinates{
		Lat: cfg.Delivery.WarehouseLat,
		Lng: cfg.Delivery.WarehouseLng,
	}
	return geocode.NewCachedResolver(geocoder, cache, cfg.Geocode.CacheTTL, origin, schedule)
}
