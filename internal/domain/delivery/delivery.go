package delivery

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var ErrNoFeeBands = errors.New("fee schedule requires at least one band")

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Resolution is the outcome of resolving a delivery address: the geocoded
// point, its road-agnostic distance from the warehouse, and the banded fee.
type Resolution struct {
	Address     string          `json:"geocoded_address"`
	Coordinates Coordinates     `json:"coordinates"`
	DistanceKm  float64         `json:"distance_km"`
	Fee         decimal.Decimal `json:"fee"`
}

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance between two points,
// rounded to 2 decimal places.
func DistanceKm(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(earthRadiusKm*c*100) / 100
}

// Band maps distances up to UpToKm (inclusive) to a flat fee.
type Band struct {
	UpToKm float64
	Fee    decimal.Decimal
}

// FeeSchedule converts a resolved distance into a delivery fee. The curve is
// tuned independently of negotiation logic, so it is injected from
// configuration rather than hard-coded.
type FeeSchedule struct {
	bands       []Band
	perKmBeyond decimal.Decimal
}

// NewFeeSchedule builds a schedule from bands sorted ascending by UpToKm.
// Distances past the last band cost the last band's fee plus perKmBeyond for
// each additional kilometer.
func NewFeeSchedule(bands []Band, perKmBeyond decimal.Decimal) (*FeeSchedule, error) {
	if len(bands) == 0 {
		return nil, ErrNoFeeBands
	}
	return &FeeSchedule{bands: bands, perKmBeyond: perKmBeyond}, nil
}

func (s *FeeSchedule) FeeFor(distanceKm float64) decimal.Decimal {
	d := decimal.NewFromFloat(distanceKm)
	for _, b := range s.bands {
		if distanceKm <= b.UpToKm {
			return b.Fee.Round(2)
		}
	}
	last := s.bands[len(s.bands)-1]
	extra := d.Sub(decimal.NewFromFloat(last.UpToKm))
	return last.Fee.Add(extra.Mul(s.perKmBeyond)).Round(2)
}
