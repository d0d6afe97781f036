package claims

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	LowRiskCeiling    = 5000.0
	MediumRiskCeiling = 15000.0
	AutoRouteCeiling  = 15000.0
)

const claimNumberFormat = "CLM-2024-%05d"

var regionByZipPrefix = map[byte]Region{
	'1': RegionNortheast, '2': RegionNortheast,
	'3': RegionSoutheast, '4': RegionSoutheast,
	'5': RegionMidwest, '6': RegionMidwest,
	'7': RegionSouthwest, '8': RegionSouthwest,
	'9': RegionWest, '0': RegionWest,
}

// RiskLevelFor buckets an amount: [0,5000) Low, [5000,15000) Medium, otherwise High.
func RiskLevelFor(amount float64) RiskLevel {
	switch {
	case amount < LowRiskCeiling:
		return RiskLow
	case amount < MediumRiskCeiling:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// IsAutoRouted decides routing for submitted claims only; seeded claims flip a coin.
func IsAutoRouted(amount float64) bool {
	return amount < AutoRouteCeiling
}

// RegionForZip maps the first character of a zip code. Anything outside 0-9 is Unknown.
func RegionForZip(zip string) Region {
	if zip == "" {
		return RegionUnknown
	}
	if region, ok := regionByZipPrefix[zip[0]]; ok {
		return region
	}
	return RegionUnknown
}

func InitialStatus(autoRouted bool) Status {
	if autoRouted {
		return StatusOpen
	}
	return StatusInReview
}

// SeedClaimNumber numbers the i-th seeded claim starting at CLM-2024-01001.
func SeedClaimNumber(i int) string {
	return fmt.Sprintf(claimNumberFormat, 1001+i)
}

// NextClaimNumber derives a submitted claim's number from the current claim count.
// Two concurrent submissions reading the same count get the same number.
func NextClaimNumber(count int64) string {
	return fmt.Sprintf(claimNumberFormat, count+2000)
}

// Round rounds half away from zero to the given decimal places.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
