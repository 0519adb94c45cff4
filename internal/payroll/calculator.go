// Package payroll holds the pay math shared by trip creation and
// pay-statement generation.
package payroll

import (
	"fmt"
	"math"

	"github.com/geraud82/NeoPay-sub000/internal/models"
)

// baseTripValuePerMile is the assumed gross revenue per mile used when a
// percentage driver's cut is computed from distance alone.
const baseTripValuePerMile = 2.0

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DefaultRateType returns the pay rate type used when a trip does not name
// one: owner-operators are paid a percentage cut, company drivers per mile.
func DefaultRateType(driverType string) string {
	if driverType == models.DriverTypeOwner {
		return models.RateTypePercentage
	}
	return models.RateTypePerMile
}

// ComputeTripAmount computes a trip's pay from distance, rate and rate type.
// hoursWorked is only consulted for hourly trips, where it is required.
func ComputeTripAmount(rateType string, distance, rate float64, hoursWorked *float64) (float64, error) {
	switch rateType {
	case models.RateTypePerMile:
		return Round2(distance * rate), nil
	case models.RateTypePercentage:
		return Round2(distance * baseTripValuePerMile * rate / 100), nil
	case models.RateTypeHourly:
		if hoursWorked == nil {
			return 0, fmt.Errorf("hours worked is required for hourly trips")
		}
		return Round2(*hoursWorked * rate), nil
	case models.RateTypeFixed:
		return Round2(rate), nil
	}
	return 0, fmt.Errorf("unknown rate type %q", rateType)
}
