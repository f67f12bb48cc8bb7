package utility

import (
	"github.com/shopspring/decimal"

	"github.com/chargeplan/chargeplan/pkg/types"
)

const (
	// BasicServiceFeeThresholdKW splits the basic service fee tiers. A power
	// requirement at or below it pays the lower tier.
	BasicServiceFeeThresholdKW = 500.0

	// SubscriptionThresholdKW splits the subscription fee tiers.
	SubscriptionThresholdKW = 150.0

	subscriptionBlockLowKW  = 10
	subscriptionBlockHighKW = 25
)

var (
	// DefaultBasicServiceFee applies to years missing from the rate table.
	DefaultBasicServiceFee = FeeTiers{Low: 213.30, High: 808.83}
	// DefaultSubscriptionFee applies to years missing from the rate table.
	DefaultSubscriptionFee = FeeTiers{Low: 21.55, High: 53.87}
)

// BasicServiceFee returns the flat monthly fee for the given power
// requirement.
func (t *RateTable) BasicServiceFee(year int, powerKW types.Amount) types.Amount {
	power, ok := powerKW.Float64()
	if !ok {
		return types.Unavailable()
	}
	tiers := DefaultBasicServiceFee
	if yr, ok := t.exactYear(year); ok && yr.BasicServiceFee != nil {
		tiers = *yr.BasicServiceFee
	}
	if power <= BasicServiceFeeThresholdKW {
		return types.Value(tiers.Low)
	}
	return types.Value(tiers.High)
}

// SubscriptionFee returns the monthly subscription fee, charged per block of
// 10 kW at or below the threshold and per block of 25 kW above it, rounded up
// to the cent.
func (t *RateTable) SubscriptionFee(year int, powerKW types.Amount) types.Amount {
	power, ok := powerKW.Float64()
	if !ok {
		return types.Unavailable()
	}
	tiers := DefaultSubscriptionFee
	if yr, ok := t.exactYear(year); ok && yr.SubscriptionFee != nil {
		tiers = *yr.SubscriptionFee
	}
	rate, divisor := tiers.Low, int64(subscriptionBlockLowKW)
	if power > SubscriptionThresholdKW {
		rate, divisor = tiers.High, int64(subscriptionBlockHighKW)
	}
	fee := decimal.NewFromFloat(rate).
		Mul(decimal.NewFromFloat(power)).
		Div(decimal.NewFromInt(divisor)).
		RoundCeil(2)
	return types.Value(fee.InexactFloat64())
}
