package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveQuantity  = errors.New("quantity must be positive")
	ErrNonPositiveBasePrice = errors.New("base price must be positive")
	ErrNegativeFee          = errors.New("fee cannot be negative")
)

// Installation is charged as a flat percentage of the whole subtotal; the
// bracket is picked once, it is not a marginal scale.
var (
	installLowerBound = decimal.NewFromInt(80000)
	installUpperBound = decimal.NewFromInt(170000)

	installRateSmall  = decimal.NewFromFloat(0.10)
	installRateMedium = decimal.NewFromFloat(0.05)
	installRateLarge  = decimal.NewFromFloat(0.04)

	taxRate = decimal.NewFromFloat(0.18) // GST
)

// Breakdown is the itemized price computation. It is derived on demand and
// never persisted; TotalPrice always equals the sum of the five components.
type Breakdown struct {
	BasePrice          decimal.Decimal `json:"base_price"`
	CustomizationFee   decimal.Decimal `json:"customization_fee"`
	InstallationCharge decimal.Decimal `json:"installation_charge"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	DeliveryFee        decimal.Decimal `json:"delivery_fee"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	Note               string          `json:"note,omitempty"`
}

// Input carries resolved order parameters. BasePrice and CustomizationFee are
// per unit and come from the catalogue; DeliveryFee comes from the delivery
// resolver. The calculator itself touches no external state.
type Input struct {
	BasePrice           decimal.Decimal
	Quantity            int
	CustomizationFee    decimal.Decimal
	IncludeInstallation bool
	DeliveryFee         decimal.Decimal
}

// ComputeBreakdown builds the full price breakdown for an order.
//
// Each component is rounded half-up to 2 places exactly once, and the total is
// the sum of the rounded components, so the displayed parts always add up.
func ComputeBreakdown(in Input) (Breakdown, error) {
	if in.Quantity <= 0 {
		return Breakdown{}, ErrNonPositiveQuantity
	}
	if !in.BasePrice.IsPositive() {
		return Breakdown{}, ErrNonPositiveBasePrice
	}
	if in.CustomizationFee.IsNegative() || in.DeliveryFee.IsNegative() {
		return Breakdown{}, ErrNegativeFee
	}

	qty := decimal.NewFromInt(int64(in.Quantity))
	base := in.BasePrice.Mul(qty).Round(2)
	customization := in.CustomizationFee.Mul(qty).Round(2)
	subtotal := base.Add(customization)

	installation := decimal.Zero
	note := ""
	if in.IncludeInstallation {
		rate := installationRate(subtotal)
		installation = subtotal.Mul(rate).Round(2)
		note = fmt.Sprintf("installation charged at %s%% of subtotal", rate.Mul(decimal.NewFromInt(100)).String())
	}

	tax := subtotal.Add(installation).Mul(taxRate).Round(2)
	delivery := in.DeliveryFee.Round(2)

	total := subtotal.Add(installation).Add(tax).Add(delivery)

	return Breakdown{
		BasePrice:          base,
		CustomizationFee:   customization,
		InstallationCharge: installation,
		TaxAmount:          tax,
		DeliveryFee:        delivery,
		TotalPrice:         total,
		Note:               note,
	}, nil
}

// installationRate picks the flat bracket for a subtotal:
// below 80k 10%, 80k through 170k inclusive 5%, above 170k 4%.
func installationRate(subtotal decimal.Decimal) decimal.Decimal {
	switch {
	case subtotal.LessThan(installLowerBound):
		return installRateSmall
	case subtotal.LessThanOrEqual(installUpperBound):
		return installRateMedium
	default:
		return installRateLarge
	}
}
