package pricing

import (
	"errors"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	DefaultTaxRate    = decimal.NewFromInt(7)
	DefaultTipPercent = decimal.NewFromInt(15)

	ErrNegativeTip     = errors.New("tip cannot be negative")
	ErrNegativeTaxRate = errors.New("tax rate cannot be negative")
)

var hundred = decimal.NewFromInt(100)

func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

func Subtotal(items []domain.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(LineTotal(item.Price, item.Quantity))
	}
	return sum
}

// Tax applies a percentage rate and rounds to cents.
func Tax(subtotal, ratePercent decimal.Decimal) decimal.Decimal {
	return percentOf(subtotal, ratePercent)
}

// TipSpec is either a percentage of the subtotal or a fixed amount. The zero
// value means no tip.
type TipSpec struct {
	Percent *decimal.Decimal `json:"percent,omitempty"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
}

func TipPercent(p decimal.Decimal) TipSpec { return TipSpec{Percent: &p} }

func TipAmount(a decimal.Decimal) TipSpec { return TipSpec{Amount: &a} }

func Tip(subtotal decimal.Decimal, spec TipSpec) (decimal.Decimal, error) {
	switch {
	case spec.Amount != nil:
		if spec.Amount.IsNegative() {
			return decimal.Zero, ErrNegativeTip
		}
		return spec.Amount.Round(2), nil
	case spec.Percent != nil:
		if spec.Percent.IsNegative() {
			return decimal.Zero, ErrNegativeTip
		}
		return percentOf(subtotal, *spec.Percent), nil
	}
	return decimal.Zero, nil
}

func Total(subtotal, tax, tip decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Add(tip)
}

type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Tip      decimal.Decimal `json:"tip"`
	Total    decimal.Decimal `json:"total"`
}

func NewQuote(items []domain.OrderItem, taxRate decimal.Decimal, tip TipSpec) (Quote, error) {
	if taxRate.IsNegative() {
		return Quote{}, ErrNegativeTaxRate
	}
	subtotal := Subtotal(items)
	tax := Tax(subtotal, taxRate)
	tipValue, err := Tip(subtotal, tip)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Tip:      tipValue,
		Total:    Total(subtotal, tax, tipValue),
	}, nil
}

// Apply copies the quote onto the order's money fields.
func (q Quote) Apply(order *domain.Order) {
	order.Subtotal = q.Subtotal
	order.Tax = q.Tax
	order.Tip = q.Tip
	order.TotalAmount = q.Total
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred).Round(2)
}
