package pricing

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.Accounting{Symbol: "$", Precision: 2}

var hundred = decimal.NewFromInt(100)

// Size is the minimal size shape the resolver needs. Price keeps full
// precision; the resolver rounds only for display.
type Size struct {
	ID       string
	Size     string
	Quantity int
	Price    decimal.Decimal
	Discount decimal.Decimal
}

// View is the resolved price presentation for a variant's size list.
// Display is either a single price ("$10.00") or a range
// ("$10.00 - $12.00"). OriginalDisplay is set only when the original price
// differs from the discounted one by value.
type View struct {
	Display         string          `json:"display"`
	Price           decimal.Decimal `json:"price"`
	MaxPrice        decimal.Decimal `json:"max_price"`
	OriginalDisplay string          `json:"original_display,omitempty"`
	Discount        decimal.Decimal `json:"discount"`
	Quantity        int             `json:"quantity"`
}

func discountedPrice(s Size) decimal.Decimal {
	return s.Price.Mul(hundred.Sub(s.Discount)).Div(hundred)
}

// Resolve computes the price view for a size list. With no selection it
// reports the discounted min/max range (collapsed to a single price when
// equal after rounding) and the summed stock. With a selection it reports
// that size's exact discounted price and its own quantity. An empty size
// list or a selection miss yields nil, never an error.
func Resolve(sizes []Size, selectedSizeID string) *View {
	if len(sizes) == 0 {
		return nil
	}

	if selectedSizeID == "" {
		return resolveRange(sizes)
	}

	var selected *Size
	for i := range sizes {
		if sizes[i].ID == selectedSizeID {
			selected = &sizes[i]
			break
		}
	}
	if selected == nil {
		return nil
	}

	price := discountedPrice(*selected)
	view := &View{
		Display:  usd.FormatMoney(price.Round(2)),
		Price:    price,
		MaxPrice: price,
		Quantity: selected.Quantity,
	}
	// Guard against float-style rounding artifacts: show the original price
	// only when it differs by value, not merely because discount > 0.
	if !selected.Price.Equal(price) {
		view.OriginalDisplay = usd.FormatMoney(selected.Price.Round(2))
	}
	if selected.Discount.IsPositive() {
		view.Discount = selected.Discount
	}
	return view
}

func resolveRange(sizes []Size) *View {
	min := discountedPrice(sizes[0])
	max := min
	total := sizes[0].Quantity

	for _, s := range sizes[1:] {
		p := discountedPrice(s)
		if p.LessThan(min) {
			min = p
		}
		if p.GreaterThan(max) {
			max = p
		}
		total += s.Quantity
	}

	view := &View{
		Price:    min,
		MaxPrice: max,
		Quantity: total,
	}

	minRounded := min.Round(2)
	maxRounded := max.Round(2)
	if minRounded.Equal(maxRounded) {
		view.Display = usd.FormatMoney(minRounded)
		// Single collapsed price: surface the first discount encountered,
		// deliberately not the maximum.
		for _, s := range sizes {
			if s.Discount.IsPositive() {
				view.Discount = s.Discount
				break
			}
		}
	} else {
		view.Display = usd.FormatMoney(minRounded) + " - " + usd.FormatMoney(maxRounded)
	}
	return view
}
