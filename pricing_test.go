package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricingTestProduct() *Product {
	return &Product{
		ID:             "prod-test",
		Slug:           "test-jersey",
		Name:           "Test Home Jersey",
		Team:           "Test FC",
		BasePriceCents: 8999,
		KidsDeltaCents: -1000,
		Sizes: []SizeStock{
			{Size: "S", Stock: 10},
			{Size: "M", Stock: 10},
			{Size: "L", Stock: 10},
		},
		KidsSizes: []SizeStock{
			{Size: "16", Stock: 10},
			{Size: "18", Stock: 10},
		},
		Groups: []OptionGroup{
			{
				Key:  "size",
				Type: GroupSize,
				Values: []OptionValue{
					{Code: "S"}, {Code: "M"}, {Code: "L"},
				},
			},
			{
				Key:  "customization",
				Type: GroupRadio,
				Values: []OptionValue{
					{Code: "none", DeltaCents: 0},
					{Code: "name-number", DeltaCents: 1500},
				},
			},
			{
				Key:  "extras",
				Type: GroupAddon,
				Values: []OptionValue{
					{Code: "shorts", DeltaCents: 2500},
					{Code: "socks", DeltaCents: 1200},
				},
			},
		},
	}
}

func TestComputeQuoteAdditive(t *testing.T) {
	p := pricingTestProduct()
	sel := Selection{
		"size":          Single("M"),
		"customization": Single("name-number"),
		"extras":        Multi("shorts", "socks"),
	}

	q := ComputeQuote(p, SizeAdult, sel, 2)
	assert.Equal(t, 8999+1500, q.UnitPriceCents)
	assert.Equal(t, 2500+1200, q.AddonCents)
	assert.Equal(t, (8999+1500+2500+1200)*2, q.LineTotalCents)
}

func TestComputeQuoteBaseOnly(t *testing.T) {
	p := pricingTestProduct()
	sel := Selection{"size": Single("L"), "customization": Single("none")}

	q := ComputeQuote(p, SizeAdult, sel, 1)
	assert.Equal(t, 8999, q.UnitPriceCents)
	assert.Equal(t, 0, q.AddonCents)
	assert.Equal(t, 8999, q.LineTotalCents)
}

// Toggling the size category back and forth recomputes from the base price;
// the kids delta is applied once, never stacked.
func TestComputeQuoteKidsDeltaDoesNotAccumulate(t *testing.T) {
	p := pricingTestProduct()
	sel := Selection{"size": Single("16")}

	adult := ComputeQuote(p, SizeAdult, sel, 1)
	kids := ComputeQuote(p, SizeKids, sel, 1)
	kidsAgain := ComputeQuote(p, SizeKids, sel, 1)
	back := ComputeQuote(p, SizeAdult, sel, 1)

	assert.Equal(t, 8999, adult.UnitPriceCents)
	assert.Equal(t, 7999, kids.UnitPriceCents)
	assert.Equal(t, kids.UnitPriceCents, kidsAgain.UnitPriceCents)
	assert.Equal(t, adult.UnitPriceCents, back.UnitPriceCents)
}

func TestComputeQuoteClampsQuantity(t *testing.T) {
	p := pricingTestProduct()
	sel := Selection{"size": Single("M")}

	q := ComputeQuote(p, SizeAdult, sel, 0)
	assert.Equal(t, 8999, q.LineTotalCents)
}

func TestComputeQuoteUnknownCodesAreNeutral(t *testing.T) {
	p := pricingTestProduct()
	sel := Selection{
		"size":          Single("XXL"),
		"customization": Single("sequins"),
		"extras":        Multi("cape"),
	}

	q := ComputeQuote(p, SizeAdult, sel, 1)
	assert.Equal(t, 8999, q.UnitPriceCents)
	assert.Equal(t, 0, q.AddonCents)
}

func TestValidateCartInput(t *testing.T) {
	p := pricingTestProduct()

	require.NoError(t, ValidateCartInput(p, SizeAdult, Selection{"size": Single("M")}, 1))

	// No size selected.
	assert.ErrorIs(t, ValidateCartInput(p, SizeAdult, Selection{}, 1), errNoSize)
	// Size from the wrong category.
	assert.ErrorIs(t, ValidateCartInput(p, SizeAdult, Selection{"size": Single("16")}, 1), errNoSize)
	require.NoError(t, ValidateCartInput(p, SizeKids, Selection{"size": Single("16")}, 1))
	// Quantity below one.
	assert.ErrorIs(t, ValidateCartInput(p, SizeAdult, Selection{"size": Single("M")}, 0), errQty)

	// Accessories without a size group only need a quantity.
	scarf := &Product{ID: "prod-scarf", BasePriceCents: 1999}
	require.NoError(t, ValidateCartInput(scarf, SizeAdult, Selection{}, 1))
}

func TestSanitizePersonalization(t *testing.T) {
	got := SanitizePersonalization(Personalization{Name: "  o'neill-smith 7 ", Number: "10x"})
	assert.Equal(t, "O'NEILL-SMITH", got.Name)
	assert.Equal(t, "10", got.Number)

	long := SanitizePersonalization(Personalization{Name: "ABCDEFGHIJKLMNOPQRSTU", Number: "123"})
	assert.Len(t, long.Name, maxPrintNameLen)
	assert.Equal(t, "12", long.Number)
}

func TestWantsPersonalization(t *testing.T) {
	assert.True(t, WantsPersonalization(Selection{"customization": Single("name-number")}))
	assert.False(t, WantsPersonalization(Selection{"customization": Single("none")}))
	assert.False(t, WantsPersonalization(Selection{}))
}

func TestFlattenSelection(t *testing.T) {
	flat := FlattenSelection(Selection{
		"size":   Single("M"),
		"extras": Multi("shorts", "socks"),
		"empty":  Single(""),
		"none":   Multi(),
	})
	assert.Equal(t, map[string]string{
		"size":   "M",
		"extras": "shorts,socks",
	}, flat)
}
