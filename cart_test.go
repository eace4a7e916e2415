package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCartLine(t *testing.T) {
	p := pricingTestProduct()
	sel := Selection{
		"size":          Single("M"),
		"customization": Single("name-number"),
		"extras":        Multi("shorts"),
	}

	line, err := BuildCartLine(p, SizeAdult, sel, 2, &Personalization{Name: "garcia", Number: "10"})
	require.NoError(t, err)

	assert.Equal(t, p.ID, line.ProductID)
	assert.Equal(t, 2, line.Qty)
	assert.Equal(t, SizeAdult, line.SizeCategory)
	assert.Equal(t, 8999+1500, line.UnitPriceCents)
	assert.Equal(t, (8999+1500+2500)*2, line.LineTotalCents)
	assert.Equal(t, map[string]string{
		"size":          "M",
		"customization": "name-number",
		"extras":        "shorts",
	}, line.Options)

	require.NotNil(t, line.Personalization)
	assert.Equal(t, "GARCIA", line.Personalization.Name)
	assert.Equal(t, "10", line.Personalization.Number)
	assert.False(t, line.AddedAt.IsZero())
}

// Validation runs before anything else: a missing size rejects the line
// outright and a bad quantity never reaches pricing.
func TestBuildCartLineRejectsInvalidInput(t *testing.T) {
	p := pricingTestProduct()

	_, err := BuildCartLine(p, SizeAdult, Selection{}, 1, nil)
	assert.ErrorIs(t, err, errNoSize)

	_, err = BuildCartLine(p, SizeAdult, Selection{"size": Single("M")}, 0, nil)
	assert.ErrorIs(t, err, errQty)
}

// Personalization only sticks when the customization option asks for it.
func TestBuildCartLinePersonalizationGated(t *testing.T) {
	p := pricingTestProduct()
	person := &Personalization{Name: "SILVA", Number: "7"}

	sel := Selection{"size": Single("M"), "customization": Single("none")}
	line, err := BuildCartLine(p, SizeAdult, sel, 1, person)
	require.NoError(t, err)
	assert.Nil(t, line.Personalization)

	sel["customization"] = Single("name-number")
	line, err = BuildCartLine(p, SizeAdult, sel, 1, person)
	require.NoError(t, err)
	require.NotNil(t, line.Personalization)
	assert.Equal(t, "SILVA", line.Personalization.Name)
}
